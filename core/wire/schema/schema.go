// Package schema holds the declarative catalog description cmd/genmessages
// compiles into core/wire/messages (spec.md §4.3, §6.4). It is parsed with
// BurntSushi/toml, the same library the teacher's mailproxy configuration
// generator targets.
package schema

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Field is one (name, codec-name) pair of a message.
type Field struct {
	Name  string `toml:"name"`
	Codec string `toml:"codec"`
}

// MessageSpec is one catalog entry: direction, ids, ordered fields.
type MessageSpec struct {
	GoName    string  `toml:"go_name"`
	Direction string  `toml:"direction"` // "S2C" | "C2S" | "X2X"
	ID        int32   `toml:"id"`
	ModelID   int32   `toml:"model_id"`
	Fields    []Field `toml:"fields"`
}

// File is the top-level shape of catalog.toml.
type File struct {
	Message []MessageSpec `toml:"message"`
}

// Load parses a schema file at path.
func Load(path string) (*File, error) {
	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("schema: decode %s: %w", path, err)
	}
	return &f, nil
}
