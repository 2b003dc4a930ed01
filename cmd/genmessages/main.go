// Command genmessages is the build-time code generator for the message
// catalog (spec.md C8). It reads a declarative schema (core/wire/schema)
// and a hardcoded codec-name -> Go codec expression map, and emits one
// Go struct per schema entry implementing wire.Message, plus a RegisterAll
// entry point that populates a runtime Catalog for a given Role.
//
// Invoked via the go:generate directive in core/wire/messages/doc.go:
//
//	go run ./cmd/genmessages -schema core/wire/schema/catalog.toml \
//		-out core/wire/messages/catalog_gen.go -package messages
package main

import (
	"bytes"
	"flag"
	"fmt"
	"go/format"
	"os"
	"text/template"

	"github.com/protanki-go/protocol/core/wire/schema"
)

// codecInfo is one entry of the codec-name -> implementation mapping
// spec.md §4.3 calls "a separate mapping declares codec-name -> concrete
// codec". It is kept in the generator rather than the schema file because
// the right-hand side is a Go expression, not data.
type codecInfo struct {
	GoType string
	Expr   string
}

var codecMap = map[string]codecInfo{
	"i8":                      {"int8", "codec.I8"},
	"u8":                      {"uint8", "codec.U8"},
	"i16":                     {"int16", "codec.I16"},
	"u16":                     {"uint16", "codec.U16"},
	"i32":                     {"int32", "codec.I32"},
	"u32":                     {"uint32", "codec.U32"},
	"i64":                     {"int64", "codec.I64"},
	"u64":                     {"uint64", "codec.U64"},
	"f32":                     {"float32", "codec.F32"},
	"f64":                     {"float64", "codec.F64"},
	"bool":                    {"bool", "codec.Bool"},
	"string":                  {"string", "codec.String"},
	"vec3":                    {"codec.Vec3", "codec.Vector3"},
	"seq<u8>":                 {"[]uint8", "codec.Sequence(codec.U8)"},
	"seq<i32>":                {"[]int32", "codec.Sequence(codec.I32)"},
	"optional<vec3>":          {"*codec.Vec3", "codec.Optional(codec.Vector3)"},
	"optional<seq<u8>>":       {"*[]uint8", "codec.Optional(codec.Sequence(codec.U8))"},
	"seq<optional<seq<u8>>>":  {"[]*[]uint8", "codec.Sequence(codec.Optional(codec.Sequence(codec.U8)))"},
}

var directionConst = map[string]string{
	"S2C": "wire.DirectionS2C",
	"C2S": "wire.DirectionC2S",
	"X2X": "wire.DirectionX2X",
}

type tmplField struct {
	Name   string
	GoType string
	Expr   string
}

type tmplMessage struct {
	GoName    string
	SchemaDir string
	Direction string
	ID        int32
	ModelID   int32
	Fields    []tmplField
}

type tmplData struct {
	Package  string
	Messages []tmplMessage
}

func main() {
	schemaPath := flag.String("schema", "", "path to catalog.toml")
	outPath := flag.String("out", "", "output .go path")
	pkg := flag.String("package", "messages", "generated package name")
	flag.Parse()

	if *schemaPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "genmessages: -schema and -out are required")
		os.Exit(2)
	}

	f, err := schema.Load(*schemaPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "genmessages: %v\n", err)
		os.Exit(1)
	}

	data := tmplData{Package: *pkg}
	seen := map[int32]string{}
	for _, m := range f.Message {
		if prior, ok := seen[m.ID]; ok {
			fmt.Fprintf(os.Stderr, "genmessages: message id %d used by both %s and %s\n", m.ID, prior, m.GoName)
			os.Exit(1)
		}
		seen[m.ID] = m.GoName

		dirConst, ok := directionConst[m.Direction]
		if !ok {
			fmt.Fprintf(os.Stderr, "genmessages: %s: unknown direction %q\n", m.GoName, m.Direction)
			os.Exit(1)
		}

		tm := tmplMessage{GoName: m.GoName, SchemaDir: m.Direction, Direction: dirConst, ID: m.ID, ModelID: m.ModelID}
		for _, field := range m.Fields {
			info, ok := codecMap[field.Codec]
			if !ok {
				// This is the "generator rejects any schema entry whose
				// codec name is not in the mapping" contract (spec.md
				// §4.3): a bad schema fails the build, not a decode call.
				fmt.Fprintf(os.Stderr, "genmessages: %s.%s: unknown codec name %q\n", m.GoName, field.Name, field.Codec)
				os.Exit(1)
			}
			tm.Fields = append(tm.Fields, tmplField{Name: field.Name, GoType: info.GoType, Expr: info.Expr})
		}
		data.Messages = append(data.Messages, tm)
	}

	var buf bytes.Buffer
	if err := catalogTemplate.Execute(&buf, data); err != nil {
		fmt.Fprintf(os.Stderr, "genmessages: template: %v\n", err)
		os.Exit(1)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Emit the unformatted source too, so a template bug is easy to
		// diagnose instead of silently failing.
		os.Stderr.Write(buf.Bytes())
		fmt.Fprintf(os.Stderr, "genmessages: gofmt: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*outPath, formatted, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "genmessages: write %s: %v\n", *outPath, err)
		os.Exit(1)
	}
}

var catalogTemplate = template.Must(template.New("catalog").Parse(`// Code generated by cmd/genmessages from core/wire/schema/catalog.toml.
// DO NOT EDIT.

package {{.Package}}

import (
	"io"

	"github.com/protanki-go/protocol/core/codec"
	"github.com/protanki-go/protocol/core/wire"
)

{{range .Messages}}
// {{.GoName}} is a generated catalog entry: direction {{.SchemaDir}}, message id {{.ID}}, model id {{.ModelID}}.
type {{.GoName}} struct {
{{- range .Fields}}
	{{.Name}} {{.GoType}}
{{- end}}
}

func (m *{{.GoName}}) MessageID() int32         { return {{.ID}} }
func (m *{{.GoName}}) ModelID() int32           { return {{.ModelID}} }
func (m *{{.GoName}}) Direction() wire.Direction { return {{.Direction}} }

func (m *{{.GoName}}) EncodeFields(w io.Writer) error {
{{- range .Fields}}
	if err := ({{.Expr}}).Encode(w, m.{{.Name}}); err != nil {
		return err
	}
{{- end}}
	return nil
}

func decode{{.GoName}}(r *codec.Reader) (wire.Message, error) {
	m := &{{.GoName}}{}
{{- if .Fields}}
	var err error
{{- end}}
{{- range .Fields}}
	m.{{.Name}}, err = ({{.Expr}}).Decode(r)
	if err != nil {
		return nil, err
	}
{{- end}}
	return m, nil
}
{{end}}

// RegisterAll populates catalog with the decoders a connection playing
// role should recognize: a server decodes C2S and X2X messages, a client
// decodes S2C and X2X messages (spec.md §4.3's register_all_messages).
func RegisterAll(catalog *wire.Catalog, role wire.Role) {
	type entry struct {
		id        int32
		direction wire.Direction
		decode    wire.Decoder
	}
	entries := []entry{
{{- range .Messages}}
		{ {{.ID}}, {{.Direction}}, decode{{.GoName}} },
{{- end}}
	}
	for _, e := range entries {
		if e.direction == wire.DirectionX2X ||
			(role == wire.RoleServer && e.direction == wire.DirectionC2S) ||
			(role == wire.RoleClient && e.direction == wire.DirectionS2C) {
			catalog.Register(e.id, e.direction, e.decode)
		}
	}
}
`))
