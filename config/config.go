// Package config parses the TOML configuration for an example server
// and client binary; no such binary is part of this repository, and no
// other package in it imports config. The core protocol packages
// take no configuration of their own; this is purely an ambient
// concern of the collaborator programs spec.md §6 describes, following
// the teacher's own TOML habit — mailproxy.go generates the on-disk
// config for katzenpost's mailproxy in this same library.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Server is the example server's configuration file shape.
type Server struct {
	Listen       string `toml:"listen"`
	LogLevel     string `toml:"log_level"`
	MaxFrameSize int    `toml:"max_frame_size"`
	AllowUnknown bool   `toml:"allow_unknown_messages"`

	Diag DiagConfig `toml:"diag"`
}

// DiagConfig configures the example-only encrypted diagnostic store
// (core/diag).
type DiagConfig struct {
	Enabled    bool   `toml:"enabled"`
	Path       string `toml:"path"`
	Passphrase string `toml:"passphrase"`
}

// Client is the example client's configuration file shape.
type Client struct {
	ServerAddr   string `toml:"server_addr"`
	LogLevel     string `toml:"log_level"`
	LanguageCode string `toml:"language_code"`
}

func (c *Server) setDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "NOTICE"
	}
	if c.MaxFrameSize == 0 {
		c.MaxFrameSize = 1 << 20
	}
}

func (c *Client) setDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "NOTICE"
	}
	if c.LanguageCode == "" {
		c.LanguageCode = "en"
	}
}

// LoadServer parses path into a Server config, applying defaults for
// any field the file leaves zero-valued.
func LoadServer(path string) (*Server, error) {
	var c Server
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("config: load server config %s: %w", path, err)
	}
	c.setDefaults()
	return &c, nil
}

// LoadClient parses path into a Client config, applying defaults for
// any field the file leaves zero-valued.
func LoadClient(path string) (*Client, error) {
	var c Client
	if _, err := toml.DecodeFile(path, &c); err != nil {
		return nil, fmt.Errorf("config: load client config %s: %w", path, err)
	}
	c.setDefaults()
	return &c, nil
}
