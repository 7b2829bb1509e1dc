// Package config loads the settings the command line uses to stand in for a
// connected client.
package config

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/walteh/tmplsem/pkg/lsp"
	"github.com/zclconf/go-cty/cty"
	"gitlab.com/tozd/go/errors"
	"go.lsp.dev/protocol"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Client *ClientBlock `json:"client,omitempty" yaml:"client,omitempty" hcl:"client,block"`

	LogLevel string `json:"log_level,omitempty" yaml:"log_level,omitempty" hcl:"log_level,optional"`
}

// ClientBlock lists the markup kinds the simulated client accepts. A missing
// list means the client did not declare the capability at all.
type ClientBlock struct {
	CompletionFormats []string `json:"completion_formats,omitempty" yaml:"completion_formats,omitempty" hcl:"completion_formats,optional"`
	HoverFormats      []string `json:"hover_formats,omitempty" yaml:"hover_formats,omitempty" hcl:"hover_formats,optional"`
}

// Default behaves like a client that renders Markdown everywhere.
func Default() *Config {
	return &Config{
		Client: &ClientBlock{
			CompletionFormats: []string{string(protocol.Markdown)},
			HoverFormats:      []string{string(protocol.Markdown)},
		},
		LogLevel: zerolog.InfoLevel.String(),
	}
}

// Load reads a YAML (.yaml, .yml) or HCL config and validates it.
//
// In HCL the markup kinds are also available as variables:
//
//	client {
//	  completion_formats = [markdown, plaintext]
//	}
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg *Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		cfg, err = decodeYAML(data)
	default:
		cfg, err = decodeHCL(data, path)
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating %s: %w", path, err)
	}
	return cfg, nil
}

func decodeYAML(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}

func decodeHCL(data []byte, path string) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, path)
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	ctx := &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"markdown":  cty.StringVal(string(protocol.Markdown)),
			"plaintext": cty.StringVal(string(protocol.PlainText)),
		},
	}

	var cfg Config
	diags = gohcl.DecodeBody(hclFile.Body, ctx, &cfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}
	return &cfg, nil
}

// Validate reports every unknown markup kind and a bad log level together.
func (c *Config) Validate() error {
	var err error

	if c.LogLevel != "" {
		if _, lerr := zerolog.ParseLevel(c.LogLevel); lerr != nil {
			err = multierr.Append(err, errors.Errorf("log_level: %w", lerr))
		}
	}

	if c.Client != nil {
		err = multierr.Append(err, validateFormats("client.completion_formats", c.Client.CompletionFormats))
		err = multierr.Append(err, validateFormats("client.hover_formats", c.Client.HoverFormats))
	}

	return err
}

func validateFormats(field string, formats []string) error {
	var err error
	for _, f := range formats {
		switch protocol.MarkupKind(f) {
		case protocol.Markdown, protocol.PlainText:
		default:
			err = multierr.Append(err, errors.Errorf("%s: unknown markup kind %q", field, f))
		}
	}
	return err
}

// Level returns the configured log level, info when unset.
func (c *Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// ClientCapabilities renders the client block the way a client would send it
// at initialize.
func (c *Config) ClientCapabilities() *protocol.ClientCapabilities {
	if c.Client == nil {
		return &protocol.ClientCapabilities{}
	}
	return lsp.MarkupCapabilities(markupKinds(c.Client.CompletionFormats), markupKinds(c.Client.HoverFormats))
}

func markupKinds(formats []string) []protocol.MarkupKind {
	if formats == nil {
		return nil
	}
	kinds := make([]protocol.MarkupKind, 0, len(formats))
	for _, f := range formats {
		kinds = append(kinds, protocol.MarkupKind(f))
	}
	return kinds
}
