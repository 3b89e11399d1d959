// Package config loads the YAML files that shape a diagnosis deployment:
// synonym lexicons, disease rules, fallback knowledge tables, and server
// settings.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JoshTheGiant/doc-zaddy/pkg/zaddy/internalerr"
)

// FallbackKB represents a custom fallback knowledge table.
type FallbackKB struct {
	Diseases map[string][]string `yaml:"diseases"`
}

// LoadFallbackKB loads a fallback knowledge table from a YAML file.
//
// Expected format:
//
//	diseases:
//	  flu: [fever, cough, sore_throat]
//	  covid19: [fever, cough, loss_of_smell]
func LoadFallbackKB(path string) (*FallbackKB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fb FallbackKB
	if err := yaml.Unmarshal(data, &fb); err != nil {
		return nil, err
	}

	return &fb, nil
}

// Server holds the HTTP service settings.
type Server struct {
	// Addr is the listen address, host:port.
	Addr string `yaml:"addr"`

	// KBPath points at a fact file to load at startup.
	KBPath string `yaml:"kb_path"`

	// DBPath points at a SQLite fact database. When both KBPath and
	// DBPath are set, the database wins.
	DBPath string `yaml:"db_path"`

	// Backend selects the store a KBPath file is loaded into: "memory"
	// (default) or "prolog".
	Backend string `yaml:"backend"`

	// SynonymsPath points at a synonym lexicon YAML file.
	SynonymsPath string `yaml:"synonyms_path"`

	// RulesPath points at a disease rules YAML file.
	RulesPath string `yaml:"rules_path"`

	// FallbackPath points at a custom fallback knowledge table.
	FallbackPath string `yaml:"fallback_path"`

	// TopN caps how many candidates a diagnosis returns.
	TopN int `yaml:"top_n"`

	// MaxConns bounds concurrent client connections.
	MaxConns int `yaml:"max_conns"`

	// AllowedOrigins lists origins granted CORS access. Empty means
	// same-origin only.
	AllowedOrigins []string `yaml:"allowed_origins"`

	// StaticDir serves a directory of static files at / when set.
	StaticDir string `yaml:"static_dir"`
}

// DefaultServer returns the server settings used when no config file is
// given.
func DefaultServer() Server {
	return Server{
		Addr:     ":8001",
		TopN:     10,
		MaxConns: 64,
	}
}

// LoadServer loads server settings from a YAML file, filling unset fields
// from DefaultServer.
func LoadServer(path string) (Server, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Server{}, err
	}

	srv := DefaultServer()
	if err := yaml.Unmarshal(data, &srv); err != nil {
		return Server{}, err
	}
	if err := srv.validate(); err != nil {
		return Server{}, err
	}

	return srv, nil
}

func (s Server) validate() error {
	if s.Addr == "" {
		return fmt.Errorf("addr must not be empty: %w", internalerr.ErrInvalidConfig)
	}
	if s.TopN < 1 {
		return fmt.Errorf("top_n must be positive, got %d: %w", s.TopN, internalerr.ErrInvalidConfig)
	}
	if s.MaxConns < 1 {
		return fmt.Errorf("max_conns must be positive, got %d: %w", s.MaxConns, internalerr.ErrInvalidConfig)
	}
	switch s.Backend {
	case "", "memory", "prolog":
	default:
		return fmt.Errorf("backend must be memory or prolog, got %q: %w", s.Backend, internalerr.ErrInvalidConfig)
	}
	return nil
}
