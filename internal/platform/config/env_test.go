package config

import (
	"strings"
	"testing"
	"time"
)

type envTestConfig struct {
	Locale  string        `env:"HACKATHON_SPACE_TEST_LOCALE" envDefault:"en-US"`
	Timeout time.Duration `env:"HACKATHON_SPACE_TEST_TIMEOUT" envDefault:"30s"`
}

type prefixedTestConfig struct {
	Locale string `env:"TEST_LOCALE" envDefault:"en-US"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Locale != "en-US" || cfg.Timeout != 30*time.Second {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("HACKATHON_SPACE_TEST_TIMEOUT", "soon")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestParseEnvPrefixed(t *testing.T) {
	t.Setenv("HACKATHON_SPACE_TEST_LOCALE", "pt-BR")
	t.Setenv("TEST_LOCALE", "fr-FR")

	var cfg prefixedTestConfig
	if err := ParseEnvPrefixed(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Locale != "pt-BR" {
		t.Fatalf("locale = %q, want pt-BR", cfg.Locale)
	}
}
