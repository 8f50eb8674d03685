package simulate

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Scenario != "" || cfg.DBPath != "" || cfg.Quiet {
		t.Fatalf("expected zero defaults, got %+v", cfg)
	}
}

func TestParseConfigEnvAndFlagOverrides(t *testing.T) {
	t.Setenv("WGP_SCENARIO_FILE", "env.yaml")
	t.Setenv("WGP_DB_PATH", "env.sqlite")

	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-scenario", "flag.yaml", "-quiet"})
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.Scenario != "flag.yaml" {
		t.Fatalf("expected flag to override env, got %q", cfg.Scenario)
	}
	if cfg.DBPath != "env.sqlite" {
		t.Fatalf("expected env default, got %q", cfg.DBPath)
	}
	if !cfg.Quiet {
		t.Fatal("expected quiet flag to be set")
	}
}
