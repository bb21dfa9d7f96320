package config_test

import (
	"testing"

	"github.com/1homsi/goflow/internal/config"
)

func TestParseDefaults(t *testing.T) {
	o, err := config.Parse("pta", nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if o.Context != "ci" {
		t.Errorf("Context default = %q, want ci", o.Context)
	}
	if o.K != 1 {
		t.Errorf("K default = %d, want 1", o.K)
	}
}

func TestSelectorUnknownContext(t *testing.T) {
	o := &config.Options{Context: "bogus"}
	if _, err := o.Selector(); err == nil {
		t.Fatal("Selector should reject an unknown context name")
	}
}

func TestLoadEmbeddedDefaultTaintConfig(t *testing.T) {
	cfg, err := config.LoadTaintConfig("")
	if err != nil {
		t.Fatalf("LoadTaintConfig: %v", err)
	}
	if len(cfg.Sources) == 0 || len(cfg.Sinks) == 0 {
		t.Fatalf("embedded default profile should have sources and sinks: %+v", cfg)
	}
}
