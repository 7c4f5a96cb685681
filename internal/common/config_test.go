package common

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/docuflow")

	cfg := LoadConfig()

	if cfg.Database.Driver != "pgx" {
		t.Fatalf("default driver = %q, want pgx", cfg.Database.Driver)
	}
	if cfg.Pipeline.Workers != 4 || cfg.Pipeline.QueueSize != 256 {
		t.Fatalf("pipeline defaults = %+v", cfg.Pipeline)
	}
	if cfg.Pipeline.ConfidenceThreshold != 70 {
		t.Fatalf("default threshold = %d, want 70", cfg.Pipeline.ConfidenceThreshold)
	}
	if cfg.Pipeline.DispatchInterval != 5*time.Second {
		t.Fatalf("default dispatch interval = %v", cfg.Pipeline.DispatchInterval)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DB_URL", "file:docuflow.db")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("PIPELINE_WORKERS", "8")
	t.Setenv("PIPELINE_PROCESS_TIMEOUT", "90s")
	t.Setenv("TESSERACT_LANG", "hin")

	cfg := LoadConfig()

	if cfg.Database.Driver != "sqlite" {
		t.Fatalf("driver = %q", cfg.Database.Driver)
	}
	if cfg.Pipeline.Workers != 8 {
		t.Fatalf("workers = %d", cfg.Pipeline.Workers)
	}
	if cfg.Pipeline.ProcessTimeout != 90*time.Second {
		t.Fatalf("process timeout = %v", cfg.Pipeline.ProcessTimeout)
	}
	if cfg.OCR.TesseractLang != "hin" {
		t.Fatalf("tesseract lang = %q", cfg.OCR.TesseractLang)
	}
}

func TestLoadConfigBadValuesFallBack(t *testing.T) {
	t.Setenv("DB_URL", "postgres://localhost/docuflow")
	t.Setenv("PIPELINE_WORKERS", "many")
	t.Setenv("DB_HEALTH_TIMEOUT", "soon")

	cfg := LoadConfig()

	if cfg.Pipeline.Workers != 4 {
		t.Fatalf("unparsable int must keep the default, got %d", cfg.Pipeline.Workers)
	}
	if cfg.Database.HealthTimeout != 3*time.Second {
		t.Fatalf("unparsable duration must keep the default, got %v", cfg.Database.HealthTimeout)
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing dsn", func(c *Config) { c.Database.DSN = "" }},
		{"bad driver", func(c *Config) { c.Database.Driver = "oracle" }},
		{"threshold too high", func(c *Config) { c.Pipeline.ConfidenceThreshold = 101 }},
		{"missing upload dir", func(c *Config) { c.Upload.Dir = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("DB_URL", "postgres://localhost/docuflow")
			cfg := LoadConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}
