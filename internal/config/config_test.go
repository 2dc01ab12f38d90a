package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadFrom_Defaults(t *testing.T) {
	got, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		DBPath:    "data/questsim.db",
		LogLevel:  "info",
		LogFormat: "text",
		MaxLevel:  100,
		Workers:   4,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFrom_Overrides(t *testing.T) {
	got, err := LoadFrom(map[string]string{
		"QUESTSIM_DB_PATH":    "/tmp/q.db",
		"QUESTSIM_SEED":       "42",
		"QUESTSIM_LOG_FORMAT": "json",
		"QUESTSIM_WORKERS":    "8",
		"QUESTSIM_ESCALATED":  "true",
	})
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		DBPath:    "/tmp/q.db",
		Seed:      42,
		LogLevel:  "info",
		LogFormat: "json",
		MaxLevel:  100,
		Workers:   8,
		Escalated: true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("overrides mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_ProcessEnvironment(t *testing.T) {
	t.Setenv("QUESTSIM_SEED", "7")
	got, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if got.Seed != 7 {
		t.Errorf("Seed = %d, want 7", got.Seed)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"zero workers":      {"QUESTSIM_WORKERS": "0"},
		"bad format":        {"QUESTSIM_LOG_FORMAT": "xml"},
		"max below veteran": {"QUESTSIM_MAX_LEVEL": "10"},
		"unparseable seed":  {"QUESTSIM_SEED": "lucky"},
	}
	for name, environ := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFrom(environ); err == nil {
				t.Error("expected error")
			}
		})
	}
}
