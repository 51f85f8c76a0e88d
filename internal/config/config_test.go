package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"RESULTS_YEAR", "RESULTS_OUTPUT_DIR", "RESULTS_DEBUG", "DEBUG",
		"AWARDS_FILE", "GIFT_CARD_VENDORS", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Run.Year != time.Now().Year() {
		t.Errorf("Run.Year = %d, want current year %d", cfg.Run.Year, time.Now().Year())
	}
	if cfg.Run.Debug {
		t.Error("Run.Debug = true, want false")
	}
	if cfg.Run.OutputDir != "" {
		t.Errorf("Run.OutputDir = %q, want empty", cfg.Run.OutputDir)
	}
	if len(cfg.Awards.Vendors) != 0 {
		t.Errorf("Awards.Vendors = %v, want none", cfg.Awards.Vendors)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v, want info/text", cfg.Logging)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("RESULTS_YEAR", "2019")
	t.Setenv("RESULTS_OUTPUT_DIR", "/tmp/out")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Run.Year != 2019 {
		t.Errorf("Run.Year = %d, want %d", cfg.Run.Year, 2019)
	}
	if cfg.Run.YearLabel() != "2019" {
		t.Errorf("YearLabel() = %q, want %q", cfg.Run.YearLabel(), "2019")
	}
	if cfg.Run.OutputDir != "/tmp/out" {
		t.Errorf("Run.OutputDir = %q, want %q", cfg.Run.OutputDir, "/tmp/out")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v, want debug/json", cfg.Logging)
	}
}

func TestLoad_AltEnvVar(t *testing.T) {
	clearEnv(t)
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if !cfg.Run.Debug {
		t.Error("Run.Debug = false, want true from DEBUG")
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	clearEnv(t)
	t.Setenv("RESULTS_YEAR", "next year")

	if _, err := Load(); err == nil {
		t.Fatal("Load() expected error for non-numeric RESULTS_YEAR")
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	clearEnv(t)
	t.Setenv("GIFT_CARD_VENDORS", "TB, THBA ,, Cask")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"TB", "THBA", "Cask"}
	if len(cfg.Awards.Vendors) != len(expected) {
		t.Fatalf("Vendors length = %d, want %d", len(cfg.Awards.Vendors), len(expected))
	}
	for i, v := range expected {
		if cfg.Awards.Vendors[i] != v {
			t.Errorf("Vendors[%d] = %q, want %q", i, cfg.Awards.Vendors[i], v)
		}
	}
}

func TestLoadStruct_RequiredAndDuration(t *testing.T) {
	type probe struct {
		Wait  time.Duration `env:"PROBE_WAIT" default:"1m30s"`
		Token string        `env:"PROBE_TOKEN" required:"true"`
	}

	t.Setenv("PROBE_TOKEN", "")
	os.Unsetenv("PROBE_TOKEN")

	var p probe
	err := loadStruct(reflect.ValueOf(&p).Elem())
	if err == nil || !strings.Contains(err.Error(), "PROBE_TOKEN") {
		t.Fatalf("loadStruct() error = %v, want missing PROBE_TOKEN", err)
	}

	t.Setenv("PROBE_TOKEN", "abc")
	p = probe{}
	if err := loadStruct(reflect.ValueOf(&p).Elem()); err != nil {
		t.Fatalf("loadStruct() error = %v", err)
	}
	if p.Wait != 90*time.Second {
		t.Errorf("Wait = %v, want %v", p.Wait, 90*time.Second)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Run:     RunConfig{Year: 2024},
			Awards:  AwardsConfig{Vendors: []string{"TB", "THBA"}},
			Logging: LoggingConfig{Level: "info", Format: "text"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"negative year", func(c *Config) { c.Run.Year = -1 }, "RESULTS_YEAR"},
		{"duplicate vendor", func(c *Config) { c.Awards.Vendors = []string{"TB", "TB"} }, "GIFT_CARD_VENDORS"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() expected error mentioning %s", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %s: %v", tt.wantErr, err)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := &Config{
		Run:     RunConfig{Year: -5},
		Logging: LoggingConfig{Level: "loud", Format: "xml"},
	}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error")
	}
	for _, want := range []string{"RESULTS_YEAR", "LOG_LEVEL", "LOG_FORMAT"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error should mention %s: %v", want, err)
		}
	}
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		Run:     RunConfig{Year: 2024, Debug: true},
		Awards:  AwardsConfig{File: "awards.yaml", Vendors: []string{"TB"}},
		Logging: LoggingConfig{Level: "info", Format: "json"},
	}
	str := cfg.String()
	for _, want := range []string{"Year: 2024", "Debug: true", `"awards.yaml"`, "[TB]", `"json"`} {
		if !strings.Contains(str, want) {
			t.Errorf("String() = %s, missing %s", str, want)
		}
	}
}

func TestResolveDefaults(t *testing.T) {
	tests := []struct {
		name string
		year int
		want int
	}{
		{"zero uses current year", 0, time.Now().Year()},
		{"explicit year kept", 2019, 2019},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Run: RunConfig{Year: tt.year}}
			cfg.ResolveDefaults()
			if cfg.Run.Year != tt.want {
				t.Errorf("Run.Year = %d, want %d", cfg.Run.Year, tt.want)
			}
		})
	}
}
