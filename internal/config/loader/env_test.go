package loader

import (
	"testing"
)

func TestEnvLoader_Load(t *testing.T) {
	t.Setenv("KCTEST_THEME", "dark")
	t.Setenv("KCTEST_LOG_LEVEL", "debug")
	t.Setenv("KCTEST_HISTORY_SIZE", "9")
	t.Setenv("KCTEST_PRECISION", "0")
	t.Setenv("KCTEST_SHOW_MEMORY", "off")

	config, err := NewEnvLoader("KCTEST_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	tests := []struct {
		path string
		want any
	}{
		{"ui.theme", "dark"},
		{"logging.level", "debug"},
		{"engine.history_size", int64(9)},
		{"engine.precision", int64(0)},
		{"ui.show_memory", false},
	}
	for _, tt := range tests {
		if v, ok := GetByPath(config, tt.path); !ok || v != tt.want {
			t.Errorf("%s = %v (%T), want %v", tt.path, v, v, tt.want)
		}
	}
}

func TestEnvLoader_LoadUnmapped(t *testing.T) {
	t.Setenv("KCTEST_UI_ERROR_DISPLAY_MS", "250")
	t.Setenv("KCTEST_LONELY", "x")

	config, err := NewEnvLoader("KCTEST_").Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if v, ok := GetByPath(config, "ui.error_display_ms"); !ok || v != int64(250) {
		t.Errorf("ui.error_display_ms = %v, want 250", v)
	}
	if _, ok := config["lonely"]; ok {
		t.Error("variable without a section should be ignored")
	}
}

func TestEnvLoader_AddMapping(t *testing.T) {
	t.Setenv("KCTEST_STARTUP", "init.lua")

	l := NewEnvLoaderWithMapping("KCTEST_", nil)
	l.AddMapping("KCTEST_STARTUP", "scripts.startup")
	config, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if v, _ := GetByPath(config, "scripts.startup"); v != "init.lua" {
		t.Errorf("scripts.startup = %v, want init.lua", v)
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"true", true},
		{"Yes", true},
		{"off", false},
		{"1", int64(1)},
		{"0", int64(0)},
		{"-3", int64(-3)},
		{"0.5", 0.5},
		{"1.2.3", "1.2.3"},
		{"", ""},
		{"light", "light"},
	}
	for _, tt := range tests {
		if got := parseValue(tt.in); got != tt.want {
			t.Errorf("parseValue(%q) = %v (%T), want %v (%T)", tt.in, got, got, tt.want, tt.want)
		}
	}
}
