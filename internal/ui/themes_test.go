package ui

import "testing"

func TestSetTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	tests := []struct {
		name     string
		expected string
	}{
		{"dark", "dark"},
		{"light", "light"},
		{"none", "none"},
		{"unknown", "dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetTheme(tt.name)
			if got := GetCurrentTheme().Name; got != tt.expected {
				t.Errorf("SetTheme(%q): theme = %q, want %q", tt.name, got, tt.expected)
			}
		})
	}
}

func TestInitTheme_NoColorFlag(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	InitTheme(true)
	if GetCurrentTheme().Name != "none" {
		t.Error("InitTheme(true) should disable colors")
	}
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("color accessors should return empty strings when colors are off")
	}
}

func TestInitTheme_NoColorEnv(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Error("NO_COLOR should disable colors")
	}
}

func TestGetCurrentTUITheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	SetTheme("dark")
	if GetCurrentTUITheme() != DarkTUITheme {
		t.Error("dark theme should map to the dark TUI palette")
	}

	SetTheme("none")
	if GetCurrentTUITheme() != NoColorTUITheme {
		t.Error("none theme should map to the no-color TUI palette")
	}
}

func TestColorAccessors_DarkTheme(t *testing.T) {
	original := GetCurrentTheme()
	defer SetCurrentTheme(original)

	SetTheme("dark")
	if ColorRed() != DarkTheme.Error {
		t.Errorf("ColorRed() = %q, want %q", ColorRed(), DarkTheme.Error)
	}
	if ColorGreen() != DarkTheme.Success {
		t.Errorf("ColorGreen() = %q, want %q", ColorGreen(), DarkTheme.Success)
	}
}
