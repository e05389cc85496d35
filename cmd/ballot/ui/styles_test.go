package ui

import (
	"strings"
	"testing"
)

func TestDetectTheme(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("BALLOT_DARK_MODE", "1")
	dark := DetectTheme()
	if !dark.IsDark {
		t.Fatalf("expected dark theme when BALLOT_DARK_MODE=1")
	}

	t.Setenv("BALLOT_DARK_MODE", "")
	light := DetectTheme()
	if light.IsDark {
		t.Fatalf("expected light theme when BALLOT_DARK_MODE is unset")
	}
}

func TestDetectTheme_ColorFgBg(t *testing.T) {
	t.Setenv("BALLOT_DARK_MODE", "")

	t.Setenv("COLORFGBG", "15;0")
	if !DetectTheme().IsDark {
		t.Error("background 0 should be dark")
	}

	t.Setenv("COLORFGBG", "0;15")
	if DetectTheme().IsDark {
		t.Error("background 15 should be light")
	}

	t.Setenv("COLORFGBG", "garbage")
	if DetectTheme().IsDark {
		t.Error("unparseable COLORFGBG should fall back to light")
	}
}

func TestThemeFor(t *testing.T) {
	t.Setenv("COLORFGBG", "")
	t.Setenv("BALLOT_DARK_MODE", "1")

	if ThemeFor("light").IsDark {
		t.Error("explicit light must win over detection")
	}
	if !ThemeFor("dark").IsDark {
		t.Error("expected dark")
	}
	if !ThemeFor("auto").IsDark {
		t.Error("auto should detect dark from BALLOT_DARK_MODE")
	}
}

func TestRenderDivider(t *testing.T) {
	s := NewStyles(LightTheme())
	if got := s.RenderDivider(5); !strings.Contains(got, "─────") {
		t.Errorf("expected five rule characters, got %q", got)
	}
	if got := s.RenderDivider(-3); strings.Contains(got, "─") {
		t.Errorf("negative width should render nothing, got %q", got)
	}
}
