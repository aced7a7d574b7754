package reportui

import "testing"

func TestBuildStyledRunesHighlightsDesignated(t *testing.T) {
	runes := buildStyledRunes([]rune("aက"))
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != otherStyle.Render("a") {
		t.Fatalf("expected plain style for latin rune")
	}
	if runes[1].s != designatedStyle.Render("က") {
		t.Fatalf("expected designated style for burmese rune")
	}
}

func TestWrapStyledRunesBreaksAtSpace(t *testing.T) {
	got := wrapStyledRunes(buildStyledRunes([]rune("ab cd")), 3)
	want := otherStyle.Render("a") + otherStyle.Render("b") + "\n" +
		otherStyle.Render("c") + otherStyle.Render("d")
	if got != want {
		t.Fatalf("unexpected wrap %q, want %q", got, want)
	}
}

func TestWrapStyledRunesBreaksLongWord(t *testing.T) {
	got := wrapStyledRunes(buildStyledRunes([]rune("abcd")), 2)
	want := otherStyle.Render("a") + otherStyle.Render("b") + "\n" +
		otherStyle.Render("c") + otherStyle.Render("d")
	if got != want {
		t.Fatalf("unexpected wrap %q, want %q", got, want)
	}
}

func TestRenderTextKeepsLines(t *testing.T) {
	got := renderText("a\r\nb", 10)
	want := otherStyle.Render("a") + "\n" + otherStyle.Render("b")
	if got != want {
		t.Fatalf("unexpected text %q, want %q", got, want)
	}
	if renderText("", 10) != "No text." {
		t.Fatalf("expected placeholder for empty text")
	}
}
