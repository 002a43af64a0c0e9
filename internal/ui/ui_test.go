package ui

import "testing"

func TestStateStyle(t *testing.T) {
	for _, state := range []string{"committed", "suggested", "superseded", "unknown"} {
		// Must not panic and must return a usable style.
		_ = StateStyle(state).Render(state)
	}
}

func TestRenderMarkdownFallsBackWithoutColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	colorOnce.Do(func() {})
	colorEnabled = false

	in := "# Heading\n\nbody\n"
	if got := RenderMarkdown(in); got != in {
		t.Errorf("RenderMarkdown without color = %q, want input unchanged", got)
	}
}

func TestRenderHelpersPassThroughWithoutColor(t *testing.T) {
	colorOnce.Do(func() {})
	colorEnabled = false

	for name, fn := range map[string]func(string) string{
		"pass":  RenderPass,
		"warn":  RenderWarn,
		"fail":  RenderFail,
		"muted": RenderMuted,
	} {
		if got := fn("text"); got != "text" {
			t.Errorf("%s renderer altered text without color: %q", name, got)
		}
	}
}
