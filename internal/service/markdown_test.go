package service

import (
	"strings"
	"testing"
)

func TestRenderMarkdownGFM(t *testing.T) {
	out, err := RenderMarkdown("## Funding\n\nRaised a ~~seed~~ Series A from [Sequoia](https://sequoia.com).")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<h2") {
		t.Fatalf("expected a heading, got %q", out)
	}
	if !strings.Contains(out, "<del>seed</del>") {
		t.Fatalf("expected strikethrough support, got %q", out)
	}
	if !strings.Contains(out, `href="https://sequoia.com"`) {
		t.Fatalf("expected the link preserved, got %q", out)
	}
}

func TestRenderMarkdownSanitizesScripts(t *testing.T) {
	out, err := RenderMarkdown("Hello <script>alert(1)</script> world")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script") {
		t.Fatalf("script tag survived sanitization: %q", out)
	}
	if !strings.Contains(out, "Hello") || !strings.Contains(out, "world") {
		t.Fatalf("surrounding text lost: %q", out)
	}
}

func TestStripHTML(t *testing.T) {
	got := StripHTML("<p>Built in <strong>Pune</strong></p>")
	if got != "Built in Pune" {
		t.Fatalf("expected plain text, got %q", got)
	}
}
