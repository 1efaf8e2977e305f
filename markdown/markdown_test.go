package markdown

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestFormatInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"text *italic* more", "text <em>italic</em> more"},
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
		{"use `**raw**` here", "use <code>**raw**</code> here"},
		{"<script>", "&lt;script&gt;"},
		{"[shop](https://example.com/a_b)", `<a href="https://example.com/a_b">shop</a>`},
		{"[bad](javascript:void)", "bad"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"paragraphs", "one\ntwo\n\nthree", "<p>one two</p><p>three</p>"},
		{"headings", "# Title\n## Section\ntext", "<h2>Title</h2><h3>Section</h3><p>text</p>"},
		{"bullets", "- a\n* b\n\nafter", "<ul><li>a</li><li>b</li></ul><p>after</p>"},
		{"numbered", "1. first\n2) second", "<ol><li>first</li><li>second</li></ol>"},
		{"list then paragraph", "- a\nplain", "<ul><li>a</li></ul><p>plain</p>"},
		{"quote", "> wise\n> words", "<blockquote>wise words</blockquote>"},
		{"rule", "a\n---\nb", "<p>a</p><hr/><p>b</p>"},
		{"crlf", "one\r\n\r\ntwo", "<p>one</p><p>two</p>"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToHTML(tt.input)
			if got != tt.expected {
				t.Errorf("ToHTML(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://example.com", "https://example.com"},
		{"/local/path", "/local/path"},
		{"/", "/"},
		{"//evil.example/x", ""},
		{"  //evil.example", ""},
		{`/\evil.example`, ""},
		{"&#47;&#47;evil.example", ""},
		{"#anchor", "#anchor"},
		{"mailto:a@b.c", "mailto:a@b.c"},
		{"javascript:alert(1)", ""},
		{"ftp://example.com", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.expected {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	if err := Component("## Hi").Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "<h3>Hi</h3>") {
		t.Errorf("Component rendered %q", buf.String())
	}
}
