// Package markdown turns generated article text into HTML for a blog body.
// It understands the subset language models usually emit: headings, bullet
// and numbered lists, quotes, rules, paragraphs and inline emphasis, links
// and code. Everything else is escaped and rendered as paragraph text.
package markdown

import (
	"context"
	"html"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/a-h/templ"
)

var (
	reBold        = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reItalic      = regexp.MustCompile(`\*([^*]+)\*`)
	reInlineCode  = regexp.MustCompile("`([^`]+)`")
	reLink        = regexp.MustCompile(`\[(.*?)\]\((.*?)\)`)
	reOrderedList = regexp.MustCompile(`^\d+[.)]\s`)
	reHeading     = regexp.MustCompile(`^(#{1,4})\s+(.*)$`)
	reRule        = regexp.MustCompile(`^(-{3,}|\*{3,})$`)
)

type block int

const (
	blockNone block = iota
	blockPara
	blockList
	blockOrdered
	blockQuote
)

var closers = map[block]string{
	blockPara:    "</p>",
	blockList:    "</ul>",
	blockOrdered: "</ol>",
	blockQuote:   "</blockquote>",
}

// Component returns a templ.Component that renders text as HTML.
func Component(text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, ToHTML(text))
		return err
	})
}

// ToHTML renders text as an HTML fragment. Blank lines separate blocks.
// A heading level of one is rendered as h2 so the blog title keeps h1.
func ToHTML(text string) string {
	var b strings.Builder
	open := blockNone
	enter := func(next block, tag string) {
		if open == next {
			return
		}
		b.WriteString(closers[open])
		open = next
		b.WriteString(tag)
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(strings.TrimRight(raw, "\r"))
		switch {
		case line == "":
			enter(blockNone, "")
		case reRule.MatchString(line):
			enter(blockNone, "")
			b.WriteString("<hr/>")
		case reHeading.MatchString(line):
			enter(blockNone, "")
			m := reHeading.FindStringSubmatch(line)
			level := len(m[1]) + 1
			tag := "h" + string(rune('0'+level))
			b.WriteString("<" + tag + ">" + FormatInline(m[2]) + "</" + tag + ">")
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			enter(blockList, "<ul>")
			b.WriteString("<li>" + FormatInline(strings.TrimSpace(line[2:])) + "</li>")
		case reOrderedList.MatchString(line):
			enter(blockOrdered, "<ol>")
			b.WriteString("<li>" + FormatInline(reOrderedList.ReplaceAllString(line, "")) + "</li>")
		case strings.HasPrefix(line, "> "):
			if open == blockQuote {
				b.WriteString(" ")
			}
			enter(blockQuote, "<blockquote>")
			b.WriteString(FormatInline(strings.TrimSpace(line[2:])))
		default:
			if open == blockPara {
				b.WriteString(" ")
			}
			enter(blockPara, "<p>")
			b.WriteString(FormatInline(line))
		}
	}
	b.WriteString(closers[open])
	return b.String()
}

// FormatInline escapes s and applies bold, italic, code and link formatting.
func FormatInline(s string) string {
	escaped := html.EscapeString(s)
	var code []string
	escaped = reInlineCode.ReplaceAllStringFunc(escaped, func(m string) string {
		code = append(code, "<code>"+reInlineCode.FindStringSubmatch(m)[1]+"</code>")
		return "\x00" + string(rune('A'+len(code)-1)) + "\x00"
	})
	escaped = reLink.ReplaceAllStringFunc(escaped, func(m string) string {
		match := reLink.FindStringSubmatch(m)
		href := SafeURL(match[2])
		if href == "" {
			return match[1]
		}
		return `<a href="` + href + `">` + match[1] + `</a>`
	})
	escaped = applyOutsideTags(escaped, func(seg string) string {
		seg = reBold.ReplaceAllString(seg, "<strong>$1</strong>")
		return reItalic.ReplaceAllString(seg, "<em>$1</em>")
	})
	for i, c := range code {
		escaped = strings.Replace(escaped, "\x00"+string(rune('A'+i))+"\x00", c, 1)
	}
	return escaped
}

// applyOutsideTags applies fn only to text outside HTML tags so formatting
// never touches attribute values.
func applyOutsideTags(s string, fn func(string) string) string {
	var buf strings.Builder
	for len(s) > 0 {
		lt := strings.Index(s, "<")
		if lt < 0 {
			buf.WriteString(fn(s))
			break
		}
		buf.WriteString(fn(s[:lt]))
		gt := strings.Index(s[lt:], ">")
		if gt < 0 {
			buf.WriteString(s[lt:])
			break
		}
		buf.WriteString(s[lt : lt+gt+1])
		s = s[lt+gt+1:]
	}
	return buf.String()
}

// SafeURL returns raw escaped for an href attribute, or "" when its scheme is
// not http, https or mailto. Root-relative paths and fragments are allowed;
// protocol-relative ones ("//host", "/\host") are not.
func SafeURL(raw string) string {
	val := strings.TrimSpace(html.UnescapeString(raw))
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "//") || strings.HasPrefix(val, "/\\") {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return html.EscapeString(val)
	}
	u, err := url.Parse(val)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return html.EscapeString(val)
	}
	return ""
}
