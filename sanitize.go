package blogdesk

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/eringen/blogdesk/markdown"
)

// Elements dropped together with everything inside them.
var droppedWithContent = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Iframe:   true,
	atom.Object:   true,
	atom.Noscript: true,
	atom.Template: true,
	atom.Frameset: true,
	atom.Noembed:  true,
	atom.Xmp:      true,
}

// Elements whose tags are dropped while their children are kept. Most are void.
var droppedTags = map[atom.Atom]bool{
	atom.Base:   true,
	atom.Link:   true,
	atom.Meta:   true,
	atom.Embed:  true,
	atom.Frame:  true,
	atom.Form:   true,
	atom.Html:   true,
	atom.Head:   true,
	atom.Body:   true,
	atom.Title:  true,
	atom.Applet: true,
}

var urlAttrs = map[string]bool{
	"href":       true,
	"src":        true,
	"action":     true,
	"poster":     true,
	"background": true,
	"cite":       true,
	"xlink:href": true,
}

// SanitizeHTML strips active content from author-supplied HTML so it can be
// written into public pages: script-bearing elements, event handler and
// inline style attributes, and links whose scheme is not http, https or
// mailto. Text and the remaining markup are re-serialized by the tokenizer,
// so stray angle brackets come out escaped.
func SanitizeHTML(s string) string {
	z := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	depth := 0
	for {
		tt := z.Next()
		switch tt {
		case html.ErrorToken:
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return ""
			}
			return b.String()
		case html.CommentToken, html.DoctypeToken:
			continue
		}

		tok := z.Token()
		if droppedWithContent[tok.DataAtom] {
			switch tt {
			case html.StartTagToken:
				depth++
			case html.EndTagToken:
				if depth > 0 {
					depth--
				}
			}
			continue
		}
		if depth > 0 || droppedTags[tok.DataAtom] {
			continue
		}
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			tok.Attr = cleanAttrs(tok.Attr)
		}
		b.WriteString(tok.String())
	}
}

func cleanAttrs(attrs []html.Attribute) []html.Attribute {
	kept := attrs[:0]
	for _, a := range attrs {
		key := strings.ToLower(a.Key)
		if a.Namespace != "" {
			key = a.Namespace + ":" + key
		}
		switch {
		case strings.HasPrefix(key, "on"), key == "style", key == "srcdoc", key == "formaction", key == "srcset":
			continue
		case urlAttrs[key] && markdown.SafeURL(a.Val) == "":
			continue
		}
		kept = append(kept, a)
	}
	return kept
}
