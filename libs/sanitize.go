package libs

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/atom"
)

var (
	tagPattern    = regexp.MustCompile(`^<(/?)([a-zA-Z][a-zA-Z0-9]*)(\s[^<>]*)?/?>`)
	entityPattern = regexp.MustCompile(`^&(#[0-9]+|#[xX][0-9a-fA-F]+|[a-zA-Z][a-zA-Z0-9]*);`)
)

// voidElements never have a closing tag.
var voidElements = map[atom.Atom]bool{
	atom.Area: true, atom.Base: true, atom.Br: true, atom.Col: true,
	atom.Embed: true, atom.Hr: true, atom.Img: true, atom.Input: true,
	atom.Link: true, atom.Meta: true, atom.Source: true, atom.Track: true,
	atom.Wbr: true,
}

// PlainText drops HTML markup from pasted text and returns what a reader
// would see. Only tags naming a known HTML element and well-formed entities
// count as markup. An opening tag also needs its closing tag later in the
// text unless the element is void. Any other '<' or '&' is kept as typed, so
// "x<y" survives.
func PlainText(s string) string {
	escaped, hasMarkup := escapeStray(s)
	if !hasMarkup {
		return strings.TrimSpace(s)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(escaped))
	if err != nil {
		return strings.TrimSpace(s)
	}
	doc.Find("script, style").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("p, div, li").Each(func(i int, sel *goquery.Selection) {
		sel.AppendHtml("\n")
	})
	return strings.TrimSpace(doc.Text())
}

// escapeStray rewrites every '<' and '&' that does not start real markup as
// an entity and reports whether any real markup was seen.
func escapeStray(s string) (string, bool) {
	var b strings.Builder
	b.Grow(len(s))
	found := false
	for i := 0; i < len(s); {
		switch s[i] {
		case '<':
			if m := tagPattern.FindStringSubmatch(s[i:]); m != nil && isMarkupTag(m, s[i+len(m[0]):]) {
				b.WriteString(m[0])
				i += len(m[0])
				found = true
				continue
			}
			b.WriteString("&lt;")
		case '&':
			if m := entityPattern.FindString(s[i:]); m != "" {
				b.WriteString(m)
				i += len(m)
				found = true
				continue
			}
			b.WriteString("&amp;")
		default:
			b.WriteByte(s[i])
		}
		i++
	}
	return b.String(), found
}

// isMarkupTag checks a tagPattern match; rest is the text after the tag.
func isMarkupTag(m []string, rest string) bool {
	name := strings.ToLower(m[2])
	a := atom.Lookup([]byte(name))
	if a == 0 {
		return false
	}
	if m[1] == "/" || voidElements[a] {
		return true
	}
	return strings.Contains(strings.ToLower(rest), "</"+name)
}
