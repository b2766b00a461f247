package search

import (
	"strings"

	"golang.org/x/net/html"
)

// htmlToText extracts the visible text of an HTML fragment such as the
// htmlSnippet field of a search result. Entities are decoded, tags dropped,
// <br> treated as a space and runs of whitespace collapsed.
func htmlToText(fragment string) string {
	if fragment == "" {
		return ""
	}

	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.TextToken:
			sb.Write(z.Text())
		case html.StartTagToken, html.SelfClosingTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				sb.WriteByte(' ')
			}
		}
	}
}

// firstNonEmpty returns plain if it is not blank, otherwise the text of
// htmlValue, otherwise def.
func firstNonEmpty(plain, htmlValue, def string) string {
	if s := strings.TrimSpace(plain); s != "" {
		return s
	}
	if s := htmlToText(htmlValue); s != "" {
		return s
	}
	return def
}
