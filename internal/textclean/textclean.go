// Package textclean prepares user-submitted post content for classification.
package textclean

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
	"golang.org/x/net/html"
)

var whitespace = regexp.MustCompile(`[\s\p{Z}]+`)

// invisible characters that editors leave behind
var invisible = strings.NewReplacer(
	"\u200b", "", // zero width space
	"\ufeff", "", // byte order mark
	"\u2060", "", // word joiner
)

// placeholder base for resolving relative links inside post fragments
var postBaseURL = &url.URL{Scheme: "https", Host: "jearn.local"}

// Clean removes invisible characters, collapses whitespace runs and trims
func Clean(text string) string {
	text = invisible.Replace(text)
	text = whitespace.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// FromHTML extracts the readable text of a post body. Small fragments that
// readability discards fall back to the concatenated text nodes.
func FromHTML(body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}

	article, err := readability.FromReader(strings.NewReader(body), postBaseURL)
	if err == nil {
		if text := Clean(article.TextContent); text != "" {
			return text
		}
	}

	return Clean(textNodes(body))
}

func textNodes(body string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(body))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or a malformed tail; either way keep what was read
			return b.String()
		case html.StartTagToken:
			name, _ := z.TagName()
			if isHidden(string(name)) {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			name, _ := z.TagName()
			if isHidden(string(name)) && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		}
	}
}

func isHidden(tag string) bool {
	return tag == "script" || tag == "style"
}
