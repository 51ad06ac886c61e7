package gallica

import (
	"html"
	"regexp"
	"strings"
)

// The raw-text endpoint serves an HTML page, not plain text. Logical breaks
// (br, hr, block elements) are preserved as newlines before tags are
// dropped, then entities are unescaped and whitespace collapsed.
var (
	reBreak      = regexp.MustCompile(`(?i)<\s*br\s*/?>`)
	reRule       = regexp.MustCompile(`(?i)<\s*hr\b[^>]*>`)
	reBlock      = regexp.MustCompile(`(?i)</?\s*(p|div|section|article|li|h[1-6]|tr|td|table)\b[^>]*>`)
	reTag        = regexp.MustCompile(`<[^>]+>`)
	reBlankSpace = regexp.MustCompile("[\t\x0b\f]+")
	reBlankLines = regexp.MustCompile(`\n{3,}`)
	reTrailWS    = regexp.MustCompile(` +\n`)
	reLeadWS     = regexp.MustCompile(`\n +`)
	reMultiSpace = regexp.MustCompile(` {2,}`)
)

const ruleMarker = "\x00HR\x00"

func htmlToPlainText(page string) string {
	text := reBreak.ReplaceAllString(page, "\n")
	text = reRule.ReplaceAllString(text, "\n"+ruleMarker+"\n")
	text = reBlock.ReplaceAllString(text, "\n")

	text = reTag.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, ruleMarker, "<hr>")
	text = html.UnescapeString(text)
	text = strings.ReplaceAll(text, "\r", "")

	text = reBlankSpace.ReplaceAllString(text, " ")
	text = reBlankLines.ReplaceAllString(text, "\n\n")
	text = reTrailWS.ReplaceAllString(text, "\n")
	text = reLeadWS.ReplaceAllString(text, "\n")
	text = reMultiSpace.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// stripMarkup removes inline HTML from snippet excerpts and collapses
// whitespace into single spaces.
func stripMarkup(s string) string {
	s = reTag.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
