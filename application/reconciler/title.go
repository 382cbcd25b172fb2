package reconciler

import "strings"

// SplitDocumentTitle extracts a leading markdown "# Heading" line from a
// document. Only the first line is considered; the title has surrounding
// whitespace trimmed and the heading line is stripped from the body. When
// no heading is present the body is returned unchanged and found is false.
func SplitDocumentTitle(content string) (title, body string, found bool) {
	first, rest, hasRest := strings.Cut(content, "\n")

	heading := strings.TrimSpace(first)
	if !strings.HasPrefix(heading, "# ") {
		return "", content, false
	}

	title = strings.TrimSpace(strings.TrimPrefix(heading, "# "))
	if title == "" {
		return "", content, false
	}

	if hasRest {
		body = strings.TrimLeft(rest, " \t\r\n")
	}
	return title, body, true
}
