// Package extract recovers publication metadata from the free-text prose a
// vision model returns for a scanned document. The matching is heuristic by
// design: model output is unstructured, so a layered set of case-insensitive
// patterns is applied and the first match wins.
package extract

import (
	"regexp"
	"strings"
)

// Sentinels for fields the patterns could not recover. Callers compare
// against these rather than the empty string so that a genuinely empty
// capture is still distinguishable from "nothing matched".
const (
	TitleNotFound = "Title not found"
	DOINotFound   = "DOI not found"
)

// Metadata is the structured result of one extraction. Each field is
// independently either a found value or its sentinel; immutable once built.
type Metadata struct {
	Title string
	DOI   string
}

// HasTitle reports whether a title was recovered.
func (m Metadata) HasTitle() bool { return m.Title != TitleNotFound }

// HasDOI reports whether a DOI was recovered.
func (m Metadata) HasDOI() bool { return m.DOI != DOINotFound }

var (
	// Title appears either as prose ("... titled 'X' ...") or as a
	// markdown-bold label ("**Title:** X"). The alternation order matters:
	// the quoted-phrase form is tried at each position before the label
	// form, and the leftmost match wins.
	titleRe = regexp.MustCompile(`(?i)(?:titled|title is)\s*["'](.*?)["']|\*\*Title:\*\*\s*(.*)`)

	// DOI directory indicators are 4-9 digits; the suffix alphabet follows
	// the registrant conventions seen in practice.
	doiRe = regexp.MustCompile(`(?i)10\.\d{4,9}/[-._;()/:A-Z0-9]+`)
)

// Extract mines the model's description for a title and a DOI. The two
// searches are independent; either, both, or neither may succeed. A found
// DOI is returned as a complete resolver URL.
func Extract(text string) Metadata {
	meta := Metadata{
		Title: TitleNotFound,
		DOI:   DOINotFound,
	}

	if m := titleRe.FindStringSubmatch(text); m != nil {
		title := m[1]
		if title == "" {
			title = m[2]
		}
		title = strings.TrimSpace(title)
		if title != "" {
			meta.Title = title
		}
	}

	if m := doiRe.FindString(text); m != "" {
		// Sentence punctuation right after a DOI is part of the prose,
		// not the identifier.
		cleaned := strings.TrimRight(m, ".,")
		if cleaned != "" {
			meta.DOI = "https://doi.org/" + cleaned
		}
	}

	return meta
}
