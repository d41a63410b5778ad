// Package resolve maps extracted metadata to a single browsable URL.
package resolve

import (
	"net/url"

	"github.com/lehigh-university-libraries/scantriage/internal/extract"
)

const searchBase = "https://www.google.com/search?q="

// Destination returns the URL to open for the given metadata. A DOI always
// wins: it is already a complete resolver link. A title alone falls back to
// a search-engine query. ok is false when neither field was found.
func Destination(meta extract.Metadata) (string, bool) {
	if meta.HasDOI() {
		return meta.DOI, true
	}
	if meta.HasTitle() {
		return searchBase + url.QueryEscape(meta.Title), true
	}
	return "", false
}
