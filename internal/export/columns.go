// Package export renders a comparison's conflicts as CSV or XLSX.
package export

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"verdicto/internal/domain"
)

// columns defines the header row shared by both formats.
var columns = []string{
	"#",
	"Type",
	"Severity",
	"Description",
	"Affected Documents",
	"Pages",
	"Excerpts",
	"Recommendation",
}

// conflictToRow converts one conflict to a row. n is the 1-based conflict number.
func conflictToRow(n int, c *domain.Conflict) []string {
	titles := make([]string, 0, len(c.AffectedDocuments))
	pages := make([]string, 0, len(c.AffectedDocuments))
	excerpts := make([]string, 0, len(c.AffectedDocuments))
	for _, ad := range c.AffectedDocuments {
		title := ad.Title
		if title == "" {
			title = ad.DocumentID.String()
		}
		titles = append(titles, title)
		if ad.Page != nil {
			pages = append(pages, strconv.Itoa(*ad.Page))
		} else {
			pages = append(pages, "-")
		}
		if ad.Excerpt != "" {
			excerpts = append(excerpts, ad.Excerpt)
		}
	}

	return []string{
		strconv.Itoa(n),
		string(c.Type),
		string(c.Severity),
		c.Description,
		strings.Join(titles, "; "),
		strings.Join(pages, "; "),
		strings.Join(excerpts, " | "),
		c.Recommendation,
	}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(time.RFC3339)
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename replaces everything except letters, digits, - and _ with _,
// collapses runs of underscores and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns the Content-Disposition filename for an export.
// Format: {first_document_title}_conflicts_{YYYY-MM-DD}.{ext}
func BuildFilename(comp *domain.Comparison, ext string) string {
	base := ""
	if len(comp.DocumentTitles) > 0 {
		base = SanitizeFilename(comp.DocumentTitles[0])
	}
	if base == "" {
		base = "comparison_" + comp.ID.String()[:8]
	}
	return fmt.Sprintf("%s_conflicts_%s.%s", base, time.Now().Format("2006-01-02"), ext)
}
