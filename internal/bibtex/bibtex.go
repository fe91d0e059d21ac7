// Package bibtex formats publications as BibTeX @article entries.
package bibtex

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ziadkadry99/scholarsite/internal/model"
)

var (
	punctuation = regexp.MustCompile(`[^\w\s]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// Key derives the citation key: the lowercased title with punctuation and
// whitespace removed, followed by the year.
func Key(p model.Publication) string {
	k := strings.ToLower(p.Title)
	k = punctuation.ReplaceAllString(k, "")
	k = whitespace.ReplaceAllString(k, "")
	return fmt.Sprintf("%s%d", k, p.Year)
}

// Entry renders one @article entry without a trailing newline.
func Entry(p model.Publication) string {
	var b strings.Builder
	fmt.Fprintf(&b, "@article{%s,\n", Key(p))
	fmt.Fprintf(&b, "    title={%s},\n", p.Title)
	fmt.Fprintf(&b, "    author={%s},\n", strings.Join(p.Authors, " and "))
	fmt.Fprintf(&b, "    journal={%s},\n", p.Venue)
	fmt.Fprintf(&b, "    year={%d}\n", p.Year)
	b.WriteString("}")
	return b.String()
}

// Entries renders several entries separated by blank lines.
func Entries(pubs []model.Publication) string {
	parts := make([]string, len(pubs))
	for i, p := range pubs {
		parts[i] = Entry(p)
	}
	return strings.Join(parts, "\n\n")
}
