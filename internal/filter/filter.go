// Package filter derives ordered publication views from search criteria.
// Nothing here mutates its input.
package filter

import (
	"sort"
	"strings"

	"github.com/ziadkadry99/scholarsite/internal/model"
)

// Criteria narrows a publication list. Zero values leave a dimension
// unconstrained.
type Criteria struct {
	Text string
	Year int
	Tag  string
}

// IsZero reports whether c matches everything.
func (c Criteria) IsZero() bool {
	return c.Text == "" && c.Year == 0 && c.Tag == ""
}

// Apply returns the publications matching every constraint, in input order.
func Apply(pubs []model.Publication, c Criteria) []model.Publication {
	needle := strings.ToLower(c.Text)
	out := make([]model.Publication, 0, len(pubs))
	for _, p := range pubs {
		if c.Year != 0 && p.Year != c.Year {
			continue
		}
		if c.Tag != "" && !p.HasTag(c.Tag) {
			continue
		}
		if needle != "" && !matchesText(p, needle) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesText(p model.Publication, needle string) bool {
	if strings.Contains(strings.ToLower(p.Title), needle) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Venue), needle) {
		return true
	}
	for _, a := range p.Authors {
		if strings.Contains(strings.ToLower(a), needle) {
			return true
		}
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), needle) {
			return true
		}
	}
	return false
}

// SortByYear returns a copy ordered by year, newest first. Equal years keep
// their input order.
func SortByYear(pubs []model.Publication) []model.Publication {
	out := make([]model.Publication, len(pubs))
	copy(out, pubs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Year > out[j].Year
	})
	return out
}

// Top returns at most n publications by year, newest first.
func Top(pubs []model.Publication, n int) []model.Publication {
	sorted := SortByYear(pubs)
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Years lists the distinct publication years, newest first.
func Years(pubs []model.Publication) []int {
	seen := make(map[int]bool)
	var years []int
	for _, p := range pubs {
		if !seen[p.Year] {
			seen[p.Year] = true
			years = append(years, p.Year)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

// Tags lists the distinct tags in ascending order.
func Tags(pubs []model.Publication) []string {
	seen := make(map[string]bool)
	var tags []string
	for _, p := range pubs {
		for _, t := range p.Tags {
			if !seen[t] {
				seen[t] = true
				tags = append(tags, t)
			}
		}
	}
	sort.Strings(tags)
	return tags
}
