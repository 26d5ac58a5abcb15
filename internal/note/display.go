package note

import (
	"sort"
	"strings"
)

// Display filters and orders notes for presentation. A note matches
// when the query (case-insensitive) appears in its title, content, or
// any tag, and when tagFilter (exact normalized tag, "" = no filter)
// is present in its tag set. Pinned notes sort before unpinned; within
// a partition newest updatedAt wins; ties keep collection order.
func Display(notes []Note, query, tagFilter string) []Note {
	q := strings.ToLower(query)

	var out []Note
	for _, n := range notes {
		if tagFilter != "" && !n.HasTag(tagFilter) {
			continue
		}
		if q != "" && !matchesQuery(&n, q) {
			continue
		}
		out = append(out, n)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Pinned != out[j].Pinned {
			return out[i].Pinned
		}
		return out[i].UpdatedAt > out[j].UpdatedAt
	})
	return out
}

func matchesQuery(n *Note, q string) bool {
	if strings.Contains(strings.ToLower(n.Title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(n.Content), q) {
		return true
	}
	for _, t := range n.Tags {
		if strings.Contains(strings.ToLower(t), q) {
			return true
		}
	}
	return false
}
