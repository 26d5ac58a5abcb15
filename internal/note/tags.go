package note

import "sort"

// TagCount pairs a tag with the number of notes carrying it.
type TagCount struct {
	Tag   string
	Count int
}

// TagCounts computes the tag registry for a collection: each note
// contributes at most one count per distinct tag, output is sorted by
// tag in codepoint order.
func TagCounts(notes []Note) []TagCount {
	counts := make(map[string]int)
	for _, n := range notes {
		seen := make(map[string]bool, len(n.Tags))
		for _, t := range n.Tags {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			counts[t]++
		}
	}

	out := make([]TagCount, 0, len(counts))
	for t, c := range counts {
		out = append(out, TagCount{Tag: t, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Tag < out[j].Tag })
	return out
}

// Stats summarizes the unfiltered collection.
type Stats struct {
	Total  int
	Pinned int
}

// Summarize counts all notes and the pinned subset.
func Summarize(notes []Note) Stats {
	st := Stats{Total: len(notes)}
	for _, n := range notes {
		if n.Pinned {
			st.Pinned++
		}
	}
	return st
}
