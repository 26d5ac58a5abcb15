// Package note holds the note domain model: the Note record, the
// in-memory repository mirrored to the store, and the pure query
// functions the presentation layer renders from.
package note

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

type randReader struct{}

func (randReader) Read(p []byte) (int, error) { return rand.Read(p) }

// timeNow is swapped out in tests.
var timeNow = func() time.Time { return time.Now() }

// entropy is shared across mints so ids created within the same
// millisecond still sort in creation order.
var entropy = ulid.Monotonic(randReader{}, 0)

// Note is a single user-authored record. Timestamps are epoch
// milliseconds to match the persisted layout.
type Note struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Content   string   `json:"content"`
	Tags      []string `json:"tags"`
	CreatedAt int64    `json:"createdAt"`
	UpdatedAt int64    `json:"updatedAt"`
	Pinned    bool     `json:"pinned"`
}

// NewID mints a ULID for a fresh note.
func NewID() string {
	id, err := ulid.New(ulid.Timestamp(timeNow()), entropy)
	if err != nil {
		// fallback
		return fmt.Sprintf("%d", timeNow().UnixNano())
	}
	return strings.ToUpper(id.String())
}

// nowMillis returns the current time in epoch milliseconds.
func nowMillis() int64 {
	return timeNow().UnixMilli()
}

// NormalizeTag canonicalizes one raw tag token: trim, collapse internal
// whitespace runs to a single hyphen, strip stray commas, lowercase.
// Returns "" for tokens that normalize away to nothing.
func NormalizeTag(raw string) string {
	t := strings.TrimSpace(raw)
	if t == "" {
		return ""
	}
	t = strings.Join(strings.Fields(t), "-")
	t = strings.ReplaceAll(t, ",", "")
	return strings.ToLower(t)
}

// ParseTags splits comma-separated tag input into normalized tags,
// dropping empties and duplicates while keeping first-occurrence order.
func ParseTags(input string) []string {
	var tags []string
	seen := make(map[string]bool)
	for _, raw := range strings.Split(input, ",") {
		t := NormalizeTag(raw)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

// CleanTags canonicalizes a draft tag list: each entry goes through
// NormalizeTag, empties are dropped, and duplicates are removed keeping
// first-occurrence order. Stored tag sets always pass through here.
func CleanTags(raw []string) []string {
	var tags []string
	seen := make(map[string]bool, len(raw))
	for _, r := range raw {
		t := NormalizeTag(r)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
	}
	return tags
}

// MergeTags unions normalized newcomers into existing, preserving the
// order tags were first added. Uniqueness is case-insensitive because
// every stored tag is already lowercased.
func MergeTags(existing, incoming []string) []string {
	seen := make(map[string]bool, len(existing))
	merged := make([]string, 0, len(existing)+len(incoming))
	for _, t := range existing {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		merged = append(merged, t)
	}
	for _, t := range incoming {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		merged = append(merged, t)
	}
	return merged
}

// HasTag reports whether the note carries the exact normalized tag.
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
