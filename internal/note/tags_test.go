package note

import (
	"reflect"
	"testing"
)

func TestTagCountsAlphabeticalAndDeduplicatedPerNote(t *testing.T) {
	notes := []Note{
		{ID: "1", Tags: []string{"work", "urgent", "work"}},
		{ID: "2", Tags: []string{"work"}},
		{ID: "3", Tags: []string{"design"}},
		{ID: "4", Tags: nil},
	}

	got := TagCounts(notes)
	want := []TagCount{
		{Tag: "design", Count: 1},
		{Tag: "urgent", Count: 1},
		{Tag: "work", Count: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TagCounts() = %v, want %v", got, want)
	}
}

func TestTagCountsEmptyCollection(t *testing.T) {
	if got := TagCounts(nil); len(got) != 0 {
		t.Errorf("TagCounts(nil) = %v, want empty", got)
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		notes []Note
		want  Stats
	}{
		{"empty", nil, Stats{}},
		{"no pins", []Note{{ID: "1"}, {ID: "2"}}, Stats{Total: 2}},
		{"mixed", []Note{{ID: "1", Pinned: true}, {ID: "2"}, {ID: "3", Pinned: true}}, Stats{Total: 3, Pinned: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.notes); got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
