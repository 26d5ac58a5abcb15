package note

import (
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// exportDoc is the YAML shape written by Export. Timestamps become
// RFC3339 so exports read well outside the application.
type exportDoc struct {
	ExportedAt string       `yaml:"exported_at"`
	Count      int          `yaml:"count"`
	Notes      []exportNote `yaml:"notes"`
}

type exportNote struct {
	ID        string   `yaml:"id"`
	Title     string   `yaml:"title"`
	Content   string   `yaml:"content,omitempty"`
	Tags      []string `yaml:"tags,omitempty"`
	CreatedAt string   `yaml:"created_at"`
	UpdatedAt string   `yaml:"updated_at"`
	Pinned    bool     `yaml:"pinned,omitempty"`
}

// Export writes the collection to w as a YAML document in storage
// order.
func Export(w io.Writer, notes []Note) error {
	doc := exportDoc{
		ExportedAt: timeNow().UTC().Format(time.RFC3339),
		Count:      len(notes),
		Notes:      make([]exportNote, 0, len(notes)),
	}
	for _, n := range notes {
		doc.Notes = append(doc.Notes, exportNote{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			Tags:      n.Tags,
			CreatedAt: time.UnixMilli(n.CreatedAt).UTC().Format(time.RFC3339),
			UpdatedAt: time.UnixMilli(n.UpdatedAt).UTC().Format(time.RFC3339),
			Pinned:    n.Pinned,
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
