package note

import "time"

// NoteType selects which content field of a note is authoritative.
type NoteType string

const (
	TextNote      NoteType = "text"
	ChecklistNote NoteType = "checklist"
)

func (t NoteType) Valid() bool {
	return t == TextNote || t == ChecklistNote
}

// DefaultTitle is assigned when a note is saved without one.
const DefaultTitle = "Untitled"

type ChecklistItem struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// Note is a user-authored memo, either free text or a checklist. Exactly one
// of Content and Checklist is active depending on Type; the inactive field
// is cleared on save rather than left stale. Files and Labels are always
// non-nil slices so the presentation layer never has to nil-check them.
type Note struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Type      NoteType        `json:"type"`
	Content   string          `json:"content"`
	Checklist []ChecklistItem `json:"checklist"`
	Files     []string        `json:"files"`
	Labels    []string        `json:"labels"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// repaired returns the note with the auxiliary collections guaranteed
// non-nil. Older persisted notes may predate the checklist field entirely.
func (n Note) repaired() Note {
	if n.Checklist == nil {
		n.Checklist = []ChecklistItem{}
	}
	if n.Files == nil {
		n.Files = []string{}
	}
	if n.Labels == nil {
		n.Labels = []string{}
	}
	return n
}
