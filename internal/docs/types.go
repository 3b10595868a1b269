package docs

import "fmt"

// DocumentRef identifies a document in tool results.
type DocumentRef struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	URL        string `json:"url"`
}

// DocumentURL returns the editor URL of a document.
func DocumentURL(documentID string) string {
	return fmt.Sprintf("https://docs.google.com/document/d/%s/edit", documentID)
}

// TextFormat is a partial text style. Nil fields are left untouched.
type TextFormat struct {
	Bold            *bool
	Italic          *bool
	Underline       *bool
	FontSize        *float64
	ForegroundColor string
}

// IsEmpty reports whether no style field is set.
func (f TextFormat) IsEmpty() bool {
	return f.Bold == nil && f.Italic == nil && f.Underline == nil && f.FontSize == nil && f.ForegroundColor == ""
}

// NamedStyles are the paragraph styles accepted by SetHeading.
var NamedStyles = []string{
	"NORMAL_TEXT",
	"TITLE",
	"SUBTITLE",
	"HEADING_1",
	"HEADING_2",
	"HEADING_3",
	"HEADING_4",
	"HEADING_5",
	"HEADING_6",
}
