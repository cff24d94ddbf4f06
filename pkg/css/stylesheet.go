package css

import (
	"strconv"
	"sync/atomic"
)

var sheetCounter uint64

// StyleSheet is a named unit of CSS text that is only ever cleared or
// replaced as a whole.
type StyleSheet struct {
	id   string
	text string
}

// NewStyleSheet creates a sheet with the given text. An empty id gets a
// generated one.
func NewStyleSheet(id, text string) *StyleSheet {
	if id == "" {
		id = "sheet-" + strconv.FormatUint(atomic.AddUint64(&sheetCounter, 1), 10)
	}
	return &StyleSheet{id: id, text: text}
}

// ID returns the sheet identifier.
func (s *StyleSheet) ID() string {
	return s.id
}

// Text returns the current CSS text.
func (s *StyleSheet) Text() string {
	return s.text
}

// Empty reports whether the sheet has no text.
func (s *StyleSheet) Empty() bool {
	return s.text == ""
}

// Clear sets the text to empty.
func (s *StyleSheet) Clear() {
	s.text = ""
}

// Replace sets the text.
func (s *StyleSheet) Replace(text string) {
	s.text = text
}

func (*StyleSheet) isEntry() {}
