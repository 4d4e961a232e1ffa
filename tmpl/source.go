package tmpl

// Source is a re-seekable character stream over template text.
//
// The whole template is held in memory as a rune slice with an explicit
// cursor, so rewinding the stream for a fan-out replay is a plain integer
// assignment rather than a platform seek. The expansion engine records the
// cursor with [Source.Pos] before forking and restores it with [Source.Seek]
// between sibling branches.
type Source struct {
	runes []rune
	pos   int
}

// NewSource creates a Source over the given template text.
func NewSource(text string) *Source {
	return &Source{runes: []rune(text)}
}

// Next consumes and returns the next rune.
// The second return value is false at end of stream.
func (s *Source) Next() (rune, bool) {
	if s.pos >= len(s.runes) {
		return 0, false
	}

	r := s.runes[s.pos]
	s.pos++

	return r, true
}

// Peek returns the next rune without consuming it.
// The second return value is false at end of stream.
func (s *Source) Peek() (rune, bool) {
	if s.pos >= len(s.runes) {
		return 0, false
	}

	return s.runes[s.pos], true
}

// Pos returns the current cursor position for a later [Source.Seek].
func (s *Source) Pos() int { return s.pos }

// Seek resets the cursor to a position previously returned by [Source.Pos].
func (s *Source) Seek(pos int) {
	if pos < 0 {
		pos = 0
	}

	if pos > len(s.runes) {
		pos = len(s.runes)
	}

	s.pos = pos
}

// Len returns the total number of runes in the stream.
func (s *Source) Len() int { return len(s.runes) }
