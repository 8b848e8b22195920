package sanji

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"slices"
)

// Session is one stage of the puzzle. Chips keep their generation order and
// positions for the whole session; only characters and statuses change, and
// only through [Session.Press] / [Session.Activate]. A Session is not safe
// for concurrent use.
type Session struct {
	level     int
	columns   int
	rowBlocks int
	words     []string
	chips     []Chip
	solved    bool
}

// Result describes what a press changed.
type Result struct {
	Swapped bool  `json:"swapped"`
	A       int   `json:"a"`
	B       int   `json:"b"`
	Locked  []int `json:"locked,omitempty"` // triples locked by this press
	Solved  bool  `json:"solved"`
}

func (s *Session) Level() int     { return s.level }
func (s *Session) Columns() int   { return s.columns }
func (s *Session) RowBlocks() int { return s.rowBlocks }
func (s *Session) Len() int       { return len(s.chips) }
func (s *Session) Solved() bool   { return s.solved }

// Words returns the answer key of the session.
func (s *Session) Words() []string {
	return slices.Clone(s.words)
}

func (s *Session) Chips() []Chip {
	return slices.Clone(s.chips)
}

func (s *Session) Chip(index int) (Chip, error) {
	if index < 0 || index >= len(s.chips) {
		return Chip{}, &IndexOutOfRangeError{Index: index, Len: len(s.chips)}
	}
	return s.chips[index], nil
}

func (s *Session) Selected() []int {
	var selected []int
	for i, c := range s.chips {
		if c.Status == Selected {
			selected = append(selected, i)
		}
	}
	return selected
}

// LockedTriples returns the indices k of the locked slot triples
// (3k, 3k+1, 3k+2).
func (s *Session) LockedTriples() []int {
	var locked []int
	for k := 0; k < len(s.chips); k += 3 {
		if s.chips[k].Status == Locked {
			locked = append(locked, k/3)
		}
	}
	return locked
}

// Activate handles one chip being clicked. Locked chips ignore activation.
func (s *Session) Activate(index int) (Result, error) {
	return s.Press(index)
}

// Press toggles every named chip at once, the way one pointer press toggles
// all chips under the pointer. Afterwards the two lowest-index selected chips,
// if there are two, swap characters and return to idle; any further selected
// chip stays selected. Then every unlocked slot triple spelling a session word
// locks.
func (s *Session) Press(indices ...int) (Result, error) {
	for _, i := range indices {
		if i < 0 || i >= len(s.chips) {
			return Result{}, &IndexOutOfRangeError{Index: i, Len: len(s.chips)}
		}
	}

	indices = slices.Compact(slices.Sorted(slices.Values(indices)))

	toggled := false
	for _, i := range indices {
		switch s.chips[i].Status {
		case Idle:
			s.chips[i].Status = Selected
			toggled = true
		case Selected:
			s.chips[i].Status = Idle
			toggled = true
		}
	}

	var res Result
	if !toggled {
		res.Solved = s.solved
		return res, nil
	}

	if a, b, ok := s.firstTwoSelected(); ok {
		s.chips[a].Character, s.chips[b].Character = s.chips[b].Character, s.chips[a].Character
		s.chips[a].Status = Idle
		s.chips[b].Status = Idle
		res.Swapped, res.A, res.B = true, a, b
	}

	res.Locked = s.lockCompleted()
	res.Solved = s.solved
	return res, nil
}

func (s *Session) firstTwoSelected() (a, b int, ok bool) {
	a = -1
	for i, c := range s.chips {
		if c.Status != Selected {
			continue
		}
		if a < 0 {
			a = i
			continue
		}
		return a, i, true
	}
	return 0, 0, false
}

// lockCompleted runs the completion check over the fixed slot triples and
// returns the triples it locked.
func (s *Session) lockCompleted() []int {
	var locked []int
	for k := 0; k+2 < len(s.chips); k += 3 {
		triple := s.chips[k : k+3]
		if slices.ContainsFunc(triple, func(c Chip) bool { return c.Status == Locked }) {
			continue
		}
		word := string([]rune{triple[0].Character, triple[1].Character, triple[2].Character})
		if !slices.Contains(s.words, word) {
			continue
		}
		for i := range triple {
			triple[i].Status = Locked
		}
		locked = append(locked, k/3)
	}

	if !s.solved && len(locked) > 0 {
		s.solved = !slices.ContainsFunc(s.chips, func(c Chip) bool { return c.Status != Locked })
	}
	return locked
}

type sessionState struct {
	Level     int
	Columns   int
	RowBlocks int
	Words     []string
	Chips     []Chip
	Solved    bool
}

func (s *Session) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	err := gob.NewEncoder(&buf).Encode(sessionState{
		Level:     s.level,
		Columns:   s.columns,
		RowBlocks: s.rowBlocks,
		Words:     s.words,
		Chips:     s.chips,
		Solved:    s.solved,
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeSession(buf []byte) (*Session, error) {
	var state sessionState
	if err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&state); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptState, err)
	}
	if len(state.Words) == 0 || len(state.Chips) != 3*len(state.Words) {
		return nil, fmt.Errorf(
			"%w: %d chips for %d words", ErrCorruptState, len(state.Chips), len(state.Words),
		)
	}
	for _, c := range state.Chips {
		if c.Status < Idle || c.Status > Locked {
			return nil, fmt.Errorf("%w: chip status %d", ErrCorruptState, int(c.Status))
		}
	}
	return &Session{
		level:     state.Level,
		columns:   state.Columns,
		rowBlocks: state.RowBlocks,
		words:     state.Words,
		chips:     state.Chips,
		solved:    state.Solved,
	}, nil
}
