package sanji

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

type Status int

const (
	Idle Status = iota
	Selected
	Locked // terminal, the chip's triple spells a word
)

var statusNames = [...]string{
	Idle:     "idle",
	Selected: "selected",
	Locked:   "locked",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}
	return statusNames[s]
}

func (s Status) MarshalText() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("invalid chip status %d", int(s))
	}
	return []byte(statusNames[s]), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	for i, name := range statusNames {
		if name == string(text) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown chip status %q", text)
}

type Chip struct {
	Position
	Character rune
	Status    Status
}

func (c Chip) String() string {
	return fmt.Sprintf("(%d, %d) %c %s", c.X, c.Y, c.Character, c.Status)
}

// ValidateWord accepts exactly three printable, non-space characters.
func ValidateWord(word string) error {
	if !utf8.ValidString(word) || utf8.RuneCountInString(word) != 3 {
		return &MalformedWordError{Word: word}
	}
	for _, r := range word {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return &MalformedWordError{Word: word}
		}
	}
	return nil
}
