package sanji

import (
	"errors"
	"fmt"
)

var (
	ErrInsufficientWordBank = errors.New("word bank too small for level")
	ErrIndexOutOfRange      = errors.New("chip index out of range")
	ErrMalformedWord        = errors.New("word must be exactly three characters")
	ErrNegativeLevel        = errors.New("level must not be negative")
	ErrNotSolved            = errors.New("stage is not solved")
	ErrCorruptState         = errors.New("corrupt session state")
)

type InsufficientWordBankError struct {
	Need, Have int
}

// [InsufficientWordBankError] implements [error]
func (e *InsufficientWordBankError) Error() string {
	return fmt.Sprintf("%s: need %d words, have %d", ErrInsufficientWordBank, e.Need, e.Have)
}

func (e *InsufficientWordBankError) Is(target error) bool {
	return target == ErrInsufficientWordBank
}

type IndexOutOfRangeError struct {
	Index, Len int
}

// [IndexOutOfRangeError] implements [error]
func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("%s: %d not in [0, %d)", ErrIndexOutOfRange, e.Index, e.Len)
}

func (e *IndexOutOfRangeError) Is(target error) bool {
	return target == ErrIndexOutOfRange
}

type MalformedWordError struct {
	Word string
}

// [MalformedWordError] implements [error]
func (e *MalformedWordError) Error() string {
	return fmt.Sprintf("%s: %q", ErrMalformedWord, e.Word)
}

func (e *MalformedWordError) Is(target error) bool {
	return target == ErrMalformedWord
}
