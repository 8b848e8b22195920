// Package wordbank loads the catalogue of three-character compound words the
// puzzle samples from.
//
// A bank is read once at startup from one of three sources: the CSV compiled
// into the binary, a CSV file, or the jukugo table in Postgres. Every field
// of every CSV record is one word. Entries that are not exactly three
// characters fail the load; they are never skipped.
package wordbank

import (
	"context"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/vancomm/sanji/internal/config"
	"github.com/vancomm/sanji/internal/sanji"
)

//go:embed jukugo.csv
var embedded string

// Bank is an ordered list of distinct, validated words.
type Bank []string

var (
	ErrEmpty         = errors.New("word bank is empty")
	ErrUnknownSource = errors.New("unknown word bank source")
	ErrNoLister      = errors.New("word bank source requires a database")
)

type EntryError struct {
	Record int // 1-based for CSV, 0 for other sources
	Field  int // 1-based
	Word   string
	Err    error
}

// [EntryError] implements [error]
func (e *EntryError) Error() string {
	if e.Record == 0 {
		return fmt.Sprintf("word bank entry %d: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("word bank record %d field %d: %v", e.Record, e.Field, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

type builder struct {
	bank Bank
	seen map[string]struct{}
}

func newBuilder() *builder {
	return &builder{seen: make(map[string]struct{})}
}

func (b *builder) add(record, field int, word string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return nil
	}
	if err := sanji.ValidateWord(word); err != nil {
		return &EntryError{Record: record, Field: field, Word: word, Err: err}
	}
	if _, ok := b.seen[word]; ok {
		return nil
	}
	b.seen[word] = struct{}{}
	b.bank = append(b.bank, word)
	return nil
}

func (b *builder) done() (Bank, error) {
	if len(b.bank) == 0 {
		return nil, ErrEmpty
	}
	return b.bank, nil
}

// Parse reads a CSV word bank. Blank fields are ignored and repeated words
// keep their first position.
func Parse(r io.Reader) (Bank, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	b := newBuilder()
	for record := 1; ; record++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("unable to read word bank: %w", err)
		}
		for i, field := range fields {
			if record == 1 && i == 0 {
				field = strings.TrimPrefix(field, "\uFEFF")
			}
			if err := b.add(record, i+1, field); err != nil {
				return nil, err
			}
		}
	}
	return b.done()
}

// Default returns the bank compiled into the binary.
func Default() (Bank, error) {
	return Parse(strings.NewReader(embedded))
}

func LoadFile(path string) (Bank, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open word bank: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

type Lister interface {
	ListWords(ctx context.Context) ([]string, error)
}

func LoadFrom(ctx context.Context, lister Lister) (Bank, error) {
	words, err := lister.ListWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("unable to list words: %w", err)
	}
	b := newBuilder()
	for i, word := range words {
		if err := b.add(0, i+1, word); err != nil {
			return nil, err
		}
	}
	return b.done()
}

// Load reads the bank from the configured source. lister may be nil unless
// the source is postgres.
func Load(ctx context.Context, cfg *config.WordBank, lister Lister) (Bank, error) {
	switch cfg.Source {
	case config.WordBankEmbedded, "":
		return Default()
	case config.WordBankFile:
		return LoadFile(cfg.File)
	case config.WordBankPostgres:
		if lister == nil {
			return nil, ErrNoLister
		}
		return LoadFrom(ctx, lister)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, cfg.Source)
	}
}
