package sanji

// Rand is the randomness the generator needs. *math/rand/v2.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewSession samples the words of a level from bank, scatters their
// characters over the level's grid and returns the fresh stage. bank is not
// modified; repeated entries count once.
func NewSession(level int, bank []string, rnd Rand) (*Session, error) {
	if level < 0 {
		return nil, ErrNegativeLevel
	}

	n := WordCount(level)
	words, err := sampleWords(distinct(bank), n, rnd)
	if err != nil {
		return nil, err
	}

	characters := make([]rune, 0, 3*n)
	for _, word := range words {
		if err := ValidateWord(word); err != nil {
			return nil, err
		}
		characters = append(characters, []rune(word)...)
	}

	rnd.Shuffle(len(characters), func(i, j int) {
		characters[i], characters[j] = characters[j], characters[i]
	})

	positions := Positions(level)
	chips := make([]Chip, len(positions))
	for i, pos := range positions {
		chips[i] = Chip{Position: pos, Character: characters[i], Status: Idle}
	}

	columns, rowBlocks := Dimensions(level)
	return &Session{
		level:     level,
		columns:   columns,
		rowBlocks: rowBlocks,
		words:     words,
		chips:     chips,
	}, nil
}

// NextLevel starts the stage after prev, which must be solved.
func NextLevel(prev *Session, bank []string, rnd Rand) (*Session, error) {
	if !prev.Solved() {
		return nil, ErrNotSolved
	}
	return NewSession(prev.Level()+1, bank, rnd)
}

// sampleWords draws n entries without replacement with a partial
// Fisher-Yates pass over an index permutation.
func sampleWords(bank []string, n int, rnd Rand) ([]string, error) {
	if len(bank) < n {
		return nil, &InsufficientWordBankError{Need: n, Have: len(bank)}
	}
	perm := make([]int, len(bank))
	for i := range perm {
		perm[i] = i
	}
	words := make([]string, n)
	for i := range n {
		j := i + rnd.IntN(len(perm)-i)
		perm[i], perm[j] = perm[j], perm[i]
		words[i] = bank[perm[i]]
	}
	return words, nil
}

func distinct(bank []string) []string {
	seen := make(map[string]struct{}, len(bank))
	out := make([]string, 0, len(bank))
	for _, w := range bank {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	if len(out) == len(bank) {
		return bank
	}
	return out
}
