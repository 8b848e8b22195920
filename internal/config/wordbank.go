package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

const (
	WordBankEmbedded = "embedded"
	WordBankFile     = "file"
	WordBankPostgres = "postgres"
)

type WordBank struct {
	Source string `env:"WORDBANK_SOURCE" envDefault:"embedded"`
	File   string `env:"WORDBANK_FILE"`
}

func NewWordBank() (*WordBank, error) {
	wb, err := env.ParseAs[WordBank]()
	if err != nil {
		return nil, fmt.Errorf("unable to parse word bank config: %w", err)
	}
	switch wb.Source {
	case WordBankEmbedded, WordBankPostgres:
	case WordBankFile:
		if wb.File == "" {
			return nil, fmt.Errorf("WORDBANK_SOURCE=file requires WORDBANK_FILE")
		}
	default:
		return nil, fmt.Errorf("unknown WORDBANK_SOURCE %q", wb.Source)
	}
	return &wb, nil
}
