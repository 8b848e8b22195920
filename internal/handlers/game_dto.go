package handlers

import (
	"github.com/gorilla/schema"

	"github.com/vancomm/sanji/internal/sanji"
	"github.com/vancomm/sanji/internal/store"
)

var decoder = func() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}()

type NewGameDTO struct {
	Level int `schema:"level"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type ActivateDTO struct {
	Index int `schema:"index,required"`
}

func ParseActivateDTO(src map[string][]string) (ActivateDTO, error) {
	var dto ActivateDTO
	err := decoder.Decode(&dto, src)
	return dto, err
}

type ChipDTO struct {
	X         int          `json:"x"`
	Y         int          `json:"y"`
	Character string       `json:"character"`
	Status    sanji.Status `json:"status"`
}

type GameSessionDTO struct {
	GameSessionId string        `json:"game_session_id"`
	Level         int           `json:"level"`
	LevelCount    int           `json:"level_count"`
	Columns       int           `json:"columns"`
	RowBlocks     int           `json:"row_blocks"`
	ChipSize      int           `json:"chip_size"`
	Chips         []ChipDTO     `json:"chips"`
	Solved        bool          `json:"solved"`
	Words         []string      `json:"words,omitempty"`
	StartedAt     int64         `json:"started_at"`
	SolvedAt      *int64        `json:"solved_at,omitempty"`
	Result        *sanji.Result `json:"result,omitempty"`
}

// NewGameSessionDTO hides the answer key until the stage is solved.
func NewGameSessionDTO(g *store.GameSession, s *sanji.Session, res *sanji.Result) *GameSessionDTO {
	chips := s.Chips()
	chipDTOs := make([]ChipDTO, len(chips))
	for i, c := range chips {
		chipDTOs[i] = ChipDTO{
			X:         c.X,
			Y:         c.Y,
			Character: string(c.Character),
			Status:    c.Status,
		}
	}

	var solvedAt *int64
	if g.SolvedAt != nil {
		ms := g.SolvedAt.UnixMilli()
		solvedAt = &ms
	}

	dto := &GameSessionDTO{
		GameSessionId: g.ID,
		Level:         s.Level(),
		LevelCount:    sanji.LevelCount,
		Columns:       s.Columns(),
		RowBlocks:     s.RowBlocks(),
		ChipSize:      sanji.ChipSize,
		Chips:         chipDTOs,
		Solved:        s.Solved(),
		StartedAt:     g.StartedAt.UnixMilli(),
		SolvedAt:      solvedAt,
		Result:        res,
	}
	if s.Solved() {
		dto.Words = s.Words()
	}
	return dto
}
