package store

import (
	"time"

	"github.com/vancomm/sanji/internal/sanji"
)

// GameSession is a stored puzzle stage. PlayerID is nil for anonymous play.
type GameSession struct {
	ID        string
	PlayerID  *int64
	Level     int
	State     []byte
	StartedAt time.Time
	SolvedAt  *time.Time
}

func NewGameSession(playerID *int64, s *sanji.Session) (*GameSession, error) {
	state, err := s.Bytes()
	if err != nil {
		return nil, err
	}
	return &GameSession{
		ID:        NewKey(),
		PlayerID:  playerID,
		Level:     s.Level(),
		State:     state,
		StartedAt: time.Now().UTC(),
	}, nil
}

// Update stores the new state of s, stamping SolvedAt the first time s is
// seen solved.
func (g *GameSession) Update(s *sanji.Session) error {
	state, err := s.Bytes()
	if err != nil {
		return err
	}
	g.State = state
	if s.Solved() && g.SolvedAt == nil {
		now := time.Now().UTC()
		g.SolvedAt = &now
	}
	return nil
}

func (g *GameSession) Session() (*sanji.Session, error) {
	return sanji.DecodeSession(g.State)
}

// OwnedBy reports whether playerID may modify g. Anonymous sessions are open
// to everyone.
func (g *GameSession) OwnedBy(playerID *int64) bool {
	if g.PlayerID == nil {
		return true
	}
	return playerID != nil && *playerID == *g.PlayerID
}

type Sessions struct {
	store *Store
}

func NewSessions(s *Store) *Sessions {
	return &Sessions{store: s}
}

func (s *Sessions) Get(id string) (*GameSession, error) {
	var g GameSession
	if err := s.store.Get(id, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

func (s *Sessions) Save(g *GameSession) error {
	return s.store.Set(g.ID, g)
}

func (s *Sessions) Delete(id string) error {
	return s.store.Delete(id)
}

func (s *Sessions) Count() (int, error) {
	return s.store.Count()
}
