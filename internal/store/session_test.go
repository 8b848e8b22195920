package store

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/sanji/internal/sanji"
)

var bank = []string{"高飛車", "大丈夫", "一張羅", "有頂天", "登竜門", "正念場"}

func newSessions(t *testing.T) *Sessions {
	t.Helper()
	return NewSessions(setupTestStore(t))
}

func TestSessionsSaveAndGet(t *testing.T) {
	sessions := newSessions(t)

	s, err := sanji.NewSession(0, bank, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	playerID := int64(42)
	g, err := NewGameSession(&playerID, s)
	require.NoError(t, err)
	require.NoError(t, sessions.Save(g))

	got, err := sessions.Get(g.ID)
	require.NoError(t, err)
	assert.Equal(t, g.ID, got.ID)
	assert.Equal(t, int64(42), *got.PlayerID)
	assert.True(t, g.StartedAt.Equal(got.StartedAt))
	assert.Nil(t, got.SolvedAt)

	decoded, err := got.Session()
	require.NoError(t, err)
	assert.Equal(t, s, decoded)

	count, err := sessions.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, sessions.Delete(g.ID))
	_, err = sessions.Get(g.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGameSessionUpdate(t *testing.T) {
	s, err := sanji.NewSession(0, bank, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	g, err := NewGameSession(nil, s)
	require.NoError(t, err)

	_, err = s.Activate(0)
	require.NoError(t, err)
	require.NoError(t, g.Update(s))
	assert.Nil(t, g.SolvedAt)

	decoded, err := g.Session()
	require.NoError(t, err)
	assert.Equal(t, []int{0}, decoded.Selected())
}

func TestGameSessionOwnedBy(t *testing.T) {
	alice, bob := int64(1), int64(2)

	anonymous := &GameSession{}
	assert.True(t, anonymous.OwnedBy(nil))
	assert.True(t, anonymous.OwnedBy(&alice))

	owned := &GameSession{PlayerID: &alice}
	assert.True(t, owned.OwnedBy(&alice))
	assert.False(t, owned.OwnedBy(&bob))
	assert.False(t, owned.OwnedBy(nil))
}
