package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordsearch/internal/game"
	"github.com/robalobadob/wordsearch/internal/grid"
)

func newGame(t *testing.T) *game.Game {
	t.Helper()
	res, err := grid.Generate([]string{"CAT"}, map[string]grid.Direction{"CAT": grid.Across}, game.NewRand(1))
	require.NoError(t, err)
	return game.Start(res, 3)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	g := newGame(t)

	_, err := s.Get(ctx, g.ID)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, g))
	got, err := s.Get(ctx, g.ID)
	require.NoError(t, err)
	assert.Same(t, g, got)
	assert.Equal(t, 1, s.Len())

	require.NoError(t, s.Delete(ctx, g.ID))
	require.NoError(t, s.Delete(ctx, "unknown"))
	assert.Equal(t, 0, s.Len())
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	games := make([]*game.Game, 16)
	for i := range games {
		games[i] = newGame(t)
	}

	var wg sync.WaitGroup
	for _, g := range games {
		wg.Add(1)
		go func(g *game.Game) {
			defer wg.Done()
			_ = s.Save(ctx, g)
			_, _ = s.Get(ctx, g.ID)
		}(g)
	}
	wg.Wait()
	assert.Equal(t, 16, s.Len())
}
