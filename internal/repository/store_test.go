package repository

import (
	"context"
	"errors"
	"math/rand/v2"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var startedAt = time.Date(2024, time.October, 1, 12, 0, 0, 0, time.UTC)

func newSession(t *testing.T, p mines.Params) *GameSession {
	t.Helper()
	game, err := mines.NewGame(p, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return NewGameSession(game, startedAt)
}

func setupMemoryStore(t *testing.T) Store {
	return NewMemoryStore()
}

func setupBadgerStore(t *testing.T) Store {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badger.WARNING)
	s, err := OpenBadgerStore(opts)
	require.NoError(t, err)
	return s
}

func setupPostgresStore(t *testing.T) Store {
	url, ok := os.LookupEnv("TEST_DATABASE_URL")
	if !ok {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	db, err := pgxpool.New(context.Background(), url)
	require.NoError(t, err)
	return NewPostgresStore(db)
}

var stores = []struct {
	name  string
	setup func(t *testing.T) Store
}{
	{"memory", setupMemoryStore},
	{"badger", setupBadgerStore},
	{"postgres", setupPostgresStore},
}

func forEachStore(t *testing.T, test func(t *testing.T, s Store)) {
	for _, store := range stores {
		t.Run(store.name, func(t *testing.T) {
			s := store.setup(t)
			defer s.Close()
			test(t, s)
		})
	}
}

func TestStoreGetMissing(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		_, err := s.Get(context.Background(), uuid.New())
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStoreCreateAndGet(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		session := newSession(t, mines.Params{Width: 9, Height: 9, MineCount: 10})
		session.Game.ToggleFlag(mines.Point{Row: 4, Col: 4})
		require.NoError(t, s.Create(ctx, session))

		got, err := s.Get(ctx, session.GameSessionID)
		require.NoError(t, err)
		assert.Equal(t, session.GameSessionID, got.GameSessionID)
		assert.Equal(t, session.Game.Params(), got.Game.Params())
		assert.Equal(t, session.Game.Status(), got.Game.Status())
		assert.Equal(t, session.Game.View(), got.Game.View())
		assert.WithinDuration(t, startedAt, got.StartedAt, 0)
		assert.Nil(t, got.EndedAt)

		assert.ErrorIs(t, s.Create(ctx, session), ErrSessionExists)
	})
}

func TestStoreUpdate(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		session := newSession(t, mines.Params{Width: 3, Height: 3, MineCount: 0})
		require.NoError(t, s.Create(ctx, session))

		endedAt := startedAt.Add(time.Minute)
		updated, err := s.Update(ctx, session.GameSessionID, func(gs *GameSession) error {
			gs.Game.Reveal(mines.Point{Row: 1, Col: 1})
			gs.Finish(endedAt)
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, mines.Won, updated.Game.Status())

		got, err := s.Get(ctx, session.GameSessionID)
		require.NoError(t, err)
		assert.Equal(t, mines.Won, got.Game.Status())
		require.NotNil(t, got.EndedAt)
		assert.WithinDuration(t, endedAt, *got.EndedAt, 0)
	})
}

func TestStoreUpdateError(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		session := newSession(t, mines.Params{Width: 3, Height: 3, MineCount: 0})
		require.NoError(t, s.Create(ctx, session))

		errBoom := errors.New("boom")
		_, err := s.Update(ctx, session.GameSessionID, func(gs *GameSession) error {
			gs.Game.Reveal(mines.Point{Row: 0, Col: 0})
			return errBoom
		})
		assert.ErrorIs(t, err, errBoom)

		got, err := s.Get(ctx, session.GameSessionID)
		require.NoError(t, err)
		assert.Equal(t, mines.InProgress, got.Game.Status(), "failed update must not be saved")

		_, err = s.Update(ctx, uuid.New(), func(*GameSession) error { return nil })
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStoreDelete(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		session := newSession(t, mines.Params{Width: 2, Height: 2, MineCount: 1})
		require.NoError(t, s.Create(ctx, session))

		require.NoError(t, s.Delete(ctx, session.GameSessionID))
		_, err := s.Get(ctx, session.GameSessionID)
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, s.Delete(ctx, session.GameSessionID), ErrNotFound)
	})
}

func TestStoreDoesNotAlias(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		session := newSession(t, mines.Params{Width: 3, Height: 3, MineCount: 0})
		require.NoError(t, s.Create(ctx, session))

		got, err := s.Get(ctx, session.GameSessionID)
		require.NoError(t, err)
		got.Game.Reveal(mines.Point{Row: 0, Col: 0})

		again, err := s.Get(ctx, session.GameSessionID)
		require.NoError(t, err)
		assert.Equal(t, mines.InProgress, again.Game.Status())
	})
}

func TestMemoryStoreSerializesUpdates(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	session := newSession(t, mines.Params{Width: 3, Height: 3, MineCount: 0})
	require.NoError(t, s.Create(ctx, session))

	const toggles = 51
	var wg sync.WaitGroup
	for range toggles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update(ctx, session.GameSessionID, func(gs *GameSession) error {
				gs.Game.ToggleFlag(mines.Point{Row: 0, Col: 0})
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Get(ctx, session.GameSessionID)
	require.NoError(t, err)
	c, _ := got.Game.Cell(mines.Point{Row: 0, Col: 0})
	assert.True(t, c.Flagged, "an odd number of toggles leaves the flag set")
}

func TestGameSessionTimestamps(t *testing.T) {
	session := newSession(t, mines.Params{Width: 1, Height: 2, MineCount: 1})

	session.Finish(startedAt.Add(time.Second))
	assert.Nil(t, session.EndedAt, "game in progress has no end")

	for row := range 2 {
		session.Game.Reveal(mines.Point{Row: row, Col: 0})
	}
	require.True(t, session.Game.Status().Terminal())

	first := startedAt.Add(time.Minute)
	session.Finish(first)
	session.Finish(first.Add(time.Hour))
	require.NotNil(t, session.EndedAt)
	assert.Equal(t, first, *session.EndedAt)

	restartedAt := startedAt.Add(2 * time.Minute)
	session.Restarted(restartedAt)
	assert.Equal(t, restartedAt, session.StartedAt)
	assert.Nil(t, session.EndedAt)
}
