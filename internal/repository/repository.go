package repository

import (
	"bytes"
	"context"
	"encoding/gob"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	ErrNotFound      = errors.New("game session not found")
	ErrSessionExists = errors.New("game session already exists")
)

type GameSession struct {
	GameSessionID uuid.UUID
	Game          *mines.Game
	StartedAt     time.Time
	EndedAt       *time.Time
}

func NewGameSession(game *mines.Game, now time.Time) *GameSession {
	return &GameSession{
		GameSessionID: uuid.New(),
		Game:          game,
		StartedAt:     now,
	}
}

// Finish stamps the end time the first time the game is seen in a terminal
// state.
func (s *GameSession) Finish(now time.Time) {
	if s.EndedAt == nil && s.Game.Status().Terminal() {
		s.EndedAt = &now
	}
}

// Restarted resets the timestamps after the game got a new board.
func (s *GameSession) Restarted(now time.Time) {
	s.StartedAt = now
	s.EndedAt = nil
}

// Store keeps game sessions. Update runs fn with exclusive access to the
// session, so commands against one session are applied one at a time.
type Store interface {
	Create(ctx context.Context, s *GameSession) error
	Get(ctx context.Context, id uuid.UUID) (*GameSession, error)
	Update(ctx context.Context, id uuid.UUID, fn func(*GameSession) error) (*GameSession, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Close() error
}

func encodeSession(s *GameSession) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodeSession(data []byte) (*GameSession, error) {
	var s GameSession
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return nil, err
	}
	return &s, nil
}
