package handlers

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

type GameHandler struct {
	logger  logrus.FieldLogger
	store   repository.Store
	ws      *config.WebSocket
	newRand func() *rand.Rand
	now     func() time.Time
}

type GameHandlerOption func(*GameHandler)

// WithRand replaces the source of per-game random generators.
func WithRand(newRand func() *rand.Rand) GameHandlerOption {
	return func(g *GameHandler) {
		g.newRand = newRand
	}
}

func WithClock(now func() time.Time) GameHandlerOption {
	return func(g *GameHandler) {
		g.now = now
	}
}

func NewGameHandler(
	logger logrus.FieldLogger,
	store repository.Store,
	ws *config.WebSocket,
	opts ...GameHandlerOption,
) *GameHandler {
	handler := &GameHandler{
		logger:  logger,
		store:   store,
		ws:      ws,
		newRand: mines.NewRand,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(handler)
	}
	return handler
}

func (g GameHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, fmt.Errorf("invalid session id"))
		return uuid.UUID{}, false
	}
	return id, true
}

// storeError answers with the status matching a store or game error.
func (g GameHandler) storeError(w http.ResponseWriter, id uuid.UUID, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		SendErrorOrLog(w, g.logger, http.StatusNotFound, err)
	case errors.Is(err, mines.ErrInvalidConfiguration),
		errors.Is(err, mines.ErrOutOfBounds):
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
	default:
		g.logger.WithFields(logrus.Fields{
			"sessionId": id,
			"error":     err,
		}).Error("game session store failure")
		SendErrorOrLog(w, g.logger, http.StatusInternalServerError, errors.New("internal error"))
	}
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	params, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	game, err := mines.NewGame(params, g.newRand())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}

	session := repository.NewGameSession(game, g.now())
	if err := g.store.Create(r.Context(), session); err != nil {
		g.storeError(w, session.GameSessionID, err)
		return
	}

	g.logger.WithFields(logrus.Fields{
		"sessionId": session.GameSessionID,
		"seed":      params.Seed(),
	}).Debug("created game session")

	SendJSONOrLog(w, g.logger, http.StatusCreated, NewGameSessionDTO(session))
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	id, ok := g.sessionID(w, r)
	if !ok {
		return
	}
	session, err := g.store.Get(r.Context(), id)
	if err != nil {
		g.storeError(w, id, err)
		return
	}
	SendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(session))
}

// move runs apply against the stored session and replies with the result.
func (g GameHandler) move(
	w http.ResponseWriter, r *http.Request, apply func(*repository.GameSession) error,
) {
	id, ok := g.sessionID(w, r)
	if !ok {
		return
	}
	session, err := g.store.Update(r.Context(), id, func(s *repository.GameSession) error {
		if err := apply(s); err != nil {
			return err
		}
		s.Finish(g.now())
		return nil
	})
	if err != nil {
		g.storeError(w, id, err)
		return
	}
	SendJSONOrLog(w, g.logger, http.StatusOK, NewGameSessionDTO(session))
}

func (g GameHandler) pointMove(
	w http.ResponseWriter, r *http.Request, apply func(*mines.Game, mines.Point),
) {
	pt, err := ParsePointDTO(r.URL.Query())
	if err != nil {
		SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
		return
	}
	g.move(w, r, func(s *repository.GameSession) error {
		if !s.Game.Params().Contains(pt) {
			return fmt.Errorf("%w: %d %d", mines.ErrOutOfBounds, pt.Row, pt.Col)
		}
		apply(s.Game, pt)
		return nil
	})
}

func (g GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	g.pointMove(w, r, func(game *mines.Game, pt mines.Point) {
		game.Reveal(pt)
	})
}

func (g GameHandler) Flag(w http.ResponseWriter, r *http.Request) {
	g.pointMove(w, r, func(game *mines.Game, pt mines.Point) {
		game.ToggleFlag(pt)
	})
}

// Restart deals a new board, with new params when all of width, height
// and mine_count are given.
func (g GameHandler) Restart(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var params *mines.Params
	if query.Has("width") || query.Has("height") || query.Has("mine_count") {
		p, err := ParseNewGameDTO(query)
		if err != nil {
			SendErrorOrLog(w, g.logger, http.StatusBadRequest, err)
			return
		}
		params = &p
	}
	g.move(w, r, func(s *repository.GameSession) error {
		p := s.Game.Params()
		if params != nil {
			p = *params
		}
		game, err := mines.NewGame(p, g.newRand())
		if err != nil {
			return err
		}
		s.Game = game
		s.Restarted(g.now())
		return nil
	})
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := g.sessionID(w, r)
	if !ok {
		return
	}
	if err := g.store.Delete(r.Context(), id); err != nil {
		g.storeError(w, id, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
