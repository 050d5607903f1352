package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/commands"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

type wsReply struct {
	Session *GameSessionDTO `json:"session,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ConnectWS upgrades the request and then treats every text message as a
// batch of newline separated commands. Commands before a bad one are kept;
// each batch is answered with the session state and the error, if any.
func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	id, ok := g.sessionID(w, r)
	if !ok {
		return
	}
	session, err := g.store.Get(r.Context(), id)
	if err != nil {
		g.storeError(w, id, err)
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()
	conn.SetReadLimit(g.ws.ReadLimit)

	logger := g.logger.WithField("sessionId", id)
	logger.Debug("websocket connected")

	if err := conn.WriteJSON(wsReply{Session: NewGameSessionDTO(session)}); err != nil {
		logger.WithError(err).Warn("websocket write failed")
		return
	}

	for {
		mt, message, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.WithError(err).Warn("websocket read failed")
			}
			return
		}
		if mt != websocket.TextMessage {
			conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(
				websocket.CloseUnsupportedData, "text messages only",
			))
			return
		}

		reply, ok := g.runBatch(r, logger, id, string(message))
		if err := conn.WriteJSON(reply); err != nil {
			logger.WithError(err).Warn("websocket write failed")
			return
		}
		if !ok {
			return
		}
	}
}

// runBatch applies one message worth of commands. It reports false when
// the connection should be dropped.
func (g GameHandler) runBatch(
	r *http.Request, logger logrus.FieldLogger, id uuid.UUID, batch string,
) (wsReply, bool) {
	var cmdErr error
	session, err := g.store.Update(r.Context(), id, func(s *repository.GameSession) error {
		done, err := commands.Run(s.Game, batch)
		cmdErr = err
		if commands.Restarted(done) {
			s.Restarted(g.now())
		}
		s.Finish(g.now())
		return nil
	})
	if err != nil {
		logger.WithError(err).Error("unable to update game session")
		return wsReply{Error: "internal error"}, false
	}

	reply := wsReply{Session: NewGameSessionDTO(session)}
	if cmdErr != nil {
		logger.WithError(cmdErr).Debug("rejected command")
		reply.Error = cmdErr.Error()
	}
	return reply, true
}
