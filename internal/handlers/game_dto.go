package handlers

import (
	"github.com/gorilla/schema"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/repository"
)

var decoder = newDecoder()

func newDecoder() *schema.Decoder {
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	return dec
}

type NewGameDTO struct {
	Width     int `schema:"width,required"`
	Height    int `schema:"height,required"`
	MineCount int `schema:"mine_count,required"`
}

func ParseNewGameDTO(src map[string][]string) (mines.Params, error) {
	var dto NewGameDTO
	err := decoder.Decode(&dto, src)
	return mines.Params(dto), err
}

type PointDTO struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePointDTO(src map[string][]string) (mines.Point, error) {
	var dto PointDTO
	err := decoder.Decode(&dto, src)
	return mines.Point(dto), err
}

type GameSessionDTO struct {
	GameSessionId string       `json:"session_id"`
	Grid          mines.Grid   `json:"grid"`
	Width         int          `json:"width"`
	Height        int          `json:"height"`
	MineCount     int          `json:"mine_count"`
	MinesLeft     int          `json:"mines_left"`
	Status        mines.Status `json:"status"`
	StartedAt     int64        `json:"started_at"`
	EndedAt       *int64       `json:"ended_at,omitempty"`
}

func NewGameSessionDTO(s *repository.GameSession) *GameSessionDTO {
	var endedAt *int64
	if s.EndedAt != nil {
		e := s.EndedAt.UnixMilli()
		endedAt = &e
	}
	p := s.Game.Params()
	return &GameSessionDTO{
		GameSessionId: s.GameSessionID.String(),
		Grid:          s.Game.View(),
		Width:         p.Width,
		Height:        p.Height,
		MineCount:     p.MineCount,
		MinesLeft:     s.Game.MinesLeft(),
		Status:        s.Game.Status(),
		StartedAt:     s.StartedAt.UnixMilli(),
		EndedAt:       endedAt,
	}
}
