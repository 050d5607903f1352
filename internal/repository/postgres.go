package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

type gameSessionRow struct {
	GameSessionID uuid.UUID  `db:"game_session_id"`
	State         []byte     `db:"state"`
	StartedAt     time.Time  `db:"started_at"`
	EndedAt       *time.Time `db:"ended_at"`
}

func (r gameSessionRow) session() (*GameSession, error) {
	game, err := mines.DecodeGame(r.State)
	if err != nil {
		return nil, err
	}
	return &GameSession{
		GameSessionID: r.GameSessionID,
		Game:          game,
		StartedAt:     r.StartedAt,
		EndedAt:       r.EndedAt,
	}, nil
}

func sessionArgs(s *GameSession) (pgx.NamedArgs, error) {
	state, err := s.Game.Bytes()
	if err != nil {
		return nil, err
	}
	p := s.Game.Params()
	return pgx.NamedArgs{
		"game_session_id": s.GameSessionID,
		"width":           p.Width,
		"height":          p.Height,
		"mine_count":      p.MineCount,
		"status":          s.Game.Status().String(),
		"state":           state,
		"started_at":      s.StartedAt,
		"ended_at":        s.EndedAt,
	}, nil
}

// PostgresStore keeps sessions in the game_session table. The board itself
// lives in the gob-encoded state column; the other columns are for humans
// and ad hoc queries.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (q *PostgresStore) Create(ctx context.Context, s *GameSession) error {
	args, err := sessionArgs(s)
	if err != nil {
		return err
	}
	_, err = q.db.Exec(
		ctx,
		`INSERT INTO game_session (
			game_session_id, width, height, mine_count, status, state, started_at, ended_at
		)
		VALUES (
			@game_session_id, @width, @height, @mine_count, @status, @state, @started_at, @ended_at
		);`,
		args,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrSessionExists
	}
	return err
}

func (q *PostgresStore) Get(ctx context.Context, id uuid.UUID) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT game_session_id, state, started_at, ended_at
		FROM game_session WHERE game_session_id = $1`,
		id,
	)
	row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[gameSessionRow])
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return row.session()
}

func (q *PostgresStore) Update(
	ctx context.Context, id uuid.UUID, fn func(*GameSession) error,
) (session *GameSession, err error) {
	err = pgx.BeginFunc(ctx, q.db, func(tx pgx.Tx) error {
		rows, _ := tx.Query(
			ctx,
			`SELECT game_session_id, state, started_at, ended_at
			FROM game_session WHERE game_session_id = $1
			FOR UPDATE`,
			id,
		)
		row, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[gameSessionRow])
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if session, err = row.session(); err != nil {
			return err
		}
		if err := fn(session); err != nil {
			return err
		}
		args, err := sessionArgs(session)
		if err != nil {
			return err
		}
		_, err = tx.Exec(
			ctx,
			`UPDATE game_session SET
				width = @width,
				height = @height,
				mine_count = @mine_count,
				status = @status,
				state = @state,
				started_at = @started_at,
				ended_at = @ended_at,
				updated_at = now()
			WHERE game_session_id = @game_session_id`,
			args,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

func (q *PostgresStore) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := q.db.Exec(
		ctx, "DELETE FROM game_session WHERE game_session_id = $1", id,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (q *PostgresStore) Close() error {
	q.db.Close()
	return nil
}
