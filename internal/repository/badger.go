package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
)

const badgerConflictRetries = 10

// BadgerStore keeps sessions in an embedded badger database. Updates run in
// optimistic transactions and are retried when another writer touched the
// same session.
type BadgerStore struct {
	db *badger.DB
}

func OpenBadgerStore(opts badger.Options) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("unable to open badger db: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func sessionKey(id uuid.UUID) []byte {
	return []byte("game_session/" + id.String())
}

func getSession(txn *badger.Txn, id uuid.UUID) (*GameSession, error) {
	item, err := txn.Get(sessionKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	data, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	return decodeSession(data)
}

func setSession(txn *badger.Txn, s *GameSession) error {
	data, err := encodeSession(s)
	if err != nil {
		return err
	}
	return txn.Set(sessionKey(s.GameSessionID), data)
}

func (b *BadgerStore) Create(_ context.Context, s *GameSession) error {
	return b.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(sessionKey(s.GameSessionID))
		if err == nil {
			return ErrSessionExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		return setSession(txn, s)
	})
}

func (b *BadgerStore) Get(_ context.Context, id uuid.UUID) (s *GameSession, err error) {
	err = b.db.View(func(txn *badger.Txn) error {
		s, err = getSession(txn, id)
		return err
	})
	return
}

func (b *BadgerStore) Update(
	ctx context.Context, id uuid.UUID, fn func(*GameSession) error,
) (*GameSession, error) {
	var s *GameSession
	for range badgerConflictRetries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		err := b.db.Update(func(txn *badger.Txn) (err error) {
			if s, err = getSession(txn, id); err != nil {
				return err
			}
			if err := fn(s); err != nil {
				return err
			}
			return setSession(txn, s)
		})
		if errors.Is(err, badger.ErrConflict) {
			continue
		}
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, fmt.Errorf("game session %s: %w", id, badger.ErrConflict)
}

func (b *BadgerStore) Delete(_ context.Context, id uuid.UUID) error {
	return b.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(sessionKey(id)); errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		} else if err != nil {
			return err
		}
		return txn.Delete(sessionKey(id))
	})
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}
