/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datatypes

import (
	"context"
	"time"

	"github.com/suparena/redisnatives/errors"
	"github.com/suparena/redisnatives/store"
)

// Entity is the common contract of every datatype facade: a named remote
// key plus the keyspace operations shared by all datatypes.
type Entity interface {
	// Key returns the remote key this facade is bound to.
	Key() string

	// Exists reports whether the store currently holds the key,
	// regardless of its datatype.
	Exists(ctx context.Context) (bool, error)

	// Rename renames the remote key. With overwrite false the rename
	// fails, returning false and leaving both keys untouched, when
	// newKey already exists. On success the facade tracks the new key.
	Rename(ctx context.Context, newKey string, overwrite bool) (bool, error)

	// Move relocates the key into the logical database with index db.
	Move(ctx context.Context, db int) (bool, error)

	// Expire schedules deletion of the key after ttl.
	Expire(ctx context.Context, ttl time.Duration) error

	// ExpireAt schedules deletion of the key at the given time.
	ExpireAt(ctx context.Context, at time.Time) error

	// TTL returns the remaining lifetime, store.TTLNoExpiry when no
	// expiry is set, or store.TTLMissing when the key is absent.
	TTL(ctx context.Context) (time.Duration, error)

	// Type returns the store-internal name of the key's datatype.
	Type(ctx context.Context) (string, error)

	// Clear deletes the remote key and everything stored under it.
	Clear(ctx context.Context) error
}

// entity carries the identity shared by all facades. The connection is
// shared, not owned; it outlives any number of entities.
type entity struct {
	conn store.Conn
	key  string
}

func newEntity(conn store.Conn, key string) (entity, error) {
	if conn == nil {
		return entity{}, errors.NewInvalidConfigError("conn", "store connection must not be nil")
	}
	if key == "" {
		return entity{}, errors.NewInvalidConfigError("key", "key must not be empty")
	}
	return entity{conn: conn, key: key}, nil
}

func (e *entity) Key() string {
	return e.key
}

func (e *entity) Exists(ctx context.Context) (bool, error) {
	return e.conn.Exists(ctx, e.key)
}

func (e *entity) Rename(ctx context.Context, newKey string, overwrite bool) (bool, error) {
	if overwrite {
		if err := e.conn.Rename(ctx, e.key, newKey); err != nil {
			return false, err
		}
		e.key = newKey
		return true, nil
	}
	ok, err := e.conn.RenameNX(ctx, e.key, newKey)
	if err != nil || !ok {
		return false, err
	}
	e.key = newKey
	return true, nil
}

func (e *entity) Move(ctx context.Context, db int) (bool, error) {
	return e.conn.Move(ctx, e.key, db)
}

func (e *entity) Expire(ctx context.Context, ttl time.Duration) error {
	_, err := e.conn.Expire(ctx, e.key, ttl)
	return err
}

func (e *entity) ExpireAt(ctx context.Context, at time.Time) error {
	_, err := e.conn.ExpireAt(ctx, e.key, at)
	return err
}

func (e *entity) TTL(ctx context.Context) (time.Duration, error) {
	return e.conn.TTL(ctx, e.key)
}

func (e *entity) Type(ctx context.Context) (string, error) {
	return e.conn.Type(ctx, e.key)
}

func (e *entity) Clear(ctx context.Context) error {
	_, err := e.conn.Del(ctx, e.key)
	return err
}
