/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datatypes

import (
	"context"

	"github.com/suparena/redisnatives/errors"
	"github.com/suparena/redisnatives/store"
)

// Pair is one field/value entry of a Hash.
type Pair struct {
	Field string
	Value string
}

// Hash exposes a field-to-value mapping stored under one remote key. The
// bulk accessors (Items, Fields, Values) fetch the whole hash in a single
// round trip; there is no partial or streaming fetch.
type Hash struct {
	entity
}

// NewHash binds a Hash facade to key, merging any initial fields in one
// bulk write.
func NewHash(ctx context.Context, conn store.Conn, key string, initial map[string]string) (*Hash, error) {
	e, err := newEntity(conn, key)
	if err != nil {
		return nil, err
	}
	h := &Hash{entity: e}
	if len(initial) > 0 {
		if err := conn.HMSet(ctx, key, initial); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Get returns the value of field and fails with a key error when the field
// is absent. Lookup is the forgiving variant.
func (h *Hash) Get(ctx context.Context, field string) (string, error) {
	v, ok, err := h.conn.HGet(ctx, h.key, field)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.NewMemberError("Hash", h.key, field)
	}
	return v, nil
}

// Lookup returns the value of field with ok false when it is absent.
func (h *Hash) Lookup(ctx context.Context, field string) (string, bool, error) {
	return h.conn.HGet(ctx, h.key, field)
}

// Set writes field to value, reporting whether the field was newly
// created.
func (h *Hash) Set(ctx context.Context, field, value string) (bool, error) {
	return h.conn.HSet(ctx, h.key, field, value)
}

// Delete removes field and fails with a key error when it is absent.
func (h *Hash) Delete(ctx context.Context, field string) error {
	n, err := h.conn.HDel(ctx, h.key, field)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NewMemberError("Hash", h.key, field)
	}
	return nil
}

// Contains reports whether field exists.
func (h *Hash) Contains(ctx context.Context, field string) (bool, error) {
	return h.conn.HExists(ctx, h.key, field)
}

// Len returns the number of fields.
func (h *Hash) Len(ctx context.Context) (int64, error) {
	return h.conn.HLen(ctx, h.key)
}

// Fields returns every field name in one round trip.
func (h *Hash) Fields(ctx context.Context) ([]string, error) {
	return h.conn.HKeys(ctx, h.key)
}

// Values returns every value in one round trip.
func (h *Hash) Values(ctx context.Context) ([]string, error) {
	return h.conn.HVals(ctx, h.key)
}

// Items returns the full hash in one round trip.
func (h *Hash) Items(ctx context.Context) (map[string]string, error) {
	return h.conn.HGetAll(ctx, h.key)
}

// SetDefault returns the value of field, writing and returning def when
// the field is absent. The read and the conditional write are separate
// round trips, so a concurrent writer can slip between them.
func (h *Hash) SetDefault(ctx context.Context, field, def string) (string, error) {
	v, ok, err := h.conn.HGet(ctx, h.key, field)
	if err != nil {
		return "", err
	}
	if ok {
		return v, nil
	}
	if _, err := h.conn.HSet(ctx, h.key, field, def); err != nil {
		return "", err
	}
	return def, nil
}

// Update merges fields into the hash with one bulk write.
func (h *Hash) Update(ctx context.Context, fields map[string]string) error {
	if len(fields) == 0 {
		return nil
	}
	return h.conn.HMSet(ctx, h.key, fields)
}

// UpdatePairs merges an ordered sequence of field/value pairs with one
// bulk write; a later pair wins over an earlier one for the same field.
func (h *Hash) UpdatePairs(ctx context.Context, pairs ...Pair) error {
	if len(pairs) == 0 {
		return nil
	}
	fields := make(map[string]string, len(pairs))
	for _, p := range pairs {
		fields[p.Field] = p.Value
	}
	return h.conn.HMSet(ctx, h.key, fields)
}

// IncrBy atomically increments the integer value of field by `by`. A
// non-integer value surfaces as a type mismatch from the store.
func (h *Hash) IncrBy(ctx context.Context, field string, by int64) (int64, error) {
	return h.conn.HIncrBy(ctx, h.key, field, by)
}

// Copy persists a copy of this hash under dstKey and returns a facade
// bound to it. The read and the write are separate round trips, so a
// concurrent writer can slip between them.
func (h *Hash) Copy(ctx context.Context, dstKey string) (*Hash, error) {
	items, err := h.Items(ctx)
	if err != nil {
		return nil, err
	}
	return NewHash(ctx, h.conn, dstKey, items)
}

// FromFields persists a new hash under dstKey with every given field set
// to fill and returns a facade bound to it.
func (h *Hash) FromFields(ctx context.Context, dstKey string, fields []string, fill string) (*Hash, error) {
	initial := make(map[string]string, len(fields))
	for _, f := range fields {
		initial[f] = fill
	}
	return NewHash(ctx, h.conn, dstKey, initial)
}
