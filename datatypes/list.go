/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datatypes

import (
	"context"

	"github.com/suparena/redisnatives/errors"
	"github.com/suparena/redisnatives/store"
)

// List exposes an index-addressable sequence stored under one remote key.
//
// The contract is deliberately narrower than an in-process slice: the store
// cannot remove by arbitrary index efficiently, so there is no per-index
// deletion, and the value-based lookups (Contains, Count, Index) each fetch
// the full range in one round trip, which is O(n) in list size.
type List struct {
	entity
}

// NewList binds a List facade to key, appending any initial values in one
// batched round trip.
func NewList(ctx context.Context, conn store.Conn, key string, initial ...string) (*List, error) {
	e, err := newEntity(conn, key)
	if err != nil {
		return nil, err
	}
	l := &List{entity: e}
	if len(initial) > 0 {
		if _, err := conn.RPush(ctx, key, initial...); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// Append pushes value onto the end of the list and returns the new length.
func (l *List) Append(ctx context.Context, value string) (int64, error) {
	return l.conn.RPush(ctx, l.key, value)
}

// Extend appends all values in one batched round trip and returns the new
// length.
func (l *List) Extend(ctx context.Context, values ...string) (int64, error) {
	if len(values) == 0 {
		return l.Len(ctx)
	}
	return l.conn.RPush(ctx, l.key, values...)
}

// Len returns the length of the list.
func (l *List) Len(ctx context.Context) (int64, error) {
	return l.conn.LLen(ctx, l.key)
}

// Get returns the value at index, with ok false when the index is out of
// range. Negative indexes count from the end.
func (l *List) Get(ctx context.Context, index int64) (string, bool, error) {
	return l.conn.LIndex(ctx, l.key, index)
}

// Set overwrites the value at index and fails with an index error when
// index is out of range, leaving the list unchanged.
func (l *List) Set(ctx context.Context, index int64, value string) error {
	return l.conn.LSet(ctx, l.key, index, value)
}

// Values fetches the whole list in one round trip.
func (l *List) Values(ctx context.Context) ([]string, error) {
	return l.conn.LRange(ctx, l.key, 0, -1)
}

// Contains reports whether value occurs in the list. Requires a full-range
// fetch.
func (l *List) Contains(ctx context.Context, value string) (bool, error) {
	values, err := l.Values(ctx)
	if err != nil {
		return false, err
	}
	for _, v := range values {
		if v == value {
			return true, nil
		}
	}
	return false, nil
}

// Count returns the number of occurrences of value. Requires a full-range
// fetch.
func (l *List) Count(ctx context.Context, value string) (int64, error) {
	values, err := l.Values(ctx)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, v := range values {
		if v == value {
			n++
		}
	}
	return n, nil
}

// Index returns the position of the first occurrence of value and fails
// with a value error when it is absent. Requires a full-range fetch.
func (l *List) Index(ctx context.Context, value string) (int64, error) {
	values, err := l.Values(ctx)
	if err != nil {
		return 0, err
	}
	for i, v := range values {
		if v == value {
			return int64(i), nil
		}
	}
	return 0, errors.NewValueError("List", l.key, value)
}

// Remove deletes up to count occurrences of value, or every occurrence
// when all is set. A negative count scans from the tail. It returns how
// many were removed and fails with a value error when nothing was.
func (l *List) Remove(ctx context.Context, value string, count int64, all bool) (int64, error) {
	if all {
		count = 0
	}
	n, err := l.conn.LRem(ctx, l.key, count, value)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errors.NewValueError("List", l.key, value)
	}
	return n, nil
}

// Reverse is intentionally unsupported and fails with a not-implemented
// error so callers can detect the gap at the call site.
func (l *List) Reverse(ctx context.Context) error {
	return errors.NewNotImplementedError("List.Reverse")
}
