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

// Sequence exposes the same underlying ordered-list primitive as List, but
// head/tail-oriented for queue and stack workloads: push and pop at either
// end, blocking pops across several candidate keys, and an atomic
// tail-to-head transfer between two keys.
type Sequence struct {
	entity
}

// NewSequence binds a Sequence facade to key. With reset set, any
// pre-existing value at the key is deleted first — unconditionally and
// regardless of its datatype.
func NewSequence(ctx context.Context, conn store.Conn, key string, reset bool) (*Sequence, error) {
	e, err := newEntity(conn, key)
	if err != nil {
		return nil, err
	}
	q := &Sequence{entity: e}
	if reset {
		if _, err := conn.Del(ctx, key); err != nil {
			return nil, err
		}
	}
	return q, nil
}

// PushHead pushes value onto the front of the sequence. The new element's
// index is always 0.
func (q *Sequence) PushHead(ctx context.Context, value string) error {
	_, err := q.conn.LPush(ctx, q.key, value)
	return err
}

// PushTail pushes value onto the end of the sequence and returns the
// pushed element's index.
func (q *Sequence) PushTail(ctx context.Context, value string) (int64, error) {
	n, err := q.conn.RPush(ctx, q.key, value)
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}

// PopHead removes and returns the first element, with ok false when the
// sequence is empty.
func (q *Sequence) PopHead(ctx context.Context) (string, bool, error) {
	return q.conn.LPop(ctx, q.key)
}

// PopTail removes and returns the last element, with ok false when the
// sequence is empty.
func (q *Sequence) PopTail(ctx context.Context) (string, bool, error) {
	return q.conn.RPop(ctx, q.key)
}

// BPopHead pops the head of the first non-empty sequence among this key
// and extraKeys, blocking until one has a value or timeout elapses. A zero
// timeout blocks indefinitely. It returns the key that produced the value;
// ok is false when the timeout elapsed with every key empty.
func (q *Sequence) BPopHead(ctx context.Context, timeout time.Duration, extraKeys ...string) (string, string, bool, error) {
	return q.conn.BLPop(ctx, timeout, append([]string{q.key}, extraKeys...)...)
}

// BPopTail is BPopHead popping from the tail instead.
func (q *Sequence) BPopTail(ctx context.Context, timeout time.Duration, extraKeys ...string) (string, string, bool, error) {
	return q.conn.BRPop(ctx, timeout, append([]string{q.key}, extraKeys...)...)
}

// PopTailPushHead atomically removes the last element of this sequence,
// pushes it onto the front of the sequence at dstKey and returns it, with
// ok false when this sequence is empty.
func (q *Sequence) PopTailPushHead(ctx context.Context, dstKey string) (string, bool, error) {
	return q.conn.RPopLPush(ctx, q.key, dstKey)
}

// Len returns the length of the sequence.
func (q *Sequence) Len(ctx context.Context) (int64, error) {
	return q.conn.LLen(ctx, q.key)
}

// Range returns the elements between the inclusive indexes start and stop;
// negative indexes count from the end.
func (q *Sequence) Range(ctx context.Context, start, stop int64) ([]string, error) {
	return q.conn.LRange(ctx, q.key, start, stop)
}

// Trim discards every element outside the inclusive index range [start,
// stop].
func (q *Sequence) Trim(ctx context.Context, start, stop int64) error {
	return q.conn.LTrim(ctx, q.key, start, stop)
}

// Values fetches the whole sequence in one round trip.
func (q *Sequence) Values(ctx context.Context) ([]string, error) {
	return q.Range(ctx, 0, -1)
}

// Contains reports whether value occurs in the sequence. Requires a
// full-range fetch.
func (q *Sequence) Contains(ctx context.Context, value string) (bool, error) {
	values, err := q.Values(ctx)
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
func (q *Sequence) Count(ctx context.Context, value string) (int64, error) {
	values, err := q.Values(ctx)
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
func (q *Sequence) Index(ctx context.Context, value string) (int64, error) {
	values, err := q.Values(ctx)
	if err != nil {
		return 0, err
	}
	for i, v := range values {
		if v == value {
			return int64(i), nil
		}
	}
	return 0, errors.NewValueError("Sequence", q.key, value)
}

// Remove deletes up to count occurrences of value, or every occurrence
// when all is set, with the same contract as List.Remove.
func (q *Sequence) Remove(ctx context.Context, value string, count int64, all bool) (int64, error) {
	if all {
		count = 0
	}
	n, err := q.conn.LRem(ctx, q.key, count, value)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, errors.NewValueError("Sequence", q.key, value)
	}
	return n, nil
}
