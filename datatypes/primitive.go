/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datatypes

import (
	"context"
	"strings"

	"github.com/suparena/redisnatives/store"
)

// Primitive wraps a single scalar string value stored under one remote key.
//
// The comparison helpers (Equals, Len, Contains, Concat, Repeat) operate on
// the value fetched at call time. Each call is its own round trip, so a
// concurrent writer can make two consecutive calls disagree; read-then-
// compare sequences are not consistent snapshots.
type Primitive struct {
	entity
}

// NewPrimitive binds a Primitive facade to key. No remote call is issued;
// the key may or may not exist yet.
func NewPrimitive(conn store.Conn, key string) (*Primitive, error) {
	e, err := newEntity(conn, key)
	if err != nil {
		return nil, err
	}
	return &Primitive{entity: e}, nil
}

// NewPrimitiveValue binds a Primitive facade to key and writes an initial
// value, overwriting whatever the key held before.
func NewPrimitiveValue(ctx context.Context, conn store.Conn, key, value string) (*Primitive, error) {
	p, err := NewPrimitive(conn, key)
	if err != nil {
		return nil, err
	}
	if err := p.SetValue(ctx, value); err != nil {
		return nil, err
	}
	return p, nil
}

// Value returns the current remote value. A missing key reads as the empty
// string with ok false.
func (p *Primitive) Value(ctx context.Context) (string, bool, error) {
	return p.conn.Get(ctx, p.key)
}

// SetValue overwrites the remote value.
func (p *Primitive) SetValue(ctx context.Context, value string) error {
	return p.conn.Set(ctx, p.key, value)
}

// Delete removes the remote key.
func (p *Primitive) Delete(ctx context.Context) error {
	return p.Clear(ctx)
}

// Incr atomically increments the value by `by`. The store rejects values
// that are not integer-coercible; that rejection surfaces as a type
// mismatch error.
func (p *Primitive) Incr(ctx context.Context, by int64) (int64, error) {
	return p.conn.IncrBy(ctx, p.key, by)
}

// Decr atomically decrements the value by `by`, with the same type
// mismatch behavior as Incr.
func (p *Primitive) Decr(ctx context.Context, by int64) (int64, error) {
	return p.conn.DecrBy(ctx, p.key, by)
}

// Append appends s to the remote value and returns the new length.
func (p *Primitive) Append(ctx context.Context, s string) (int64, error) {
	return p.conn.Append(ctx, p.key, s)
}

// Len returns the length of the value fetched at call time.
func (p *Primitive) Len(ctx context.Context) (int, error) {
	v, _, err := p.Value(ctx)
	return len(v), err
}

// Contains reports whether the fetched value contains substr.
func (p *Primitive) Contains(ctx context.Context, substr string) (bool, error) {
	v, _, err := p.Value(ctx)
	if err != nil {
		return false, err
	}
	return strings.Contains(v, substr), nil
}

// Equals reports whether the fetched value equals s.
func (p *Primitive) Equals(ctx context.Context, s string) (bool, error) {
	v, _, err := p.Value(ctx)
	if err != nil {
		return false, err
	}
	return v == s, nil
}

// Concat returns the fetched value with s appended, without writing back.
func (p *Primitive) Concat(ctx context.Context, s string) (string, error) {
	v, _, err := p.Value(ctx)
	if err != nil {
		return "", err
	}
	return v + s, nil
}

// Repeat returns the fetched value repeated n times, without writing back.
func (p *Primitive) Repeat(ctx context.Context, n int) (string, error) {
	v, _, err := p.Value(ctx)
	if err != nil {
		return "", err
	}
	if n <= 0 {
		return "", nil
	}
	return strings.Repeat(v, n), nil
}

// Slice returns the substring between the inclusive offsets start and end;
// negative offsets count from the end of the value.
func (p *Primitive) Slice(ctx context.Context, start, end int64) (string, error) {
	return p.conn.GetRange(ctx, p.key, start, end)
}
