/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datatypes

import (
	"context"
	"math/rand"

	"github.com/suparena/redisnatives/errors"
	"github.com/suparena/redisnatives/store"
)

// Order selects the direction of rank-based queries.
type Order int

const (
	// Asc orders by ascending score, lowest first.
	Asc Order = iota
	// Desc orders by descending score, highest first.
	Desc
)

// Member is an OrderedSet element together with its score.
type Member = store.Z

// OrderedSet exposes a set whose members carry a numeric score, stored
// under one remote key. Rank queries address members by their position in
// score order; score queries address them by score value.
type OrderedSet struct {
	entity
}

// NewOrderedSet binds an OrderedSet facade to key, adding any initial
// members in one batched round trip.
func NewOrderedSet(ctx context.Context, conn store.Conn, key string, initial ...Member) (*OrderedSet, error) {
	e, err := newEntity(conn, key)
	if err != nil {
		return nil, err
	}
	z := &OrderedSet{entity: e}
	if len(initial) > 0 {
		if _, err := conn.ZAdd(ctx, key, initial...); err != nil {
			return nil, err
		}
	}
	return z, nil
}

// Add inserts member with score, or updates its score when it is already
// present. It reports whether the member was newly added.
func (z *OrderedSet) Add(ctx context.Context, member string, score float64) (bool, error) {
	n, err := z.conn.ZAdd(ctx, z.key, Member{Member: member, Score: score})
	return n > 0, err
}

// Discard deletes member, doing nothing when it is absent.
func (z *OrderedSet) Discard(ctx context.Context, member string) error {
	_, err := z.conn.ZRem(ctx, z.key, member)
	return err
}

// Len returns the cardinality of the set.
func (z *OrderedSet) Len(ctx context.Context) (int64, error) {
	return z.conn.ZCard(ctx, z.key)
}

// Contains reports membership of member.
func (z *OrderedSet) Contains(ctx context.Context, member string) (bool, error) {
	_, ok, err := z.conn.ZScore(ctx, z.key, member)
	return ok, err
}

// Score returns member's score. An absent member reports ok false, never
// an error.
func (z *OrderedSet) Score(ctx context.Context, member string) (float64, bool, error) {
	return z.conn.ZScore(ctx, z.key, member)
}

// Rank returns member's ordinal position under the given order, with ok
// false when it is absent.
func (z *OrderedSet) Rank(ctx context.Context, member string, order Order) (int64, bool, error) {
	if order == Desc {
		return z.conn.ZRevRank(ctx, z.key, member)
	}
	return z.conn.ZRank(ctx, z.key, member)
}

// IncrScore increments member's score by `by`, inserting it at `by` when
// absent, and returns the new score.
func (z *OrderedSet) IncrScore(ctx context.Context, member string, by float64) (float64, error) {
	return z.conn.ZIncrBy(ctx, z.key, by, member)
}

// RangeByRank returns the members between the inclusive ordinal positions
// start and stop under the given order. Negative positions count from the
// end.
func (z *OrderedSet) RangeByRank(ctx context.Context, start, stop int64, order Order) ([]string, error) {
	if order == Desc {
		return z.conn.ZRevRange(ctx, z.key, start, stop)
	}
	return z.conn.ZRange(ctx, z.key, start, stop)
}

// RangeByRankWithScores is RangeByRank in ascending order with each
// member's score attached.
func (z *OrderedSet) RangeByRankWithScores(ctx context.Context, start, stop int64) ([]Member, error) {
	return z.conn.ZRangeWithScores(ctx, z.key, start, stop)
}

// RangeByScore returns the members whose scores lie in the inclusive
// [min, max] interval, in ascending score order.
func (z *OrderedSet) RangeByScore(ctx context.Context, min, max float64) ([]string, error) {
	return z.conn.ZRangeByScore(ctx, z.key, min, max)
}

// RemoveRangeByRank deletes the members between the inclusive ordinal
// positions start and stop and returns how many were removed.
func (z *OrderedSet) RemoveRangeByRank(ctx context.Context, start, stop int64) (int64, error) {
	return z.conn.ZRemRangeByRank(ctx, z.key, start, stop)
}

// RemoveRangeByScore deletes the members whose scores lie in the inclusive
// [min, max] interval and returns how many were removed.
func (z *OrderedSet) RemoveRangeByScore(ctx context.Context, min, max float64) (int64, error) {
	return z.conn.ZRemRangeByScore(ctx, z.key, min, max)
}

// Pop removes and returns a uniformly random member. It fails with a key
// error on an empty set; this asymmetry with Set.Pop is deliberate. The
// fetch and removal of the chosen rank run as one pipelined batch.
func (z *OrderedSet) Pop(ctx context.Context) (string, error) {
	length, err := z.Len(ctx)
	if err != nil {
		return "", err
	}
	if length == 0 {
		return "", errors.NewKeyError("OrderedSet", z.key)
	}
	idx := rand.Int63n(length)

	p := z.conn.Pipeline()
	p.ZRange(z.key, idx, idx)
	p.ZRemRangeByRank(z.key, idx, idx)
	results, err := p.Exec(ctx)
	if err != nil {
		return "", err
	}
	if len(results[0].Strings) == 0 {
		// The set emptied between the length check and the batch.
		return "", errors.NewKeyError("OrderedSet", z.key)
	}
	return results[0].Strings[0], nil
}

// Grab returns a random member without removing it, with ok false on an
// empty set.
func (z *OrderedSet) Grab(ctx context.Context) (string, bool, error) {
	length, err := z.Len(ctx)
	if err != nil || length == 0 {
		return "", false, err
	}
	members, err := z.conn.ZRange(ctx, z.key, 0, -1)
	if err != nil || len(members) == 0 {
		return "", false, err
	}
	return members[rand.Intn(len(members))], true, nil
}

// Copy persists a copy of this set under dstKey and returns a facade bound
// to it.
func (z *OrderedSet) Copy(ctx context.Context, dstKey string) (*OrderedSet, error) {
	if _, err := z.conn.ZUnionStore(ctx, dstKey, []string{z.key}, store.AggregateSum); err != nil {
		return nil, err
	}
	return NewOrderedSet(ctx, z.conn, dstKey)
}

// UnionStore persists the union of this set and others under dstKey,
// combining scores with agg, and returns the resulting cardinality.
func (z *OrderedSet) UnionStore(ctx context.Context, dstKey string, agg store.Aggregate, others ...*OrderedSet) (int64, error) {
	return z.conn.ZUnionStore(ctx, dstKey, z.keysWith(others), agg)
}

// InterStore persists the intersection of this set and others under
// dstKey, combining scores with agg, and returns the resulting cardinality.
func (z *OrderedSet) InterStore(ctx context.Context, dstKey string, agg store.Aggregate, others ...*OrderedSet) (int64, error) {
	return z.conn.ZInterStore(ctx, dstKey, z.keysWith(others), agg)
}

func (z *OrderedSet) keysWith(others []*OrderedSet) []string {
	keys := make([]string, 0, len(others)+1)
	keys = append(keys, z.key)
	for _, o := range others {
		keys = append(keys, o.Key())
	}
	return keys
}
