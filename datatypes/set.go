/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datatypes

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/suparena/redisnatives/errors"
	"github.com/suparena/redisnatives/store"
)

// Set exposes an unordered set of unique strings stored under one remote
// key.
//
// The algebra operations (Difference, Intersection, Union,
// SymmetricDifference) are reads: they accept a mix of other remote-backed
// *Set facades and local collections ([]string or map[string]struct{}),
// resolve the remote portion in a single store-side command across all
// remote keys, fold the local collections in afterwards, and return a plain
// in-process set. The *Update variants persist the computed result back
// into this set's key with a delete-then-repopulate batch; the batch is
// ordered but not atomic, so concurrent readers can observe a briefly empty
// key.
type Set struct {
	entity
}

// NewSet binds a Set facade to key, adding any initial members in one
// batched round trip.
func NewSet(ctx context.Context, conn store.Conn, key string, initial ...string) (*Set, error) {
	e, err := newEntity(conn, key)
	if err != nil {
		return nil, err
	}
	s := &Set{entity: e}
	if len(initial) > 0 {
		if _, err := conn.SAdd(ctx, key, initial...); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add inserts member, reporting whether it was newly added.
func (s *Set) Add(ctx context.Context, member string) (bool, error) {
	n, err := s.conn.SAdd(ctx, s.key, member)
	return n > 0, err
}

// Remove deletes member and fails with a key error when it is absent.
// Discard is the forgiving variant.
func (s *Set) Remove(ctx context.Context, member string) error {
	n, err := s.conn.SRem(ctx, s.key, member)
	if err != nil {
		return err
	}
	if n == 0 {
		return errors.NewMemberError("Set", s.key, member)
	}
	return nil
}

// Discard deletes member, doing nothing when it is absent.
func (s *Set) Discard(ctx context.Context, member string) error {
	_, err := s.conn.SRem(ctx, s.key, member)
	return err
}

// Pop returns a random member. With remove set the member is also deleted
// from the set. On an empty set Pop is a no-op returning ok false, never an
// error; this asymmetry with OrderedSet.Pop is deliberate.
func (s *Set) Pop(ctx context.Context, remove bool) (string, bool, error) {
	if remove {
		return s.conn.SPop(ctx, s.key)
	}
	return s.conn.SRandMember(ctx, s.key)
}

// Len returns the cardinality of the set.
func (s *Set) Len(ctx context.Context) (int64, error) {
	return s.conn.SCard(ctx, s.key)
}

// Contains reports membership of member.
func (s *Set) Contains(ctx context.Context, member string) (bool, error) {
	return s.conn.SIsMember(ctx, s.key, member)
}

// Members fetches every member in one round trip.
func (s *Set) Members(ctx context.Context) ([]string, error) {
	return s.conn.SMembers(ctx, s.key)
}

// Copy persists a copy of this set under dstKey and returns a facade bound
// to it.
func (s *Set) Copy(ctx context.Context, dstKey string) (*Set, error) {
	if _, err := s.conn.SUnionStore(ctx, dstKey, s.key); err != nil {
		return nil, err
	}
	return NewSet(ctx, s.conn, dstKey)
}

// Difference returns this set minus all other operands.
func (s *Set) Difference(ctx context.Context, others ...any) (map[string]struct{}, error) {
	remote, locals, err := splitOperands("difference", others)
	if err != nil {
		return nil, err
	}
	members, err := s.conn.SDiff(ctx, append([]string{s.key}, remote...)...)
	if err != nil {
		return nil, err
	}
	result := toSet(members)
	for _, local := range locals {
		for m := range local {
			delete(result, m)
		}
	}
	return result, nil
}

// Intersection returns the members common to this set and every operand.
func (s *Set) Intersection(ctx context.Context, others ...any) (map[string]struct{}, error) {
	remote, locals, err := splitOperands("intersection", others)
	if err != nil {
		return nil, err
	}
	members, err := s.conn.SInter(ctx, append([]string{s.key}, remote...)...)
	if err != nil {
		return nil, err
	}
	result := toSet(members)
	for _, local := range locals {
		for m := range result {
			if _, ok := local[m]; !ok {
				delete(result, m)
			}
		}
	}
	return result, nil
}

// Union returns the members present in this set or any operand.
func (s *Set) Union(ctx context.Context, others ...any) (map[string]struct{}, error) {
	remote, locals, err := splitOperands("union", others)
	if err != nil {
		return nil, err
	}
	members, err := s.conn.SUnion(ctx, append([]string{s.key}, remote...)...)
	if err != nil {
		return nil, err
	}
	result := toSet(members)
	for _, local := range locals {
		for m := range local {
			result[m] = struct{}{}
		}
	}
	return result, nil
}

// SymmetricDifference returns the members present in exactly one of this
// set and the operands.
//
// The remote portion is computed server-side through two scratch keys (the
// intersection and the union of all remote keys), diffed and deleted within
// one pipelined batch. Scratch keys carry a random unique suffix so
// concurrent calls cannot collide.
func (s *Set) SymmetricDifference(ctx context.Context, others ...any) (map[string]struct{}, error) {
	remote, locals, err := splitOperands("symmetric difference", others)
	if err != nil {
		return nil, err
	}
	keys := append([]string{s.key}, remote...)

	scratch := uuid.NewString()
	interKey := fmt.Sprintf("%s:tmp:%s:inter", s.key, scratch)
	unionKey := fmt.Sprintf("%s:tmp:%s:union", s.key, scratch)

	p := s.conn.Pipeline()
	p.SInterStore(interKey, keys...)
	p.SUnionStore(unionKey, keys...)
	p.SDiff(unionKey, interKey)
	p.Del(interKey, unionKey)
	results, err := p.Exec(ctx)
	if err != nil {
		return nil, err
	}

	result := toSet(results[2].Strings)
	for _, local := range locals {
		for m := range local {
			if _, ok := result[m]; ok {
				delete(result, m)
			} else {
				result[m] = struct{}{}
			}
		}
	}
	return result, nil
}

// DifferenceUpdate replaces this set's members with the difference of
// itself and the operands. See Set for the non-atomicity caveat.
func (s *Set) DifferenceUpdate(ctx context.Context, others ...any) error {
	result, err := s.Difference(ctx, others...)
	if err != nil {
		return err
	}
	return s.repopulate(ctx, result)
}

// IntersectionUpdate replaces this set's members with the intersection of
// itself and the operands. See Set for the non-atomicity caveat.
func (s *Set) IntersectionUpdate(ctx context.Context, others ...any) error {
	result, err := s.Intersection(ctx, others...)
	if err != nil {
		return err
	}
	return s.repopulate(ctx, result)
}

// UnionUpdate replaces this set's members with the union of itself and the
// operands. See Set for the non-atomicity caveat.
func (s *Set) UnionUpdate(ctx context.Context, others ...any) error {
	result, err := s.Union(ctx, others...)
	if err != nil {
		return err
	}
	return s.repopulate(ctx, result)
}

// SymmetricDifferenceUpdate replaces this set's members with the symmetric
// difference of itself and the operands. See Set for the non-atomicity
// caveat.
func (s *Set) SymmetricDifferenceUpdate(ctx context.Context, others ...any) error {
	result, err := s.SymmetricDifference(ctx, others...)
	if err != nil {
		return err
	}
	return s.repopulate(ctx, result)
}

// repopulate rewrites the set as one delete-then-add batch. A concurrent
// reader can observe the key empty between the two steps.
func (s *Set) repopulate(ctx context.Context, members map[string]struct{}) error {
	p := s.conn.Pipeline()
	p.Del(s.key)
	if len(members) > 0 {
		all := make([]string, 0, len(members))
		for m := range members {
			all = append(all, m)
		}
		p.SAdd(s.key, all...)
	}
	_, err := p.Exec(ctx)
	return err
}

// IsDisjoint reports whether this set shares no member with any operand.
func (s *Set) IsDisjoint(ctx context.Context, others ...any) (bool, error) {
	remote, locals, err := splitOperands("isdisjoint", others)
	if err != nil {
		return false, err
	}
	members, err := s.conn.SInter(ctx, append([]string{s.key}, remote...)...)
	if err != nil {
		return false, err
	}
	if len(remote) > 0 && len(members) > 0 {
		return false, nil
	}
	if len(locals) > 0 {
		own, err := s.Members(ctx)
		if err != nil {
			return false, err
		}
		for _, local := range locals {
			for _, m := range own {
				if _, ok := local[m]; ok {
					return false, nil
				}
			}
		}
	}
	return true, nil
}

// IsSubset is intentionally unsupported and fails with a not-implemented
// error so callers can detect the gap at the call site.
func (s *Set) IsSubset(ctx context.Context, others ...any) (bool, error) {
	return false, errors.NewNotImplementedError("Set.IsSubset")
}

// IsSuperset is intentionally unsupported, like IsSubset.
func (s *Set) IsSuperset(ctx context.Context, others ...any) (bool, error) {
	return false, errors.NewNotImplementedError("Set.IsSuperset")
}

// splitOperands partitions algebra operands into remote keys (other Set
// facades) and local collections. Anything else is a type mismatch.
func splitOperands(op string, others []any) ([]string, []map[string]struct{}, error) {
	var remote []string
	var locals []map[string]struct{}
	for _, other := range others {
		switch v := other.(type) {
		case *Set:
			remote = append(remote, v.Key())
		case []string:
			locals = append(locals, toSet(v))
		case map[string]struct{}:
			locals = append(locals, v)
		default:
			return nil, nil, errors.NewTypeMismatchError(op, "",
				fmt.Sprintf("operand must be *Set, []string or map[string]struct{}, got %T", other))
		}
	}
	return remote, locals, nil
}

func toSet(members []string) map[string]struct{} {
	out := make(map[string]struct{}, len(members))
	for _, m := range members {
		out[m] = struct{}{}
	}
	return out
}
