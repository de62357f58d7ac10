/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/suparena/redisnatives/errors"
	"github.com/suparena/redisnatives/store"
)

type kind int

const (
	kindString kind = iota
	kindSet
	kindZSet
	kindHash
	kindList
)

func (k kind) String() string {
	switch k {
	case kindString:
		return "string"
	case kindSet:
		return "set"
	case kindZSet:
		return "zset"
	case kindHash:
		return "hash"
	case kindList:
		return "list"
	}
	return "none"
}

type item struct {
	kind    kind
	str     string
	set     map[string]struct{}
	zset    map[string]float64
	hash    map[string]string
	list    []string
	expires time.Time
}

func (it *item) expired(now time.Time) bool {
	return !it.expires.IsZero() && now.After(it.expires)
}

// state is shared by every database view of one Store.
type state struct {
	mu     sync.Mutex
	dbs    map[int]map[string]*item
	notify chan struct{}
}

// Store implements store.Conn against process memory. The zero value is not
// usable; construct with New. A Store is a view onto one logical database;
// Select derives views onto others sharing the same data.
type Store struct {
	st *state
	db int
}

// New creates an empty in-memory store bound to database 0.
func New() *Store {
	return &Store{
		st: &state{
			dbs:    map[int]map[string]*item{0: {}},
			notify: make(chan struct{}),
		},
	}
}

// Select returns a view onto the logical database with index db, sharing
// all data with the receiver.
func (s *Store) Select(db int) *Store {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	if _, ok := s.st.dbs[db]; !ok {
		s.st.dbs[db] = map[string]*item{}
	}
	return &Store{st: s.st, db: db}
}

// lookup fetches a live item, reaping it first if it has expired.
// Callers must hold st.mu.
func (s *Store) lookup(key string) *item {
	it, ok := s.st.dbs[s.db][key]
	if !ok {
		return nil
	}
	if it.expired(time.Now()) {
		delete(s.st.dbs[s.db], key)
		return nil
	}
	return it
}

// fetch returns the item at key after verifying its kind, creating an empty
// one when create is set. Callers must hold st.mu.
func (s *Store) fetch(op, key string, k kind, create bool) (*item, error) {
	it := s.lookup(key)
	if it == nil {
		if !create {
			return nil, nil
		}
		it = &item{kind: k}
		switch k {
		case kindSet:
			it.set = map[string]struct{}{}
		case kindZSet:
			it.zset = map[string]float64{}
		case kindHash:
			it.hash = map[string]string{}
		}
		s.st.dbs[s.db][key] = it
		return it, nil
	}
	if it.kind != k {
		return nil, errors.NewTypeMismatchError(op, key, "key holds a "+it.kind.String()+" value")
	}
	return it, nil
}

// drop removes key when its collection has become empty, matching the
// remote store's behavior of deleting emptied aggregates.
// Callers must hold st.mu.
func (s *Store) drop(key string, it *item) {
	empty := false
	switch it.kind {
	case kindSet:
		empty = len(it.set) == 0
	case kindZSet:
		empty = len(it.zset) == 0
	case kindHash:
		empty = len(it.hash) == 0
	case kindList:
		empty = len(it.list) == 0
	}
	if empty {
		delete(s.st.dbs[s.db], key)
	}
}

// wake signals every blocked pop that a list changed.
// Callers must hold st.mu.
func (s *Store) wake() {
	close(s.st.notify)
	s.st.notify = make(chan struct{})
}

// Keyspace commands

func (s *Store) Exists(ctx context.Context, key string) (bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.lookup(key) != nil, nil
}

func (s *Store) Del(ctx context.Context, keys ...string) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	var n int64
	for _, key := range keys {
		if s.lookup(key) != nil {
			delete(s.st.dbs[s.db], key)
			n++
		}
	}
	return n, nil
}

func (s *Store) Type(ctx context.Context, key string) (string, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it := s.lookup(key)
	if it == nil {
		return "none", nil
	}
	return it.kind.String(), nil
}

func (s *Store) Rename(ctx context.Context, key, newKey string) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it := s.lookup(key)
	if it == nil {
		return errors.NewKeyError("key", key)
	}
	delete(s.st.dbs[s.db], key)
	s.st.dbs[s.db][newKey] = it
	return nil
}

func (s *Store) RenameNX(ctx context.Context, key, newKey string) (bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it := s.lookup(key)
	if it == nil {
		return false, errors.NewKeyError("key", key)
	}
	if s.lookup(newKey) != nil {
		return false, nil
	}
	delete(s.st.dbs[s.db], key)
	s.st.dbs[s.db][newKey] = it
	return true, nil
}

func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it := s.lookup(key)
	if it == nil {
		return false, nil
	}
	it.expires = time.Now().Add(ttl)
	return true, nil
}

func (s *Store) ExpireAt(ctx context.Context, key string, at time.Time) (bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it := s.lookup(key)
	if it == nil {
		return false, nil
	}
	it.expires = at
	return true, nil
}

func (s *Store) TTL(ctx context.Context, key string) (time.Duration, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it := s.lookup(key)
	if it == nil {
		return store.TTLMissing, nil
	}
	if it.expires.IsZero() {
		return store.TTLNoExpiry, nil
	}
	return time.Until(it.expires), nil
}

func (s *Store) Move(ctx context.Context, key string, db int) (bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it := s.lookup(key)
	if it == nil {
		return false, nil
	}
	if _, ok := s.st.dbs[db]; !ok {
		s.st.dbs[db] = map[string]*item{}
	}
	if _, taken := s.st.dbs[db][key]; taken {
		return false, nil
	}
	delete(s.st.dbs[s.db], key)
	s.st.dbs[db][key] = it
	return true, nil
}

// String commands

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("get", key, kindString, false)
	if err != nil || it == nil {
		return "", false, err
	}
	return it.str, true, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	s.st.dbs[s.db][key] = &item{kind: kindString, str: value}
	return nil
}

func (s *Store) Append(ctx context.Context, key, value string) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("append", key, kindString, true)
	if err != nil {
		return 0, err
	}
	it.str += value
	return int64(len(it.str)), nil
}

func (s *Store) GetRange(ctx context.Context, key string, start, end int64) (string, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("getrange", key, kindString, false)
	if err != nil || it == nil {
		return "", err
	}
	n := int64(len(it.str))
	start, end, ok := normRange(start, end, n)
	if !ok {
		return "", nil
	}
	return it.str[start : end+1], nil
}

func (s *Store) IncrBy(ctx context.Context, key string, by int64) (int64, error) {
	return s.incr(key, by)
}

func (s *Store) DecrBy(ctx context.Context, key string, by int64) (int64, error) {
	return s.incr(key, -by)
}

func (s *Store) incr(key string, by int64) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("incr", key, kindString, true)
	if err != nil {
		return 0, err
	}
	cur := int64(0)
	if it.str != "" {
		cur, err = strconv.ParseInt(it.str, 10, 64)
		if err != nil {
			return 0, errors.NewTypeMismatchError("incr", key, "value is not an integer")
		}
	}
	cur += by
	it.str = strconv.FormatInt(cur, 10)
	return cur, nil
}

// Set commands

func (s *Store) SAdd(ctx context.Context, key string, members ...string) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("sadd", key, kindSet, true)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, m := range members {
		if _, ok := it.set[m]; !ok {
			it.set[m] = struct{}{}
			n++
		}
	}
	return n, nil
}

func (s *Store) SRem(ctx context.Context, key string, members ...string) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("srem", key, kindSet, false)
	if err != nil || it == nil {
		return 0, err
	}
	var n int64
	for _, m := range members {
		if _, ok := it.set[m]; ok {
			delete(it.set, m)
			n++
		}
	}
	s.drop(key, it)
	return n, nil
}

func (s *Store) SCard(ctx context.Context, key string) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("scard", key, kindSet, false)
	if err != nil || it == nil {
		return 0, err
	}
	return int64(len(it.set)), nil
}

func (s *Store) SIsMember(ctx context.Context, key, member string) (bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("sismember", key, kindSet, false)
	if err != nil || it == nil {
		return false, err
	}
	_, ok := it.set[member]
	return ok, nil
}

func (s *Store) SMembers(ctx context.Context, key string) ([]string, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.smembers(key)
}

func (s *Store) smembers(key string) ([]string, error) {
	it, err := s.fetch("smembers", key, kindSet, false)
	if err != nil || it == nil {
		return nil, err
	}
	out := make([]string, 0, len(it.set))
	for m := range it.set {
		out = append(out, m)
	}
	return out, nil
}

func (s *Store) SRandMember(ctx context.Context, key string) (string, bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("srandmember", key, kindSet, false)
	if err != nil || it == nil {
		return "", false, err
	}
	for m := range it.set {
		return m, true, nil
	}
	return "", false, nil
}

func (s *Store) SPop(ctx context.Context, key string) (string, bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("spop", key, kindSet, false)
	if err != nil || it == nil {
		return "", false, err
	}
	for m := range it.set {
		delete(it.set, m)
		s.drop(key, it)
		return m, true, nil
	}
	return "", false, nil
}

func (s *Store) setAlgebra(op string, keys []string) (map[string]struct{}, error) {
	if len(keys) == 0 {
		return map[string]struct{}{}, nil
	}
	base, err := s.fetch(op, keys[0], kindSet, false)
	if err != nil {
		return nil, err
	}
	out := map[string]struct{}{}
	if base != nil {
		for m := range base.set {
			out[m] = struct{}{}
		}
	}
	for _, key := range keys[1:] {
		it, err := s.fetch(op, key, kindSet, false)
		if err != nil {
			return nil, err
		}
		switch op {
		case "sdiff":
			if it != nil {
				for m := range it.set {
					delete(out, m)
				}
			}
		case "sinter":
			for m := range out {
				if it == nil {
					delete(out, m)
					continue
				}
				if _, ok := it.set[m]; !ok {
					delete(out, m)
				}
			}
		case "sunion":
			if it != nil {
				for m := range it.set {
					out[m] = struct{}{}
				}
			}
		}
	}
	return out, nil
}

func (s *Store) SDiff(ctx context.Context, keys ...string) ([]string, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return collect(s.setAlgebra("sdiff", keys))
}

func (s *Store) SInter(ctx context.Context, keys ...string) ([]string, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return collect(s.setAlgebra("sinter", keys))
}

func (s *Store) SUnion(ctx context.Context, keys ...string) ([]string, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return collect(s.setAlgebra("sunion", keys))
}

func (s *Store) setAlgebraStore(op, dst string, keys []string) (int64, error) {
	members, err := s.setAlgebra(op, keys)
	if err != nil {
		return 0, err
	}
	if len(members) == 0 {
		delete(s.st.dbs[s.db], dst)
		return 0, nil
	}
	s.st.dbs[s.db][dst] = &item{kind: kindSet, set: members}
	return int64(len(members)), nil
}

func (s *Store) SDiffStore(ctx context.Context, dst string, keys ...string) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.setAlgebraStore("sdiff", dst, keys)
}

func (s *Store) SInterStore(ctx context.Context, dst string, keys ...string) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.setAlgebraStore("sinter", dst, keys)
}

func (s *Store) SUnionStore(ctx context.Context, dst string, keys ...string) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.setAlgebraStore("sunion", dst, keys)
}

// Sorted-set commands

func (s *Store) ZAdd(ctx context.Context, key string, members ...store.Z) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("zadd", key, kindZSet, true)
	if err != nil {
		return 0, err
	}
	var n int64
	for _, z := range members {
		if _, ok := it.zset[z.Member]; !ok {
			n++
		}
		it.zset[z.Member] = z.Score
	}
	return n, nil
}

func (s *Store) ZRem(ctx context.Context, key string, members ...string) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("zrem", key, kindZSet, false)
	if err != nil || it == nil {
		return 0, err
	}
	var n int64
	for _, m := range members {
		if _, ok := it.zset[m]; ok {
			delete(it.zset, m)
			n++
		}
	}
	s.drop(key, it)
	return n, nil
}

func (s *Store) ZCard(ctx context.Context, key string) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("zcard", key, kindZSet, false)
	if err != nil || it == nil {
		return 0, err
	}
	return int64(len(it.zset)), nil
}

func (s *Store) ZScore(ctx context.Context, key, member string) (float64, bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("zscore", key, kindZSet, false)
	if err != nil || it == nil {
		return 0, false, err
	}
	score, ok := it.zset[member]
	return score, ok, nil
}

// ranked returns the members of key ordered by ascending (score, member).
// Callers must hold st.mu.
func (s *Store) ranked(op, key string) ([]store.Z, error) {
	it, err := s.fetch(op, key, kindZSet, false)
	if err != nil || it == nil {
		return nil, err
	}
	out := make([]store.Z, 0, len(it.zset))
	for m, sc := range it.zset {
		out = append(out, store.Z{Member: m, Score: sc})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score < out[j].Score
		}
		return out[i].Member < out[j].Member
	})
	return out, nil
}

func (s *Store) ZRank(ctx context.Context, key, member string) (int64, bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	zs, err := s.ranked("zrank", key)
	if err != nil {
		return 0, false, err
	}
	for i, z := range zs {
		if z.Member == member {
			return int64(i), true, nil
		}
	}
	return 0, false, nil
}

func (s *Store) ZRevRank(ctx context.Context, key, member string) (int64, bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	zs, err := s.ranked("zrevrank", key)
	if err != nil {
		return 0, false, err
	}
	for i, z := range zs {
		if z.Member == member {
			return int64(len(zs) - 1 - i), true, nil
		}
	}
	return 0, false, nil
}

func (s *Store) ZIncrBy(ctx context.Context, key string, by float64, member string) (float64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("zincrby", key, kindZSet, true)
	if err != nil {
		return 0, err
	}
	it.zset[member] += by
	return it.zset[member], nil
}

func (s *Store) zrange(op, key string, start, stop int64, rev bool) ([]store.Z, error) {
	zs, err := s.ranked(op, key)
	if err != nil {
		return nil, err
	}
	if rev {
		for i, j := 0, len(zs)-1; i < j; i, j = i+1, j-1 {
			zs[i], zs[j] = zs[j], zs[i]
		}
	}
	start, stop, ok := normRange(start, stop, int64(len(zs)))
	if !ok {
		return nil, nil
	}
	return zs[start : stop+1], nil
}

func (s *Store) ZRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	zs, err := s.zrange("zrange", key, start, stop, false)
	return zmembers(zs), err
}

func (s *Store) ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	zs, err := s.zrange("zrevrange", key, start, stop, true)
	return zmembers(zs), err
}

func (s *Store) ZRangeWithScores(ctx context.Context, key string, start, stop int64) ([]store.Z, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.zrange("zrange", key, start, stop, false)
}

func (s *Store) ZRangeByScore(ctx context.Context, key string, min, max float64) ([]string, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	zs, err := s.ranked("zrangebyscore", key)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, z := range zs {
		if z.Score >= min && z.Score <= max {
			out = append(out, z.Member)
		}
	}
	return out, nil
}

func (s *Store) ZRemRangeByRank(ctx context.Context, key string, start, stop int64) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	zs, err := s.zrange("zremrangebyrank", key, start, stop, false)
	if err != nil || len(zs) == 0 {
		return 0, err
	}
	it := s.lookup(key)
	for _, z := range zs {
		delete(it.zset, z.Member)
	}
	s.drop(key, it)
	return int64(len(zs)), nil
}

func (s *Store) ZRemRangeByScore(ctx context.Context, key string, min, max float64) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("zremrangebyscore", key, kindZSet, false)
	if err != nil || it == nil {
		return 0, err
	}
	var n int64
	for m, sc := range it.zset {
		if sc >= min && sc <= max {
			delete(it.zset, m)
			n++
		}
	}
	s.drop(key, it)
	return n, nil
}

func (s *Store) zstore(op, dst string, keys []string, agg store.Aggregate, inter bool) (int64, error) {
	// Plain sets participate with implicit score 1, as the store allows.
	scores := map[string]float64{}
	counts := map[string]int{}
	for _, key := range keys {
		it := s.lookup(key)
		if it == nil {
			continue
		}
		var members map[string]float64
		switch it.kind {
		case kindZSet:
			members = it.zset
		case kindSet:
			members = make(map[string]float64, len(it.set))
			for m := range it.set {
				members[m] = 1
			}
		default:
			return 0, errors.NewTypeMismatchError(op, key, "key holds a "+it.kind.String()+" value")
		}
		for m, sc := range members {
			if counts[m] == 0 {
				scores[m] = sc
			} else {
				switch agg {
				case store.AggregateMin:
					if sc < scores[m] {
						scores[m] = sc
					}
				case store.AggregateMax:
					if sc > scores[m] {
						scores[m] = sc
					}
				default:
					scores[m] += sc
				}
			}
			counts[m]++
		}
	}
	if inter {
		for m, c := range counts {
			if c < len(keys) {
				delete(scores, m)
			}
		}
	}
	if len(scores) == 0 {
		delete(s.st.dbs[s.db], dst)
		return 0, nil
	}
	s.st.dbs[s.db][dst] = &item{kind: kindZSet, zset: scores}
	return int64(len(scores)), nil
}

func (s *Store) ZUnionStore(ctx context.Context, dst string, keys []string, agg store.Aggregate) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.zstore("zunionstore", dst, keys, agg, false)
}

func (s *Store) ZInterStore(ctx context.Context, dst string, keys []string, agg store.Aggregate) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.zstore("zinterstore", dst, keys, agg, true)
}

// Hash commands

func (s *Store) HGet(ctx context.Context, key, field string) (string, bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("hget", key, kindHash, false)
	if err != nil || it == nil {
		return "", false, err
	}
	v, ok := it.hash[field]
	return v, ok, nil
}

func (s *Store) HSet(ctx context.Context, key, field, value string) (bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("hset", key, kindHash, true)
	if err != nil {
		return false, err
	}
	_, existed := it.hash[field]
	it.hash[field] = value
	return !existed, nil
}

func (s *Store) HDel(ctx context.Context, key string, fields ...string) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("hdel", key, kindHash, false)
	if err != nil || it == nil {
		return 0, err
	}
	var n int64
	for _, f := range fields {
		if _, ok := it.hash[f]; ok {
			delete(it.hash, f)
			n++
		}
	}
	s.drop(key, it)
	return n, nil
}

func (s *Store) HExists(ctx context.Context, key, field string) (bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("hexists", key, kindHash, false)
	if err != nil || it == nil {
		return false, err
	}
	_, ok := it.hash[field]
	return ok, nil
}

func (s *Store) HLen(ctx context.Context, key string) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("hlen", key, kindHash, false)
	if err != nil || it == nil {
		return 0, err
	}
	return int64(len(it.hash)), nil
}

func (s *Store) HKeys(ctx context.Context, key string) ([]string, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("hkeys", key, kindHash, false)
	if err != nil || it == nil {
		return nil, err
	}
	out := make([]string, 0, len(it.hash))
	for f := range it.hash {
		out = append(out, f)
	}
	return out, nil
}

func (s *Store) HVals(ctx context.Context, key string) ([]string, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("hvals", key, kindHash, false)
	if err != nil || it == nil {
		return nil, err
	}
	out := make([]string, 0, len(it.hash))
	for _, v := range it.hash {
		out = append(out, v)
	}
	return out, nil
}

func (s *Store) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("hgetall", key, kindHash, false)
	if err != nil || it == nil {
		return map[string]string{}, err
	}
	out := make(map[string]string, len(it.hash))
	for f, v := range it.hash {
		out[f] = v
	}
	return out, nil
}

func (s *Store) HMSet(ctx context.Context, key string, fields map[string]string) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("hmset", key, kindHash, true)
	if err != nil {
		return err
	}
	for f, v := range fields {
		it.hash[f] = v
	}
	return nil
}

func (s *Store) HIncrBy(ctx context.Context, key, field string, by int64) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("hincrby", key, kindHash, true)
	if err != nil {
		return 0, err
	}
	cur := int64(0)
	if v, ok := it.hash[field]; ok && v != "" {
		cur, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return 0, errors.NewTypeMismatchError("hincrby", key, "hash value is not an integer")
		}
	}
	cur += by
	it.hash[field] = strconv.FormatInt(cur, 10)
	return cur, nil
}

// List commands

func (s *Store) LPush(ctx context.Context, key string, values ...string) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("lpush", key, kindList, true)
	if err != nil {
		return 0, err
	}
	for _, v := range values {
		it.list = append([]string{v}, it.list...)
	}
	s.wake()
	return int64(len(it.list)), nil
}

func (s *Store) RPush(ctx context.Context, key string, values ...string) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.rpush(key, values)
}

func (s *Store) rpush(key string, values []string) (int64, error) {
	it, err := s.fetch("rpush", key, kindList, true)
	if err != nil {
		return 0, err
	}
	it.list = append(it.list, values...)
	s.wake()
	return int64(len(it.list)), nil
}

func (s *Store) LPop(ctx context.Context, key string) (string, bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.lpop(key)
}

func (s *Store) lpop(key string) (string, bool, error) {
	it, err := s.fetch("lpop", key, kindList, false)
	if err != nil || it == nil || len(it.list) == 0 {
		return "", false, err
	}
	v := it.list[0]
	it.list = it.list[1:]
	s.drop(key, it)
	return v, true, nil
}

func (s *Store) RPop(ctx context.Context, key string) (string, bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	return s.rpop(key)
}

func (s *Store) rpop(key string) (string, bool, error) {
	it, err := s.fetch("rpop", key, kindList, false)
	if err != nil || it == nil || len(it.list) == 0 {
		return "", false, err
	}
	v := it.list[len(it.list)-1]
	it.list = it.list[:len(it.list)-1]
	s.drop(key, it)
	return v, true, nil
}

func (s *Store) LIndex(ctx context.Context, key string, index int64) (string, bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("lindex", key, kindList, false)
	if err != nil || it == nil {
		return "", false, err
	}
	n := int64(len(it.list))
	if index < 0 {
		index += n
	}
	if index < 0 || index >= n {
		return "", false, nil
	}
	return it.list[index], true, nil
}

func (s *Store) LSet(ctx context.Context, key string, index int64, value string) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("lset", key, kindList, false)
	if err != nil {
		return err
	}
	if it == nil {
		return errors.NewKeyError("list", key)
	}
	n := int64(len(it.list))
	orig := index
	if index < 0 {
		index += n
	}
	if index < 0 || index >= n {
		return errors.NewIndexError("list", key, orig)
	}
	it.list[index] = value
	return nil
}

func (s *Store) LLen(ctx context.Context, key string) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("llen", key, kindList, false)
	if err != nil || it == nil {
		return 0, err
	}
	return int64(len(it.list)), nil
}

func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("lrange", key, kindList, false)
	if err != nil || it == nil {
		return nil, err
	}
	start, stop, ok := normRange(start, stop, int64(len(it.list)))
	if !ok {
		return nil, nil
	}
	out := make([]string, stop-start+1)
	copy(out, it.list[start:stop+1])
	return out, nil
}

func (s *Store) LTrim(ctx context.Context, key string, start, stop int64) error {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("ltrim", key, kindList, false)
	if err != nil || it == nil {
		return err
	}
	start, stop, ok := normRange(start, stop, int64(len(it.list)))
	if !ok {
		it.list = nil
	} else {
		it.list = append([]string(nil), it.list[start:stop+1]...)
	}
	s.drop(key, it)
	return nil
}

func (s *Store) LRem(ctx context.Context, key string, count int64, value string) (int64, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	it, err := s.fetch("lrem", key, kindList, false)
	if err != nil || it == nil {
		return 0, err
	}
	var removed int64
	limit := count
	if limit < 0 {
		limit = -limit
	}
	var keep []string
	if count >= 0 {
		keep = it.list[:0]
		for _, v := range it.list {
			if v == value && (count == 0 || removed < limit) {
				removed++
				continue
			}
			keep = append(keep, v)
		}
	} else {
		// Negative count scans from the tail. The scan reads the
		// backing array high-to-low, so keep must not alias it.
		keep = make([]string, 0, len(it.list))
		for i := len(it.list) - 1; i >= 0; i-- {
			v := it.list[i]
			if v == value && removed < limit {
				removed++
				continue
			}
			keep = append(keep, v)
		}
		for i, j := 0, len(keep)-1; i < j; i, j = i+1, j-1 {
			keep[i], keep[j] = keep[j], keep[i]
		}
	}
	it.list = keep
	s.drop(key, it)
	return removed, nil
}

func (s *Store) RPopLPush(ctx context.Context, src, dst string) (string, bool, error) {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	// Type-check the destination before popping so a mismatch leaves
	// the source untouched.
	if _, err := s.fetch("lpush", dst, kindList, false); err != nil {
		return "", false, err
	}
	v, ok, err := s.rpop(src)
	if err != nil || !ok {
		return "", false, err
	}
	it, err := s.fetch("lpush", dst, kindList, true)
	if err != nil {
		return "", false, err
	}
	it.list = append([]string{v}, it.list...)
	s.wake()
	return v, true, nil
}

func (s *Store) BLPop(ctx context.Context, timeout time.Duration, keys ...string) (string, string, bool, error) {
	return s.blockingPop(ctx, timeout, keys, s.lpop)
}

func (s *Store) BRPop(ctx context.Context, timeout time.Duration, keys ...string) (string, string, bool, error) {
	return s.blockingPop(ctx, timeout, keys, s.rpop)
}

func (s *Store) blockingPop(ctx context.Context, timeout time.Duration, keys []string, pop func(string) (string, bool, error)) (string, string, bool, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}
	for {
		s.st.mu.Lock()
		for _, key := range keys {
			v, ok, err := pop(key)
			if err != nil {
				s.st.mu.Unlock()
				return "", "", false, err
			}
			if ok {
				s.st.mu.Unlock()
				return key, v, true, nil
			}
		}
		changed := s.st.notify
		s.st.mu.Unlock()

		select {
		case <-changed:
		case <-expired:
			return "", "", false, nil
		case <-ctx.Done():
			return "", "", false, ctx.Err()
		}
	}
}

func (s *Store) Pipeline() store.Pipe {
	return &pipe{s: s}
}

// Keys returns every live key in this database, sorted. Intended for tests
// and diagnostics.
func (s *Store) Keys(ctx context.Context) []string {
	s.st.mu.Lock()
	defer s.st.mu.Unlock()
	out := make([]string, 0, len(s.st.dbs[s.db]))
	for key := range s.st.dbs[s.db] {
		if s.lookup(key) != nil {
			out = append(out, key)
		}
	}
	sort.Strings(out)
	return out
}

// Helpers

// normRange resolves negative indexes and clamps start/stop against a
// collection of length n, mirroring the remote store's inclusive ranges.
func normRange(start, stop, n int64) (int64, int64, bool) {
	if start < 0 {
		start += n
	}
	if stop < 0 {
		stop += n
	}
	if start < 0 {
		start = 0
	}
	if stop >= n {
		stop = n - 1
	}
	if n == 0 || start > stop || start >= n {
		return 0, 0, false
	}
	return start, stop, true
}

func collect(members map[string]struct{}, err error) ([]string, error) {
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(members))
	for m := range members {
		out = append(out, m)
	}
	sort.Strings(out)
	return out, nil
}

func zmembers(zs []store.Z) []string {
	if zs == nil {
		return nil
	}
	out := make([]string, len(zs))
	for i, z := range zs {
		out[i] = z.Member
	}
	return out
}
