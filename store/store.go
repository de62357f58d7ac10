/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package store

import (
	"context"
	"time"
)

// TTL sentinels, mirroring the store's own conventions.
const (
	// TTLNoExpiry is reported for a key that exists but has no expiry set.
	TTLNoExpiry = -1 * time.Second

	// TTLMissing is reported for a key that does not exist.
	TTLMissing = -2 * time.Second
)

// Z is a sorted-set member together with its score.
type Z struct {
	Member string
	Score  float64
}

// Aggregate selects how ZUnionStore/ZInterStore combine scores.
type Aggregate string

const (
	AggregateSum Aggregate = "SUM"
	AggregateMin Aggregate = "MIN"
	AggregateMax Aggregate = "MAX"
)

// Conn is a connection to the remote store. Implementations must be safe
// for concurrent use; the facades take no locks of their own.
//
// Lookup-style commands report absence through a boolean rather than an
// error; the facades decide which absences are failures.
type Conn interface {
	// Keyspace commands

	Exists(ctx context.Context, key string) (bool, error)
	Del(ctx context.Context, keys ...string) (int64, error)
	Type(ctx context.Context, key string) (string, error)
	Rename(ctx context.Context, key, newKey string) error
	// RenameNX renames only when newKey does not exist yet. It returns
	// false, leaving both keys untouched, when newKey is taken.
	RenameNX(ctx context.Context, key, newKey string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ExpireAt(ctx context.Context, key string, at time.Time) (bool, error)
	// TTL returns the remaining lifetime, TTLNoExpiry or TTLMissing.
	TTL(ctx context.Context, key string) (time.Duration, error)
	// Move relocates key into the logical database with index db.
	Move(ctx context.Context, key string, db int) (bool, error)

	// String commands

	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Append(ctx context.Context, key, value string) (int64, error)
	GetRange(ctx context.Context, key string, start, end int64) (string, error)
	IncrBy(ctx context.Context, key string, by int64) (int64, error)
	DecrBy(ctx context.Context, key string, by int64) (int64, error)

	// Set commands

	SAdd(ctx context.Context, key string, members ...string) (int64, error)
	SRem(ctx context.Context, key string, members ...string) (int64, error)
	SCard(ctx context.Context, key string) (int64, error)
	SIsMember(ctx context.Context, key, member string) (bool, error)
	SMembers(ctx context.Context, key string) ([]string, error)
	SRandMember(ctx context.Context, key string) (string, bool, error)
	SPop(ctx context.Context, key string) (string, bool, error)
	SDiff(ctx context.Context, keys ...string) ([]string, error)
	SInter(ctx context.Context, keys ...string) ([]string, error)
	SUnion(ctx context.Context, keys ...string) ([]string, error)
	SDiffStore(ctx context.Context, dst string, keys ...string) (int64, error)
	SInterStore(ctx context.Context, dst string, keys ...string) (int64, error)
	SUnionStore(ctx context.Context, dst string, keys ...string) (int64, error)

	// Sorted-set commands

	ZAdd(ctx context.Context, key string, members ...Z) (int64, error)
	ZRem(ctx context.Context, key string, members ...string) (int64, error)
	ZCard(ctx context.Context, key string) (int64, error)
	ZScore(ctx context.Context, key, member string) (float64, bool, error)
	ZRank(ctx context.Context, key, member string) (int64, bool, error)
	ZRevRank(ctx context.Context, key, member string) (int64, bool, error)
	ZIncrBy(ctx context.Context, key string, by float64, member string) (float64, error)
	ZRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	ZRangeWithScores(ctx context.Context, key string, start, stop int64) ([]Z, error)
	ZRangeByScore(ctx context.Context, key string, min, max float64) ([]string, error)
	ZRemRangeByRank(ctx context.Context, key string, start, stop int64) (int64, error)
	ZRemRangeByScore(ctx context.Context, key string, min, max float64) (int64, error)
	ZUnionStore(ctx context.Context, dst string, keys []string, agg Aggregate) (int64, error)
	ZInterStore(ctx context.Context, dst string, keys []string, agg Aggregate) (int64, error)

	// Hash commands

	HGet(ctx context.Context, key, field string) (string, bool, error)
	HSet(ctx context.Context, key, field, value string) (bool, error)
	HDel(ctx context.Context, key string, fields ...string) (int64, error)
	HExists(ctx context.Context, key, field string) (bool, error)
	HLen(ctx context.Context, key string) (int64, error)
	HKeys(ctx context.Context, key string) ([]string, error)
	HVals(ctx context.Context, key string) ([]string, error)
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HMSet(ctx context.Context, key string, fields map[string]string) error
	HIncrBy(ctx context.Context, key, field string, by int64) (int64, error)

	// List commands

	LPush(ctx context.Context, key string, values ...string) (int64, error)
	RPush(ctx context.Context, key string, values ...string) (int64, error)
	LPop(ctx context.Context, key string) (string, bool, error)
	RPop(ctx context.Context, key string) (string, bool, error)
	LIndex(ctx context.Context, key string, index int64) (string, bool, error)
	// LSet fails with an index error when index is out of range.
	LSet(ctx context.Context, key string, index int64, value string) error
	LLen(ctx context.Context, key string) (int64, error)
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LTrim(ctx context.Context, key string, start, stop int64) error
	// LRem removes count occurrences of value; count 0 removes them all.
	LRem(ctx context.Context, key string, count int64, value string) (int64, error)
	RPopLPush(ctx context.Context, src, dst string) (string, bool, error)
	// BLPop pops the head of the first non-empty key, blocking up to
	// timeout. A zero timeout blocks indefinitely. ok is false when the
	// timeout elapsed with every key empty.
	BLPop(ctx context.Context, timeout time.Duration, keys ...string) (key, value string, ok bool, err error)
	BRPop(ctx context.Context, timeout time.Duration, keys ...string) (key, value string, ok bool, err error)

	// Pipeline starts a new command batch against this connection.
	Pipeline() Pipe
}

// Pipe batches commands for a single round trip. Commands are queued by the
// builder methods and run, in submission order, by Exec. Exec returns one
// Result per queued command, in that same order. The batch is not atomic;
// commands from concurrent callers may interleave between its steps.
type Pipe interface {
	Del(keys ...string)
	Set(key, value string)
	SAdd(key string, members ...string)
	SDiff(keys ...string)
	SInterStore(dst string, keys ...string)
	SUnionStore(dst string, keys ...string)
	ZAdd(key string, members ...Z)
	ZRange(key string, start, stop int64)
	ZRemRangeByRank(key string, start, stop int64)
	RPush(key string, values ...string)

	Exec(ctx context.Context) ([]Result, error)
}

// Result is the outcome of one pipelined command. Int carries counts and
// lengths; Strings carries multi-value replies.
type Result struct {
	Int     int64
	Strings []string
}
