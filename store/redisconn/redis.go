/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package redisconn

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/suparena/redisnatives/errors"
	"github.com/suparena/redisnatives/store"
)

// Conn adapts a go-redis client to the store.Conn boundary.
type Conn struct {
	client *redis.Client
}

// New creates a connection to the Redis server at addr.
func New(addr, password string, db int) *Conn {
	return &Conn{client: redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})}
}

// NewFromClient wraps an existing go-redis client. The client is shared,
// not owned; closing it is the caller's responsibility.
func NewFromClient(client *redis.Client) *Conn {
	return &Conn{client: client}
}

// FromEnv builds a connection from REDIS_ADDR, REDIS_PASSWORD and REDIS_DB,
// loading a .env file first when one exists.
func FromEnv() (*Conn, error) {
	_ = godotenv.Load()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	db := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errors.NewInvalidConfigError("REDIS_DB", "must be an integer")
		}
		db = parsed
	}
	return New(addr, os.Getenv("REDIS_PASSWORD"), db), nil
}

// Close releases the underlying client's resources.
func (c *Conn) Close() error {
	return c.client.Close()
}

// Ping verifies the server is reachable.
func (c *Conn) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// translate maps protocol failures onto the typed taxonomy.
func translate(op, key string, err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.HasPrefix(msg, "WRONGTYPE"):
		return errors.NewTypeMismatchError(op, key, msg)
	case strings.Contains(msg, "not an integer"),
		strings.Contains(msg, "not a valid float"):
		return errors.NewTypeMismatchError(op, key, msg)
	case strings.Contains(msg, "index out of range"):
		return errors.NewIndexError("list", key, -1)
	case strings.Contains(msg, "no such key"):
		return errors.NewKeyError("key", key)
	}
	return err
}

// str unwraps a string reply, turning the nil reply into an absence flag.
func str(op, key string, cmd *redis.StringCmd) (string, bool, error) {
	v, err := cmd.Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, translate(op, key, err)
	}
	return v, true, nil
}

// Keyspace commands

func (c *Conn) Exists(ctx context.Context, key string) (bool, error) {
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, translate("exists", key, err)
}

func (c *Conn) Del(ctx context.Context, keys ...string) (int64, error) {
	n, err := c.client.Del(ctx, keys...).Result()
	return n, translate("del", strings.Join(keys, ","), err)
}

func (c *Conn) Type(ctx context.Context, key string) (string, error) {
	t, err := c.client.Type(ctx, key).Result()
	return t, translate("type", key, err)
}

func (c *Conn) Rename(ctx context.Context, key, newKey string) error {
	return translate("rename", key, c.client.Rename(ctx, key, newKey).Err())
}

func (c *Conn) RenameNX(ctx context.Context, key, newKey string) (bool, error) {
	ok, err := c.client.RenameNX(ctx, key, newKey).Result()
	return ok, translate("renamenx", key, err)
}

func (c *Conn) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := c.client.Expire(ctx, key, ttl).Result()
	return ok, translate("expire", key, err)
}

func (c *Conn) ExpireAt(ctx context.Context, key string, at time.Time) (bool, error) {
	ok, err := c.client.ExpireAt(ctx, key, at).Result()
	return ok, translate("expireat", key, err)
}

func (c *Conn) TTL(ctx context.Context, key string) (time.Duration, error) {
	d, err := c.client.TTL(ctx, key).Result()
	if err != nil {
		return 0, translate("ttl", key, err)
	}
	// go-redis reports the -1/-2 sentinels as raw negative durations.
	switch d {
	case -1:
		return store.TTLNoExpiry, nil
	case -2:
		return store.TTLMissing, nil
	}
	return d, nil
}

func (c *Conn) Move(ctx context.Context, key string, db int) (bool, error) {
	ok, err := c.client.Move(ctx, key, db).Result()
	return ok, translate("move", key, err)
}

// String commands

func (c *Conn) Get(ctx context.Context, key string) (string, bool, error) {
	return str("get", key, c.client.Get(ctx, key))
}

func (c *Conn) Set(ctx context.Context, key, value string) error {
	return translate("set", key, c.client.Set(ctx, key, value, 0).Err())
}

func (c *Conn) Append(ctx context.Context, key, value string) (int64, error) {
	n, err := c.client.Append(ctx, key, value).Result()
	return n, translate("append", key, err)
}

func (c *Conn) GetRange(ctx context.Context, key string, start, end int64) (string, error) {
	v, err := c.client.GetRange(ctx, key, start, end).Result()
	return v, translate("getrange", key, err)
}

func (c *Conn) IncrBy(ctx context.Context, key string, by int64) (int64, error) {
	n, err := c.client.IncrBy(ctx, key, by).Result()
	return n, translate("incrby", key, err)
}

func (c *Conn) DecrBy(ctx context.Context, key string, by int64) (int64, error) {
	n, err := c.client.DecrBy(ctx, key, by).Result()
	return n, translate("decrby", key, err)
}

// Set commands

func (c *Conn) SAdd(ctx context.Context, key string, members ...string) (int64, error) {
	n, err := c.client.SAdd(ctx, key, anySlice(members)...).Result()
	return n, translate("sadd", key, err)
}

func (c *Conn) SRem(ctx context.Context, key string, members ...string) (int64, error) {
	n, err := c.client.SRem(ctx, key, anySlice(members)...).Result()
	return n, translate("srem", key, err)
}

func (c *Conn) SCard(ctx context.Context, key string) (int64, error) {
	n, err := c.client.SCard(ctx, key).Result()
	return n, translate("scard", key, err)
}

func (c *Conn) SIsMember(ctx context.Context, key, member string) (bool, error) {
	ok, err := c.client.SIsMember(ctx, key, member).Result()
	return ok, translate("sismember", key, err)
}

func (c *Conn) SMembers(ctx context.Context, key string) ([]string, error) {
	members, err := c.client.SMembers(ctx, key).Result()
	return members, translate("smembers", key, err)
}

func (c *Conn) SRandMember(ctx context.Context, key string) (string, bool, error) {
	return str("srandmember", key, c.client.SRandMember(ctx, key))
}

func (c *Conn) SPop(ctx context.Context, key string) (string, bool, error) {
	return str("spop", key, c.client.SPop(ctx, key))
}

func (c *Conn) SDiff(ctx context.Context, keys ...string) ([]string, error) {
	members, err := c.client.SDiff(ctx, keys...).Result()
	return members, translate("sdiff", strings.Join(keys, ","), err)
}

func (c *Conn) SInter(ctx context.Context, keys ...string) ([]string, error) {
	members, err := c.client.SInter(ctx, keys...).Result()
	return members, translate("sinter", strings.Join(keys, ","), err)
}

func (c *Conn) SUnion(ctx context.Context, keys ...string) ([]string, error) {
	members, err := c.client.SUnion(ctx, keys...).Result()
	return members, translate("sunion", strings.Join(keys, ","), err)
}

func (c *Conn) SDiffStore(ctx context.Context, dst string, keys ...string) (int64, error) {
	n, err := c.client.SDiffStore(ctx, dst, keys...).Result()
	return n, translate("sdiffstore", dst, err)
}

func (c *Conn) SInterStore(ctx context.Context, dst string, keys ...string) (int64, error) {
	n, err := c.client.SInterStore(ctx, dst, keys...).Result()
	return n, translate("sinterstore", dst, err)
}

func (c *Conn) SUnionStore(ctx context.Context, dst string, keys ...string) (int64, error) {
	n, err := c.client.SUnionStore(ctx, dst, keys...).Result()
	return n, translate("sunionstore", dst, err)
}

// Sorted-set commands

func (c *Conn) ZAdd(ctx context.Context, key string, members ...store.Z) (int64, error) {
	zs := make([]redis.Z, len(members))
	for i, z := range members {
		zs[i] = redis.Z{Member: z.Member, Score: z.Score}
	}
	n, err := c.client.ZAdd(ctx, key, zs...).Result()
	return n, translate("zadd", key, err)
}

func (c *Conn) ZRem(ctx context.Context, key string, members ...string) (int64, error) {
	n, err := c.client.ZRem(ctx, key, anySlice(members)...).Result()
	return n, translate("zrem", key, err)
}

func (c *Conn) ZCard(ctx context.Context, key string) (int64, error) {
	n, err := c.client.ZCard(ctx, key).Result()
	return n, translate("zcard", key, err)
}

func (c *Conn) ZScore(ctx context.Context, key, member string) (float64, bool, error) {
	score, err := c.client.ZScore(ctx, key, member).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, translate("zscore", key, err)
	}
	return score, true, nil
}

func (c *Conn) ZRank(ctx context.Context, key, member string) (int64, bool, error) {
	rank, err := c.client.ZRank(ctx, key, member).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, translate("zrank", key, err)
	}
	return rank, true, nil
}

func (c *Conn) ZRevRank(ctx context.Context, key, member string) (int64, bool, error) {
	rank, err := c.client.ZRevRank(ctx, key, member).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, translate("zrevrank", key, err)
	}
	return rank, true, nil
}

func (c *Conn) ZIncrBy(ctx context.Context, key string, by float64, member string) (float64, error) {
	score, err := c.client.ZIncrBy(ctx, key, by, member).Result()
	return score, translate("zincrby", key, err)
}

func (c *Conn) ZRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	members, err := c.client.ZRange(ctx, key, start, stop).Result()
	return members, translate("zrange", key, err)
}

func (c *Conn) ZRevRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	members, err := c.client.ZRevRange(ctx, key, start, stop).Result()
	return members, translate("zrevrange", key, err)
}

func (c *Conn) ZRangeWithScores(ctx context.Context, key string, start, stop int64) ([]store.Z, error) {
	zs, err := c.client.ZRangeWithScores(ctx, key, start, stop).Result()
	if err != nil {
		return nil, translate("zrange", key, err)
	}
	out := make([]store.Z, len(zs))
	for i, z := range zs {
		member, _ := z.Member.(string)
		out[i] = store.Z{Member: member, Score: z.Score}
	}
	return out, nil
}

func (c *Conn) ZRangeByScore(ctx context.Context, key string, min, max float64) ([]string, error) {
	members, err := c.client.ZRangeByScore(ctx, key, &redis.ZRangeBy{
		Min: formatScore(min),
		Max: formatScore(max),
	}).Result()
	return members, translate("zrangebyscore", key, err)
}

func (c *Conn) ZRemRangeByRank(ctx context.Context, key string, start, stop int64) (int64, error) {
	n, err := c.client.ZRemRangeByRank(ctx, key, start, stop).Result()
	return n, translate("zremrangebyrank", key, err)
}

func (c *Conn) ZRemRangeByScore(ctx context.Context, key string, min, max float64) (int64, error) {
	n, err := c.client.ZRemRangeByScore(ctx, key, formatScore(min), formatScore(max)).Result()
	return n, translate("zremrangebyscore", key, err)
}

func (c *Conn) ZUnionStore(ctx context.Context, dst string, keys []string, agg store.Aggregate) (int64, error) {
	n, err := c.client.ZUnionStore(ctx, dst, &redis.ZStore{
		Keys:      keys,
		Aggregate: string(agg),
	}).Result()
	return n, translate("zunionstore", dst, err)
}

func (c *Conn) ZInterStore(ctx context.Context, dst string, keys []string, agg store.Aggregate) (int64, error) {
	n, err := c.client.ZInterStore(ctx, dst, &redis.ZStore{
		Keys:      keys,
		Aggregate: string(agg),
	}).Result()
	return n, translate("zinterstore", dst, err)
}

// Hash commands

func (c *Conn) HGet(ctx context.Context, key, field string) (string, bool, error) {
	return str("hget", key, c.client.HGet(ctx, key, field))
}

func (c *Conn) HSet(ctx context.Context, key, field, value string) (bool, error) {
	n, err := c.client.HSet(ctx, key, field, value).Result()
	return n > 0, translate("hset", key, err)
}

func (c *Conn) HDel(ctx context.Context, key string, fields ...string) (int64, error) {
	n, err := c.client.HDel(ctx, key, fields...).Result()
	return n, translate("hdel", key, err)
}

func (c *Conn) HExists(ctx context.Context, key, field string) (bool, error) {
	ok, err := c.client.HExists(ctx, key, field).Result()
	return ok, translate("hexists", key, err)
}

func (c *Conn) HLen(ctx context.Context, key string) (int64, error) {
	n, err := c.client.HLen(ctx, key).Result()
	return n, translate("hlen", key, err)
}

func (c *Conn) HKeys(ctx context.Context, key string) ([]string, error) {
	fields, err := c.client.HKeys(ctx, key).Result()
	return fields, translate("hkeys", key, err)
}

func (c *Conn) HVals(ctx context.Context, key string) ([]string, error) {
	values, err := c.client.HVals(ctx, key).Result()
	return values, translate("hvals", key, err)
}

func (c *Conn) HGetAll(ctx context.Context, key string) (map[string]string, error) {
	fields, err := c.client.HGetAll(ctx, key).Result()
	return fields, translate("hgetall", key, err)
}

func (c *Conn) HMSet(ctx context.Context, key string, fields map[string]string) error {
	values := make(map[string]interface{}, len(fields))
	for f, v := range fields {
		values[f] = v
	}
	return translate("hmset", key, c.client.HSet(ctx, key, values).Err())
}

func (c *Conn) HIncrBy(ctx context.Context, key, field string, by int64) (int64, error) {
	n, err := c.client.HIncrBy(ctx, key, field, by).Result()
	return n, translate("hincrby", key, err)
}

// List commands

func (c *Conn) LPush(ctx context.Context, key string, values ...string) (int64, error) {
	n, err := c.client.LPush(ctx, key, anySlice(values)...).Result()
	return n, translate("lpush", key, err)
}

func (c *Conn) RPush(ctx context.Context, key string, values ...string) (int64, error) {
	n, err := c.client.RPush(ctx, key, anySlice(values)...).Result()
	return n, translate("rpush", key, err)
}

func (c *Conn) LPop(ctx context.Context, key string) (string, bool, error) {
	return str("lpop", key, c.client.LPop(ctx, key))
}

func (c *Conn) RPop(ctx context.Context, key string) (string, bool, error) {
	return str("rpop", key, c.client.RPop(ctx, key))
}

func (c *Conn) LIndex(ctx context.Context, key string, index int64) (string, bool, error) {
	return str("lindex", key, c.client.LIndex(ctx, key, index))
}

func (c *Conn) LSet(ctx context.Context, key string, index int64, value string) error {
	err := c.client.LSet(ctx, key, index, value).Err()
	if err != nil && strings.Contains(err.Error(), "index out of range") {
		return errors.NewIndexError("list", key, index)
	}
	return translate("lset", key, err)
}

func (c *Conn) LLen(ctx context.Context, key string) (int64, error) {
	n, err := c.client.LLen(ctx, key).Result()
	return n, translate("llen", key, err)
}

func (c *Conn) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	values, err := c.client.LRange(ctx, key, start, stop).Result()
	return values, translate("lrange", key, err)
}

func (c *Conn) LTrim(ctx context.Context, key string, start, stop int64) error {
	return translate("ltrim", key, c.client.LTrim(ctx, key, start, stop).Err())
}

func (c *Conn) LRem(ctx context.Context, key string, count int64, value string) (int64, error) {
	n, err := c.client.LRem(ctx, key, count, value).Result()
	return n, translate("lrem", key, err)
}

func (c *Conn) RPopLPush(ctx context.Context, src, dst string) (string, bool, error) {
	return str("rpoplpush", src, c.client.RPopLPush(ctx, src, dst))
}

func (c *Conn) BLPop(ctx context.Context, timeout time.Duration, keys ...string) (string, string, bool, error) {
	return bpop(c.client.BLPop(ctx, timeout, keys...))
}

func (c *Conn) BRPop(ctx context.Context, timeout time.Duration, keys ...string) (string, string, bool, error) {
	return bpop(c.client.BRPop(ctx, timeout, keys...))
}

func bpop(cmd *redis.StringSliceCmd) (string, string, bool, error) {
	reply, err := cmd.Result()
	if err == redis.Nil {
		return "", "", false, nil
	}
	if err != nil {
		return "", "", false, err
	}
	if len(reply) != 2 {
		return "", "", false, nil
	}
	return reply[0], reply[1], true, nil
}

func (c *Conn) Pipeline() store.Pipe {
	return &pipe{p: c.client.Pipeline()}
}

// Helpers

func anySlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func formatScore(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
