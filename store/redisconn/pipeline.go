/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package redisconn

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/suparena/redisnatives/store"
)

// pipe adapts a go-redis pipeliner to the store.Pipe contract. Commands
// are queued locally by go-redis and sent in one round trip on Exec.
type pipe struct {
	p    redis.Pipeliner
	read []func() store.Result
}

func (p *pipe) intResult(cmd *redis.IntCmd) {
	p.read = append(p.read, func() store.Result {
		return store.Result{Int: cmd.Val()}
	})
}

func (p *pipe) sliceResult(cmd *redis.StringSliceCmd) {
	p.read = append(p.read, func() store.Result {
		return store.Result{Strings: cmd.Val(), Int: int64(len(cmd.Val()))}
	})
}

func (p *pipe) statusResult() {
	p.read = append(p.read, func() store.Result {
		return store.Result{}
	})
}

func (p *pipe) Del(keys ...string) {
	p.intResult(p.p.Del(context.Background(), keys...))
}

func (p *pipe) Set(key, value string) {
	p.p.Set(context.Background(), key, value, 0)
	p.statusResult()
}

func (p *pipe) SAdd(key string, members ...string) {
	p.intResult(p.p.SAdd(context.Background(), key, anySlice(members)...))
}

func (p *pipe) SDiff(keys ...string) {
	p.sliceResult(p.p.SDiff(context.Background(), keys...))
}

func (p *pipe) SInterStore(dst string, keys ...string) {
	p.intResult(p.p.SInterStore(context.Background(), dst, keys...))
}

func (p *pipe) SUnionStore(dst string, keys ...string) {
	p.intResult(p.p.SUnionStore(context.Background(), dst, keys...))
}

func (p *pipe) ZAdd(key string, members ...store.Z) {
	zs := make([]redis.Z, len(members))
	for i, z := range members {
		zs[i] = redis.Z{Member: z.Member, Score: z.Score}
	}
	p.intResult(p.p.ZAdd(context.Background(), key, zs...))
}

func (p *pipe) ZRange(key string, start, stop int64) {
	p.sliceResult(p.p.ZRange(context.Background(), key, start, stop))
}

func (p *pipe) ZRemRangeByRank(key string, start, stop int64) {
	p.intResult(p.p.ZRemRangeByRank(context.Background(), key, start, stop))
}

func (p *pipe) RPush(key string, values ...string) {
	p.intResult(p.p.RPush(context.Background(), key, anySlice(values)...))
}

func (p *pipe) Exec(ctx context.Context) ([]store.Result, error) {
	if _, err := p.p.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}
	results := make([]store.Result, len(p.read))
	for i, read := range p.read {
		results[i] = read()
	}
	p.read = nil
	return results, nil
}
