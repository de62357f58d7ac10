/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory

import (
	"context"

	"github.com/suparena/redisnatives/store"
)

// pipe queues commands and replays them in order on Exec. Each queued
// command takes the store lock independently, so the batch is ordered but
// not atomic, matching the remote pipeline contract.
type pipe struct {
	s   *Store
	ops []func(ctx context.Context) (store.Result, error)
}

func (p *pipe) Del(keys ...string) {
	p.ops = append(p.ops, func(ctx context.Context) (store.Result, error) {
		n, err := p.s.Del(ctx, keys...)
		return store.Result{Int: n}, err
	})
}

func (p *pipe) Set(key, value string) {
	p.ops = append(p.ops, func(ctx context.Context) (store.Result, error) {
		return store.Result{}, p.s.Set(ctx, key, value)
	})
}

func (p *pipe) SAdd(key string, members ...string) {
	p.ops = append(p.ops, func(ctx context.Context) (store.Result, error) {
		n, err := p.s.SAdd(ctx, key, members...)
		return store.Result{Int: n}, err
	})
}

func (p *pipe) SDiff(keys ...string) {
	p.ops = append(p.ops, func(ctx context.Context) (store.Result, error) {
		members, err := p.s.SDiff(ctx, keys...)
		return store.Result{Strings: members, Int: int64(len(members))}, err
	})
}

func (p *pipe) SInterStore(dst string, keys ...string) {
	p.ops = append(p.ops, func(ctx context.Context) (store.Result, error) {
		n, err := p.s.SInterStore(ctx, dst, keys...)
		return store.Result{Int: n}, err
	})
}

func (p *pipe) SUnionStore(dst string, keys ...string) {
	p.ops = append(p.ops, func(ctx context.Context) (store.Result, error) {
		n, err := p.s.SUnionStore(ctx, dst, keys...)
		return store.Result{Int: n}, err
	})
}

func (p *pipe) ZAdd(key string, members ...store.Z) {
	p.ops = append(p.ops, func(ctx context.Context) (store.Result, error) {
		n, err := p.s.ZAdd(ctx, key, members...)
		return store.Result{Int: n}, err
	})
}

func (p *pipe) ZRange(key string, start, stop int64) {
	p.ops = append(p.ops, func(ctx context.Context) (store.Result, error) {
		members, err := p.s.ZRange(ctx, key, start, stop)
		return store.Result{Strings: members, Int: int64(len(members))}, err
	})
}

func (p *pipe) ZRemRangeByRank(key string, start, stop int64) {
	p.ops = append(p.ops, func(ctx context.Context) (store.Result, error) {
		n, err := p.s.ZRemRangeByRank(ctx, key, start, stop)
		return store.Result{Int: n}, err
	})
}

func (p *pipe) RPush(key string, values ...string) {
	p.ops = append(p.ops, func(ctx context.Context) (store.Result, error) {
		n, err := p.s.RPush(ctx, key, values...)
		return store.Result{Int: n}, err
	})
}

func (p *pipe) Exec(ctx context.Context) ([]store.Result, error) {
	results := make([]store.Result, 0, len(p.ops))
	for _, op := range p.ops {
		res, err := op(ctx)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	p.ops = nil
	return results, nil
}
