/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/suparena/redisnatives"
	"github.com/suparena/redisnatives/config"
	"github.com/suparena/redisnatives/store"
	"github.com/suparena/redisnatives/store/memory"
	"github.com/suparena/redisnatives/store/redisconn"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	policyFlag  = flag.String("policies", "", "Path to a YAML factory policy file")
	factoryFlag = flag.String("factory", "", "Named factory from the policy file to demo")
	memoryFlag  = flag.Bool("memory", false, "Use the in-memory store instead of Redis")
)

func main() {
	flag.Parse()

	if *versionFlag || *vFlag {
		info := redisnatives.GetVersionInfo()
		fmt.Printf("RedisNatives nativesdemo version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "nativesdemo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	var conn store.Conn
	if *memoryFlag {
		conn = memory.New()
	} else {
		c, err := redisconn.FromEnv()
		if err != nil {
			return err
		}
		defer c.Close()
		if err := c.Ping(ctx); err != nil {
			return fmt.Errorf("reaching redis: %w", err)
		}
		conn = c
	}

	factory, err := buildFactory(ctx, conn)
	if err != nil {
		return err
	}
	return demo(ctx, conn, factory)
}

// buildFactory returns the named factory from the policy file, or a
// default namespaced+temporary factory when no file was given.
func buildFactory(ctx context.Context, conn store.Conn) (*redisnatives.Factory, error) {
	if *policyFlag == "" {
		return redisnatives.New(conn, redisnatives.Config{
			Before: []redisnatives.BeforeCreate{redisnatives.Namespaced("demo", ":")},
			After:  []redisnatives.AfterCreate{redisnatives.Temporary(time.Hour)},
		})
	}

	file, err := config.Load(*policyFlag)
	if err != nil {
		return nil, err
	}
	reg, err := file.Registry(ctx, conn)
	if err != nil {
		return nil, err
	}

	name := *factoryFlag
	if name == "" {
		names := reg.Names()
		if len(names) == 0 {
			return nil, fmt.Errorf("policy file %q defines no factories", *policyFlag)
		}
		name = names[0]
	}
	return reg.Get(name)
}

func demo(ctx context.Context, conn store.Conn, factory *redisnatives.Factory) error {
	session, err := factory.Hash(ctx, "session", map[string]string{
		"user":  "u1",
		"since": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	board, err := factory.OrderedSet(ctx, "board")
	if err != nil {
		return err
	}
	for member, score := range map[string]float64{"ada": 2050, "grace": 1998, "alan": 2101} {
		if _, err := board.Add(ctx, member, score); err != nil {
			return err
		}
	}

	queue, err := factory.Sequence(ctx, "queue", true)
	if err != nil {
		return err
	}
	for _, job := range []string{"resize", "encode", "publish"} {
		if _, err := queue.PushTail(ctx, job); err != nil {
			return err
		}
	}

	items, err := session.Items(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("session %s:\n", session.Key())
	for field, value := range items {
		fmt.Printf("  %s = %s\n", field, value)
	}

	ranked, err := board.RangeByRankWithScores(ctx, 0, -1)
	if err != nil {
		return err
	}
	fmt.Printf("board %s:\n", board.Key())
	for i := len(ranked) - 1; i >= 0; i-- {
		m := ranked[i]
		fmt.Printf("  #%d %s (%.0f)\n", len(ranked)-i, m.Member, m.Score)
	}

	next, ok, err := queue.PopHead(ctx)
	if err != nil {
		return err
	}
	if ok {
		n, _ := queue.Len(ctx)
		fmt.Printf("queue %s: next job %q, %d pending\n", queue.Key(), next, n)
	}
	return nil
}
