/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package memory

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/suparena/redisnatives/errors"
	"github.com/suparena/redisnatives/store"
)

func TestStringRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.Set(ctx, "greeting", "hello"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	v, ok, err := s.Get(ctx, "greeting")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if v != "hello" {
		t.Errorf("Expected %q, got %q", "hello", v)
	}

	_, ok, err = s.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("Get on missing key should not error: %v", err)
	}
	if ok {
		t.Error("Get on missing key should report absence")
	}
}

func TestIncrRejectsNonNumeric(t *testing.T) {
	ctx := context.Background()
	s := New()

	if err := s.Set(ctx, "k", "not a number"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.IncrBy(ctx, "k", 1); !errors.IsTypeMismatch(err) {
		t.Errorf("Expected type mismatch, got %v", err)
	}

	if err := s.Set(ctx, "n", "41"); err != nil {
		t.Fatal(err)
	}
	v, err := s.IncrBy(ctx, "n", 1)
	if err != nil {
		t.Fatal(err)
	}
	if v != 42 {
		t.Errorf("Expected 42, got %d", v)
	}
}

func TestKindEnforcement(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.SAdd(ctx, "k", "a"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := s.Get(ctx, "k"); !errors.IsTypeMismatch(err) {
		t.Errorf("Get on a set key should be a type mismatch, got %v", err)
	}
	if _, err := s.LLen(ctx, "k"); !errors.IsTypeMismatch(err) {
		t.Errorf("LLen on a set key should be a type mismatch, got %v", err)
	}

	tp, err := s.Type(ctx, "k")
	if err != nil || tp != "set" {
		t.Errorf("Expected type set, got %q err=%v", tp, err)
	}
}

func TestRenameNX(t *testing.T) {
	ctx := context.Background()
	s := New()

	s.Set(ctx, "a", "1")
	s.Set(ctx, "b", "2")

	ok, err := s.RenameNX(ctx, "a", "b")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("RenameNX onto an existing key should fail")
	}

	// Both keys untouched.
	if v, _, _ := s.Get(ctx, "a"); v != "1" {
		t.Errorf("Source key changed: %q", v)
	}
	if v, _, _ := s.Get(ctx, "b"); v != "2" {
		t.Errorf("Destination key changed: %q", v)
	}

	ok, err = s.RenameNX(ctx, "a", "c")
	if err != nil || !ok {
		t.Fatalf("RenameNX onto a free key should succeed: ok=%v err=%v", ok, err)
	}
	if exists, _ := s.Exists(ctx, "a"); exists {
		t.Error("Source key should be gone after rename")
	}
}

func TestExpiry(t *testing.T) {
	ctx := context.Background()
	s := New()

	s.Set(ctx, "k", "v")

	ttl, err := s.TTL(ctx, "k")
	if err != nil {
		t.Fatal(err)
	}
	if ttl != store.TTLNoExpiry {
		t.Errorf("Expected TTLNoExpiry, got %v", ttl)
	}

	if _, err := s.Expire(ctx, "k", 10*time.Millisecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(20 * time.Millisecond)

	if exists, _ := s.Exists(ctx, "k"); exists {
		t.Error("Key should have expired")
	}
	if ttl, _ := s.TTL(ctx, "k"); ttl != store.TTLMissing {
		t.Errorf("Expected TTLMissing, got %v", ttl)
	}
}

func TestMoveAcrossDatabases(t *testing.T) {
	ctx := context.Background()
	s := New()

	s.Set(ctx, "k", "v")
	ok, err := s.Move(ctx, "k", 3)
	if err != nil || !ok {
		t.Fatalf("Move failed: ok=%v err=%v", ok, err)
	}

	if exists, _ := s.Exists(ctx, "k"); exists {
		t.Error("Key should be gone from database 0")
	}
	if v, ok, _ := s.Select(3).Get(ctx, "k"); !ok || v != "v" {
		t.Errorf("Key should live in database 3: ok=%v v=%q", ok, v)
	}
}

func TestSetAlgebra(t *testing.T) {
	ctx := context.Background()
	s := New()

	s.SAdd(ctx, "a", "1", "2", "3")
	s.SAdd(ctx, "b", "2", "3", "4")

	tests := []struct {
		name string
		got  func() ([]string, error)
		want []string
	}{
		{"diff", func() ([]string, error) { return s.SDiff(ctx, "a", "b") }, []string{"1"}},
		{"inter", func() ([]string, error) { return s.SInter(ctx, "a", "b") }, []string{"2", "3"}},
		{"union", func() ([]string, error) { return s.SUnion(ctx, "a", "b") }, []string{"1", "2", "3", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.got()
			if err != nil {
				t.Fatal(err)
			}
			sort.Strings(got)
			if len(got) != len(tt.want) {
				t.Fatalf("Expected %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Expected %v, got %v", tt.want, got)
				}
			}
		})
	}

	n, err := s.SInterStore(ctx, "dst", "a", "b")
	if err != nil || n != 2 {
		t.Errorf("SInterStore: n=%d err=%v", n, err)
	}
}

func TestSortedSetRanks(t *testing.T) {
	ctx := context.Background()
	s := New()

	s.ZAdd(ctx, "z",
		store.Z{Member: "low", Score: 1},
		store.Z{Member: "mid", Score: 5},
		store.Z{Member: "high", Score: 9},
	)

	if rank, ok, _ := s.ZRank(ctx, "z", "mid"); !ok || rank != 1 {
		t.Errorf("ZRank(mid): rank=%d ok=%v", rank, ok)
	}
	if rank, ok, _ := s.ZRevRank(ctx, "z", "mid"); !ok || rank != 1 {
		t.Errorf("ZRevRank(mid): rank=%d ok=%v", rank, ok)
	}
	if _, ok, _ := s.ZScore(ctx, "z", "ghost"); ok {
		t.Error("ZScore on a non-member should report absence")
	}

	members, err := s.ZRangeByScore(ctx, "z", 2, 9)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 2 || members[0] != "mid" || members[1] != "high" {
		t.Errorf("ZRangeByScore: got %v", members)
	}

	n, err := s.ZRemRangeByRank(ctx, "z", 0, 0)
	if err != nil || n != 1 {
		t.Fatalf("ZRemRangeByRank: n=%d err=%v", n, err)
	}
	if card, _ := s.ZCard(ctx, "z"); card != 2 {
		t.Errorf("Expected 2 members left, got %d", card)
	}
}

func TestListOps(t *testing.T) {
	ctx := context.Background()
	s := New()

	s.RPush(ctx, "l", "a", "b", "c", "b")

	if err := s.LSet(ctx, "l", 5, "x"); !errors.IsIndexError(err) {
		t.Errorf("LSet out of range should be an index error, got %v", err)
	}
	if n, _ := s.LLen(ctx, "l"); n != 4 {
		t.Errorf("List should be unchanged after failed LSet, len=%d", n)
	}

	if n, _ := s.LRem(ctx, "l", 0, "b"); n != 2 {
		t.Errorf("LRem all: removed %d", n)
	}

	vals, _ := s.LRange(ctx, "l", 0, -1)
	if len(vals) != 2 || vals[0] != "a" || vals[1] != "c" {
		t.Errorf("Unexpected list contents: %v", vals)
	}

	v, ok, _ := s.RPopLPush(ctx, "l", "dst")
	if !ok || v != "c" {
		t.Errorf("RPopLPush: v=%q ok=%v", v, ok)
	}
	if v, ok, _ := s.LIndex(ctx, "dst", 0); !ok || v != "c" {
		t.Errorf("Destination head: v=%q ok=%v", v, ok)
	}
}

func TestLRemTailScan(t *testing.T) {
	ctx := context.Background()
	s := New()

	s.RPush(ctx, "l", "x", "a", "x", "b", "x")

	if n, _ := s.LRem(ctx, "l", -1, "x"); n != 1 {
		t.Errorf("LRem(-1): removed %d", n)
	}
	vals, _ := s.LRange(ctx, "l", 0, -1)
	if len(vals) != 4 || vals[0] != "x" || vals[1] != "a" || vals[2] != "x" || vals[3] != "b" {
		t.Errorf("Tail scan must remove the last occurrence only: %v", vals)
	}

	if n, _ := s.LRem(ctx, "l", -2, "x"); n != 2 {
		t.Errorf("LRem(-2): removed %d", n)
	}
	vals, _ = s.LRange(ctx, "l", 0, -1)
	if len(vals) != 2 || vals[0] != "a" || vals[1] != "b" {
		t.Errorf("Survivors must keep their order: %v", vals)
	}

	// A value that never occurs must leave the list intact.
	s.RPush(ctx, "m", "a", "b", "c", "d")
	if n, _ := s.LRem(ctx, "m", -1, "ghost"); n != 0 {
		t.Errorf("LRem of an absent value: removed %d", n)
	}
	vals, _ = s.LRange(ctx, "m", 0, -1)
	if len(vals) != 4 || vals[0] != "a" || vals[3] != "d" {
		t.Errorf("List must be unchanged: %v", vals)
	}
}

func TestRPopLPushWrongTypeDestination(t *testing.T) {
	ctx := context.Background()
	s := New()

	s.RPush(ctx, "src", "a", "b")
	s.Set(ctx, "dst", "scalar")

	if _, _, err := s.RPopLPush(ctx, "src", "dst"); !errors.IsTypeMismatch(err) {
		t.Errorf("RPopLPush onto a string should be a type mismatch, got %v", err)
	}
	if n, _ := s.LLen(ctx, "src"); n != 2 {
		t.Errorf("Source must be untouched on the error path, len=%d", n)
	}
	if v, _, _ := s.Get(ctx, "dst"); v != "scalar" {
		t.Errorf("Destination must be untouched, got %q", v)
	}
}

func TestEmptyCollectionsDisappear(t *testing.T) {
	ctx := context.Background()
	s := New()

	s.SAdd(ctx, "s", "only")
	s.SRem(ctx, "s", "only")
	if exists, _ := s.Exists(ctx, "s"); exists {
		t.Error("Emptied set should be deleted")
	}

	s.RPush(ctx, "l", "only")
	s.LPop(ctx, "l")
	if exists, _ := s.Exists(ctx, "l"); exists {
		t.Error("Emptied list should be deleted")
	}
}

func TestBlockingPop(t *testing.T) {
	ctx := context.Background()
	s := New()

	// Timed out pop on an empty key.
	start := time.Now()
	_, _, ok, err := s.BLPop(ctx, 20*time.Millisecond, "q")
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("BLPop on empty key should time out")
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Error("BLPop returned before the timeout elapsed")
	}

	// A push from another goroutine unblocks an indefinite wait.
	go func() {
		time.Sleep(10 * time.Millisecond)
		s.RPush(ctx, "q", "job")
	}()
	key, v, ok, err := s.BLPop(ctx, 0, "q")
	if err != nil || !ok {
		t.Fatalf("BLPop: ok=%v err=%v", ok, err)
	}
	if key != "q" || v != "job" {
		t.Errorf("BLPop returned key=%q v=%q", key, v)
	}
}

func TestPipelineOrderAndResults(t *testing.T) {
	ctx := context.Background()
	s := New()

	s.SAdd(ctx, "a", "1", "2")
	s.SAdd(ctx, "b", "2", "3")

	p := s.Pipeline()
	p.SInterStore("tmp:inter", "a", "b")
	p.SUnionStore("tmp:union", "a", "b")
	p.SDiff("tmp:union", "tmp:inter")
	p.Del("tmp:inter", "tmp:union")

	results, err := p.Exec(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 4 {
		t.Fatalf("Expected 4 results, got %d", len(results))
	}
	diff := results[2].Strings
	sort.Strings(diff)
	if len(diff) != 2 || diff[0] != "1" || diff[1] != "3" {
		t.Errorf("Pipelined SDIFF returned %v", diff)
	}
	if exists, _ := s.Exists(ctx, "tmp:inter"); exists {
		t.Error("Scratch key should have been deleted in the batch")
	}
}
