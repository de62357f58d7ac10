/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datatypes_test

import (
	"context"
	"testing"

	"github.com/suparena/redisnatives/datatypes"
	"github.com/suparena/redisnatives/errors"
	"github.com/suparena/redisnatives/store/memory"
)

func TestListAppendAndGet(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	l, err := datatypes.NewList(ctx, conn, "l", "a", "b")
	if err != nil {
		t.Fatal(err)
	}

	if n, _ := l.Append(ctx, "c"); n != 3 {
		t.Errorf("Append: new length %d", n)
	}
	if n, _ := l.Extend(ctx, "d", "e"); n != 5 {
		t.Errorf("Extend: new length %d", n)
	}

	if v, ok, _ := l.Get(ctx, 0); !ok || v != "a" {
		t.Errorf("Get(0): v=%q ok=%v", v, ok)
	}
	if v, ok, _ := l.Get(ctx, -1); !ok || v != "e" {
		t.Errorf("Get(-1): v=%q ok=%v", v, ok)
	}
	if _, ok, _ := l.Get(ctx, 99); ok {
		t.Error("Get out of range should report absence")
	}
}

func TestListSetOutOfRange(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	l, _ := datatypes.NewList(ctx, conn, "l", "a", "b", "c")

	if err := l.Set(ctx, 5, "x"); !errors.IsIndexError(err) {
		t.Errorf("Set(5) on a 3-element list should be an index error, got %v", err)
	}
	if n, _ := l.Len(ctx); n != 3 {
		t.Errorf("List must be unchanged after a failed Set, len=%d", n)
	}

	if err := l.Set(ctx, 1, "B"); err != nil {
		t.Fatal(err)
	}
	if v, _, _ := l.Get(ctx, 1); v != "B" {
		t.Errorf("Set(1): got %q", v)
	}
}

func TestListSearchOperations(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	l, _ := datatypes.NewList(ctx, conn, "l", "a", "b", "a", "c")

	if ok, _ := l.Contains(ctx, "b"); !ok {
		t.Error("Contains(b) should be true")
	}
	if n, _ := l.Count(ctx, "a"); n != 2 {
		t.Errorf("Count(a): got %d", n)
	}
	if i, err := l.Index(ctx, "b"); err != nil || i != 1 {
		t.Errorf("Index(b): i=%d err=%v", i, err)
	}
	if _, err := l.Index(ctx, "ghost"); !errors.IsValueError(err) {
		t.Errorf("Index of an absent value should be a value error, got %v", err)
	}
}

func TestListRemove(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	l, _ := datatypes.NewList(ctx, conn, "l", "x", "y", "x", "x")

	n, err := l.Remove(ctx, "x", 2, false)
	if err != nil || n != 2 {
		t.Fatalf("Remove(count=2): n=%d err=%v", n, err)
	}
	values, _ := l.Values(ctx)
	if len(values) != 2 || values[0] != "y" || values[1] != "x" {
		t.Errorf("After Remove: %v", values)
	}

	if n, err := l.Remove(ctx, "x", 1, true); err != nil || n != 1 {
		t.Errorf("Remove(all): n=%d err=%v", n, err)
	}

	if _, err := l.Remove(ctx, "ghost", 1, false); !errors.IsValueError(err) {
		t.Errorf("Remove of an absent value should be a value error, got %v", err)
	}
}

func TestListRemoveFromTail(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	l, _ := datatypes.NewList(ctx, conn, "l", "x", "a", "x", "b")

	if n, err := l.Remove(ctx, "x", -1, false); err != nil || n != 1 {
		t.Fatalf("Remove(count=-1): n=%d err=%v", n, err)
	}
	values, _ := l.Values(ctx)
	if len(values) != 3 || values[0] != "x" || values[1] != "a" || values[2] != "b" {
		t.Errorf("A negative count must remove from the tail: %v", values)
	}
}

func TestListReverseUnimplemented(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	l, _ := datatypes.NewList(ctx, conn, "l", "a")

	if err := l.Reverse(ctx); !errors.IsNotImplemented(err) {
		t.Errorf("Reverse should be not-implemented, got %v", err)
	}
}
