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

func TestPrimitiveRoundTrip(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	p, err := datatypes.NewPrimitive(conn, "greeting")
	if err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := p.Value(ctx); ok {
		t.Error("Unwritten primitive should read as absent")
	}

	if err := p.SetValue(ctx, "hello"); err != nil {
		t.Fatal(err)
	}
	v, ok, err := p.Value(ctx)
	if err != nil || !ok {
		t.Fatalf("Value: ok=%v err=%v", ok, err)
	}
	if v != "hello" {
		t.Errorf("Expected %q, got %q", "hello", v)
	}

	if err := p.Delete(ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := p.Value(ctx); ok {
		t.Error("Deleted primitive should read as absent")
	}
}

func TestPrimitiveIncrDecr(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	p, _ := datatypes.NewPrimitiveValue(ctx, conn, "counter", "10")

	if v, err := p.Incr(ctx, 5); err != nil || v != 15 {
		t.Errorf("Incr: v=%d err=%v", v, err)
	}
	if v, err := p.Decr(ctx, 3); err != nil || v != 12 {
		t.Errorf("Decr: v=%d err=%v", v, err)
	}
}

func TestPrimitiveIncrTypeMismatch(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	p, _ := datatypes.NewPrimitiveValue(ctx, conn, "k", "not a number")

	if _, err := p.Incr(ctx, 1); !errors.IsTypeMismatch(err) {
		t.Errorf("Incr on a string should be a type mismatch, got %v", err)
	}
	if _, err := p.Decr(ctx, 1); !errors.IsTypeMismatch(err) {
		t.Errorf("Decr on a string should be a type mismatch, got %v", err)
	}
}

func TestPrimitiveStringHelpers(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	p, _ := datatypes.NewPrimitiveValue(ctx, conn, "k", "abc")

	if n, _ := p.Len(ctx); n != 3 {
		t.Errorf("Len: got %d", n)
	}
	if ok, _ := p.Contains(ctx, "bc"); !ok {
		t.Error("Contains(bc) should be true")
	}
	if ok, _ := p.Contains(ctx, "xyz"); ok {
		t.Error("Contains(xyz) should be false")
	}
	if ok, _ := p.Equals(ctx, "abc"); !ok {
		t.Error("Equals(abc) should be true")
	}
	if v, _ := p.Concat(ctx, "def"); v != "abcdef" {
		t.Errorf("Concat: got %q", v)
	}
	if v, _ := p.Repeat(ctx, 2); v != "abcabc" {
		t.Errorf("Repeat: got %q", v)
	}
	if v, _ := p.Slice(ctx, 1, 2); v != "bc" {
		t.Errorf("Slice: got %q", v)
	}

	// Concat reads, it must not write back.
	if v, _, _ := p.Value(ctx); v != "abc" {
		t.Errorf("Value changed after Concat: %q", v)
	}
}

func TestPrimitiveAppend(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	p, _ := datatypes.NewPrimitiveValue(ctx, conn, "k", "ab")

	n, err := p.Append(ctx, "cd")
	if err != nil || n != 4 {
		t.Fatalf("Append: n=%d err=%v", n, err)
	}
	if v, _, _ := p.Value(ctx); v != "abcd" {
		t.Errorf("Expected %q, got %q", "abcd", v)
	}
}
