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

func TestHashGetSetDelete(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	h, err := datatypes.NewHash(ctx, conn, "user:1", map[string]string{"name": "ada"})
	if err != nil {
		t.Fatal(err)
	}

	v, err := h.Get(ctx, "name")
	if err != nil || v != "ada" {
		t.Fatalf("Get: v=%q err=%v", v, err)
	}

	if _, err := h.Get(ctx, "ghost"); !errors.IsKeyError(err) {
		t.Errorf("Get of a missing field should be a key error, got %v", err)
	}
	if _, ok, err := h.Lookup(ctx, "ghost"); ok || err != nil {
		t.Errorf("Lookup of a missing field: ok=%v err=%v", ok, err)
	}

	created, err := h.Set(ctx, "email", "ada@example.com")
	if err != nil || !created {
		t.Errorf("Set of a new field: created=%v err=%v", created, err)
	}
	if created, _ := h.Set(ctx, "email", "other"); created {
		t.Error("Overwriting a field should report created=false")
	}

	if err := h.Delete(ctx, "email"); err != nil {
		t.Fatal(err)
	}
	if err := h.Delete(ctx, "email"); !errors.IsKeyError(err) {
		t.Errorf("Delete of a missing field should be a key error, got %v", err)
	}
}

func TestHashBulkAccessors(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	h, _ := datatypes.NewHash(ctx, conn, "h", map[string]string{
		"a": "1", "b": "2", "c": "3",
	})

	if n, _ := h.Len(ctx); n != 3 {
		t.Errorf("Len: got %d", n)
	}
	if ok, _ := h.Contains(ctx, "b"); !ok {
		t.Error("Contains(b) should be true")
	}

	fields, _ := h.Fields(ctx)
	values, _ := h.Values(ctx)
	items, _ := h.Items(ctx)
	if len(fields) != 3 || len(values) != 3 || len(items) != 3 {
		t.Errorf("Bulk accessors disagree: fields=%v values=%v items=%v", fields, values, items)
	}
	if items["b"] != "2" {
		t.Errorf("Items[b] = %q", items["b"])
	}
}

func TestHashSetDefault(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	h, _ := datatypes.NewHash(ctx, conn, "h", map[string]string{"present": "kept"})

	if v, _ := h.SetDefault(ctx, "present", "ignored"); v != "kept" {
		t.Errorf("SetDefault on a present field: got %q", v)
	}
	if v, _ := h.SetDefault(ctx, "absent", "written"); v != "written" {
		t.Errorf("SetDefault on an absent field: got %q", v)
	}
	if v, _ := h.Get(ctx, "absent"); v != "written" {
		t.Errorf("SetDefault should persist the default, got %q", v)
	}
}

func TestHashUpdate(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	h, _ := datatypes.NewHash(ctx, conn, "h", nil)

	if err := h.Update(ctx, map[string]string{"a": "1", "b": "2"}); err != nil {
		t.Fatal(err)
	}
	if err := h.UpdatePairs(ctx,
		datatypes.Pair{Field: "b", Value: "override"},
		datatypes.Pair{Field: "c", Value: "3"},
	); err != nil {
		t.Fatal(err)
	}

	items, _ := h.Items(ctx)
	if len(items) != 3 || items["b"] != "override" {
		t.Errorf("After updates: %v", items)
	}
}

func TestHashIncrBy(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	h, _ := datatypes.NewHash(ctx, conn, "stats", nil)

	if n, err := h.IncrBy(ctx, "hits", 2); err != nil || n != 2 {
		t.Errorf("IncrBy: n=%d err=%v", n, err)
	}
	if n, err := h.IncrBy(ctx, "hits", 3); err != nil || n != 5 {
		t.Errorf("IncrBy: n=%d err=%v", n, err)
	}

	h.Set(ctx, "name", "text")
	if _, err := h.IncrBy(ctx, "name", 1); !errors.IsTypeMismatch(err) {
		t.Errorf("IncrBy on a text field should be a type mismatch, got %v", err)
	}
}

func TestHashCopy(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	h, err := datatypes.NewHash(ctx, conn, "src", map[string]string{"a": "1", "b": "2"})
	if err != nil {
		t.Fatal(err)
	}

	dup, err := h.Copy(ctx, "dst")
	if err != nil {
		t.Fatal(err)
	}
	if dup.Key() != "dst" {
		t.Errorf("copy key: %q", dup.Key())
	}
	items, _ := dup.Items(ctx)
	if len(items) != 2 || items["a"] != "1" || items["b"] != "2" {
		t.Errorf("copy contents: %v", items)
	}

	// The copy is independent of the source.
	if _, err := dup.Set(ctx, "c", "3"); err != nil {
		t.Fatal(err)
	}
	if ok, _ := h.Contains(ctx, "c"); ok {
		t.Error("source should not see writes to the copy")
	}
}

func TestHashFromFields(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	h, _ := datatypes.NewHash(ctx, conn, "src", nil)
	dst, err := h.FromFields(ctx, "dst", []string{"a", "b"}, "empty")
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := dst.Get(ctx, "a"); v != "empty" {
		t.Errorf("FromFields fill: got %q", v)
	}
	if n, _ := dst.Len(ctx); n != 2 {
		t.Errorf("FromFields: len=%d", n)
	}
}
