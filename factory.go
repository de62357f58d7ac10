/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package redisnatives

import (
	"context"

	"github.com/suparena/redisnatives/datatypes"
	"github.com/suparena/redisnatives/errors"
	"github.com/suparena/redisnatives/store"
)

// BeforeCreate rewrites a proposed key before an entity is created under it.
type BeforeCreate func(key string) string

// AfterCreate runs against a freshly created entity. It returns the entity
// to hand to the next hook, which lets a hook wrap or replace it; most
// hooks act on the remote key and return the entity unchanged.
type AfterCreate func(ctx context.Context, e datatypes.Entity) (datatypes.Entity, error)

// Config carries the ordered hook lists for a Factory. Both lists are
// copied at construction time, so mutating a Config after New has no
// effect on factories already built from it.
type Config struct {
	Before []BeforeCreate
	After  []AfterCreate
}

// Factory mints datatype facades over one connection, pushing every
// creation through its hook pipeline: before-create hooks transform the
// proposed key in registration order, the facade is constructed under the
// final key, then after-create hooks run in registration order.
type Factory struct {
	conn   store.Conn
	before []BeforeCreate
	after  []AfterCreate
}

// New builds a Factory over conn with cfg's hook lists.
func New(conn store.Conn, cfg Config) (*Factory, error) {
	if conn == nil {
		return nil, errors.NewInvalidConfigError("conn", "factory requires a connection")
	}
	f := &Factory{
		conn:   conn,
		before: make([]BeforeCreate, len(cfg.Before)),
		after:  make([]AfterCreate, len(cfg.After)),
	}
	copy(f.before, cfg.Before)
	copy(f.after, cfg.After)
	return f, nil
}

// resolveKey runs the before-create chain over key and rejects an empty
// result, since every facade needs a remote key to bind to.
func (f *Factory) resolveKey(key string) (string, error) {
	for _, hook := range f.before {
		key = hook(key)
	}
	if key == "" {
		return "", errors.NewInvalidConfigError("key", "before-create hooks produced an empty key")
	}
	return key, nil
}

// runAfter pushes e through the after-create chain and returns the final
// entity.
func (f *Factory) runAfter(ctx context.Context, e datatypes.Entity) (datatypes.Entity, error) {
	var err error
	for _, hook := range f.after {
		if e, err = hook(ctx, e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// Primitive mints a Primitive facade through the hook pipeline.
func (f *Factory) Primitive(ctx context.Context, key string) (*datatypes.Primitive, error) {
	key, err := f.resolveKey(key)
	if err != nil {
		return nil, err
	}
	p, err := datatypes.NewPrimitive(f.conn, key)
	if err != nil {
		return nil, err
	}
	return finish(ctx, f,p)
}

// PrimitiveValue mints a Primitive facade and writes value under the
// resolved key before the after-create hooks run.
func (f *Factory) PrimitiveValue(ctx context.Context, key, value string) (*datatypes.Primitive, error) {
	key, err := f.resolveKey(key)
	if err != nil {
		return nil, err
	}
	p, err := datatypes.NewPrimitiveValue(ctx, f.conn, key, value)
	if err != nil {
		return nil, err
	}
	return finish(ctx, f,p)
}

// Set mints a Set facade through the hook pipeline, seeding any initial
// members.
func (f *Factory) Set(ctx context.Context, key string, initial ...string) (*datatypes.Set, error) {
	key, err := f.resolveKey(key)
	if err != nil {
		return nil, err
	}
	s, err := datatypes.NewSet(ctx, f.conn, key, initial...)
	if err != nil {
		return nil, err
	}
	return finish(ctx, f,s)
}

// OrderedSet mints an OrderedSet facade through the hook pipeline.
func (f *Factory) OrderedSet(ctx context.Context, key string, initial ...datatypes.Member) (*datatypes.OrderedSet, error) {
	key, err := f.resolveKey(key)
	if err != nil {
		return nil, err
	}
	z, err := datatypes.NewOrderedSet(ctx, f.conn, key, initial...)
	if err != nil {
		return nil, err
	}
	return finish(ctx, f,z)
}

// Hash mints a Hash facade through the hook pipeline.
func (f *Factory) Hash(ctx context.Context, key string, initial map[string]string) (*datatypes.Hash, error) {
	key, err := f.resolveKey(key)
	if err != nil {
		return nil, err
	}
	h, err := datatypes.NewHash(ctx, f.conn, key, initial)
	if err != nil {
		return nil, err
	}
	return finish(ctx, f,h)
}

// List mints a List facade through the hook pipeline.
func (f *Factory) List(ctx context.Context, key string, initial ...string) (*datatypes.List, error) {
	key, err := f.resolveKey(key)
	if err != nil {
		return nil, err
	}
	l, err := datatypes.NewList(ctx, f.conn, key, initial...)
	if err != nil {
		return nil, err
	}
	return finish(ctx, f,l)
}

// Sequence mints a Sequence facade through the hook pipeline.
func (f *Factory) Sequence(ctx context.Context, key string, reset bool) (*datatypes.Sequence, error) {
	key, err := f.resolveKey(key)
	if err != nil {
		return nil, err
	}
	q, err := datatypes.NewSequence(ctx, f.conn, key, reset)
	if err != nil {
		return nil, err
	}
	return finish(ctx, f,q)
}

// finish runs the after-create chain and asserts the pipeline handed back
// the same concrete facade type it was given. A hook that swaps the
// entity for a different type is a configuration fault, not a silent
// downgrade to the Entity interface.
func finish[T datatypes.Entity](ctx context.Context, f *Factory, e T) (T, error) {
	var zero T
	out, err := f.runAfter(ctx, e)
	if err != nil {
		return zero, err
	}
	typed, ok := out.(T)
	if !ok {
		return zero, errors.NewInvalidConfigError("after", "after-create hook changed the entity's type")
	}
	return typed, nil
}
