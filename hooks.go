/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package redisnatives

import (
	"context"
	"fmt"
	"time"

	"github.com/suparena/redisnatives/datatypes"
	"github.com/suparena/redisnatives/errors"
)

// Namespaced returns a before-create hook that prefixes every proposed
// key with prefix and sep.
func Namespaced(prefix, sep string) BeforeCreate {
	return func(key string) string {
		return prefix + sep + key
	}
}

// AutoNamed returns a before-create hook that appends the fmt rendering
// of v to every proposed key, for deriving key suffixes from context
// values.
func AutoNamed(v any) BeforeCreate {
	return func(key string) string {
		return key + fmt.Sprint(v)
	}
}

// Temporary returns an after-create hook that schedules each freshly
// created entity to expire after the given duration.
func Temporary(after time.Duration) AfterCreate {
	return func(ctx context.Context, e datatypes.Entity) (datatypes.Entity, error) {
		if err := e.Expire(ctx, after); err != nil {
			return nil, err
		}
		return e, nil
	}
}

// TemporaryAt returns an after-create hook that schedules each freshly
// created entity to expire at the given instant.
func TemporaryAt(at time.Time) AfterCreate {
	return func(ctx context.Context, e datatypes.Entity) (datatypes.Entity, error) {
		if err := e.ExpireAt(ctx, at); err != nil {
			return nil, err
		}
		return e, nil
	}
}

// Indexed returns an after-create hook that records each freshly created
// entity's key as a member of index. A nil index fails on first use with
// a validation error rather than silently skipping the bookkeeping.
func Indexed(index *datatypes.Set) AfterCreate {
	return func(ctx context.Context, e datatypes.Entity) (datatypes.Entity, error) {
		if index == nil {
			return nil, errors.NewInvalidConfigError("index", "Indexed hook requires a non-nil set")
		}
		if _, err := index.Add(ctx, e.Key()); err != nil {
			return nil, err
		}
		return e, nil
	}
}

// Incremental returns an after-create hook that increments counter once
// per creation. A nil counter fails on first use with a validation error
// rather than silently skipping the count.
func Incremental(counter *datatypes.Primitive) AfterCreate {
	return func(ctx context.Context, e datatypes.Entity) (datatypes.Entity, error) {
		if counter == nil {
			return nil, errors.NewInvalidConfigError("counter", "Incremental hook requires a non-nil primitive")
		}
		if _, err := counter.Incr(ctx, 1); err != nil {
			return nil, err
		}
		return e, nil
	}
}
