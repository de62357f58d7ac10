/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-openapi/strfmt"
	"gopkg.in/yaml.v3"

	"github.com/suparena/redisnatives"
	"github.com/suparena/redisnatives/datatypes"
	"github.com/suparena/redisnatives/errors"
	"github.com/suparena/redisnatives/store"
)

// Policy is one declarative factory configuration. Hook order is fixed:
// namespacing first, then expiry, indexing and counting.
type Policy struct {
	// Namespace is prefixed to every key minted under this policy.
	Namespace string `yaml:"namespace,omitempty"`

	// Separator joins the namespace and the key; defaults to ":".
	Separator string `yaml:"separator,omitempty"`

	// ExpireAfter is a relative expiry in Go duration syntax ("30m").
	ExpireAfter string `yaml:"expire_after,omitempty"`

	// ExpireAt is an absolute RFC 3339 expiry instant. Mutually
	// exclusive with ExpireAfter.
	ExpireAt string `yaml:"expire_at,omitempty"`

	// IndexKey names a set that records every key minted under this
	// policy.
	IndexKey string `yaml:"index_key,omitempty"`

	// CounterKey names a primitive incremented once per creation.
	CounterKey string `yaml:"counter_key,omitempty"`
}

// File is a whole policy file: named policies under one "factories" map.
type File struct {
	Factories map[string]Policy `yaml:"factories"`
}

// Parse decodes a policy file from raw YAML.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing policy file: %w", err)
	}
	return &f, nil
}

// Load reads and decodes the policy file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}
	return Parse(data)
}

// Factory builds a configured Factory over conn from the policy. The
// index set and counter primitive are bound eagerly so a bad policy
// fails here, not on first creation.
func (p Policy) Factory(ctx context.Context, conn store.Conn) (*redisnatives.Factory, error) {
	if p.ExpireAfter != "" && p.ExpireAt != "" {
		return nil, errors.NewInvalidConfigError("expire_at", "expire_after and expire_at are mutually exclusive")
	}

	var cfg redisnatives.Config

	if p.Namespace != "" {
		sep := p.Separator
		if sep == "" {
			sep = ":"
		}
		cfg.Before = append(cfg.Before, redisnatives.Namespaced(p.Namespace, sep))
	}

	if p.ExpireAfter != "" {
		after, err := time.ParseDuration(p.ExpireAfter)
		if err != nil {
			return nil, errors.NewInvalidConfigError("expire_after", err.Error())
		}
		cfg.After = append(cfg.After, redisnatives.Temporary(after))
	}
	if p.ExpireAt != "" {
		at, err := strfmt.ParseDateTime(p.ExpireAt)
		if err != nil {
			return nil, errors.NewInvalidConfigError("expire_at", err.Error())
		}
		cfg.After = append(cfg.After, redisnatives.TemporaryAt(time.Time(at)))
	}

	if p.IndexKey != "" {
		idx, err := datatypes.NewSet(ctx, conn, p.IndexKey)
		if err != nil {
			return nil, err
		}
		cfg.After = append(cfg.After, redisnatives.Indexed(idx))
	}
	if p.CounterKey != "" {
		counter, err := datatypes.NewPrimitive(conn, p.CounterKey)
		if err != nil {
			return nil, err
		}
		cfg.After = append(cfg.After, redisnatives.Incremental(counter))
	}

	return redisnatives.New(conn, cfg)
}

// Registry builds a Factory per named policy and registers each under
// its name.
func (f *File) Registry(ctx context.Context, conn store.Conn) (*redisnatives.Registry, error) {
	reg := redisnatives.NewRegistry()
	for name, policy := range f.Factories {
		factory, err := policy.Factory(ctx, conn)
		if err != nil {
			return nil, fmt.Errorf("building factory %q: %w", name, err)
		}
		if err := reg.Register(name, factory); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
