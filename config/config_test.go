/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/suparena/redisnatives/config"
	"github.com/suparena/redisnatives/errors"
	"github.com/suparena/redisnatives/store/memory"
)

const policyYAML = `
factories:
  sessions:
    namespace: app:sessions
    expire_after: 30m
    index_key: app:sessions:all
  jobs:
    namespace: app:jobs
    separator: "/"
    counter_key: app:jobs:created
`

func TestParse(t *testing.T) {
	f, err := config.Parse([]byte(policyYAML))
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Factories) != 2 {
		t.Fatalf("factories: %d", len(f.Factories))
	}

	sessions := f.Factories["sessions"]
	if sessions.Namespace != "app:sessions" || sessions.ExpireAfter != "30m" {
		t.Errorf("sessions policy: %+v", sessions)
	}
	if jobs := f.Factories["jobs"]; jobs.Separator != "/" || jobs.CounterKey != "app:jobs:created" {
		t.Errorf("jobs policy: %+v", jobs)
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policies.yaml")
	if err := os.WriteFile(path, []byte(policyYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Factories) != 2 {
		t.Errorf("factories: %d", len(f.Factories))
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("loading a missing file should fail")
	}
}

func TestPolicyFactory(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	p := config.Policy{
		Namespace:   "app",
		ExpireAfter: "1h",
		IndexKey:    "app:all",
	}
	f, err := p.Factory(ctx, conn)
	if err != nil {
		t.Fatal(err)
	}

	h, err := f.Hash(ctx, "h1", map[string]string{"f": "v"})
	if err != nil {
		t.Fatal(err)
	}
	if h.Key() != "app:h1" {
		t.Errorf("namespaced key: %q", h.Key())
	}
	if ttl, _ := h.TTL(ctx); ttl <= 0 || ttl > time.Hour {
		t.Errorf("TTL: %v", ttl)
	}
	if ok, _ := conn.SIsMember(ctx, "app:all", "app:h1"); !ok {
		t.Error("created key should be indexed")
	}
}

func TestPolicyFactoryExpireAt(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	at := time.Now().Add(time.Hour).UTC().Format(time.RFC3339)
	f, err := config.Policy{ExpireAt: at}.Factory(ctx, conn)
	if err != nil {
		t.Fatal(err)
	}

	s, err := f.Set(ctx, "s", "m")
	if err != nil {
		t.Fatal(err)
	}
	if ttl, _ := s.TTL(ctx); ttl <= 0 || ttl > time.Hour {
		t.Errorf("TTL: %v", ttl)
	}
}

func TestPolicyValidation(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	if _, err := (config.Policy{ExpireAfter: "10m", ExpireAt: "2026-01-01T00:00:00Z"}).Factory(ctx, conn); !errors.IsInvalidConfig(err) {
		t.Errorf("both expiries should be rejected, got %v", err)
	}
	if _, err := (config.Policy{ExpireAfter: "soon"}).Factory(ctx, conn); !errors.IsInvalidConfig(err) {
		t.Errorf("a bad duration should be rejected, got %v", err)
	}
	if _, err := (config.Policy{ExpireAt: "tomorrow"}).Factory(ctx, conn); !errors.IsInvalidConfig(err) {
		t.Errorf("a bad timestamp should be rejected, got %v", err)
	}
}

func TestFileRegistry(t *testing.T) {
	ctx := context.Background()
	conn := memory.New()

	f, err := config.Parse([]byte(policyYAML))
	if err != nil {
		t.Fatal(err)
	}
	reg, err := f.Registry(ctx, conn)
	if err != nil {
		t.Fatal(err)
	}

	jobs, err := reg.Get("jobs")
	if err != nil {
		t.Fatal(err)
	}
	q, err := jobs.Sequence(ctx, "q1", false)
	if err != nil {
		t.Fatal(err)
	}
	if q.Key() != "app:jobs/q1" {
		t.Errorf("jobs key: %q", q.Key())
	}
	if v, _, _ := conn.Get(ctx, "app:jobs:created"); v != "1" {
		t.Errorf("creation counter: %q", v)
	}
}
