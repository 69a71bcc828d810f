package kvstore

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"classroom-server/services/session-api/internal/domain/session"
)

func TestMemory_SetGet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Set(ctx, "k1", "v1", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := m.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "v1" {
		t.Errorf("Get() = %q, want %q", got, "v1")
	}
}

func TestMemory_Get_Missing(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "absent")
	if !errors.Is(err, session.ErrKeyNotFound) {
		t.Errorf("Get() error = %v, want ErrKeyNotFound", err)
	}
}

func TestMemory_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	current := time.Unix(1000, 0)
	m.now = func() time.Time { return current }

	if err := m.Set(ctx, "k1", "v1", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if _, err := m.Get(ctx, "k1"); err != nil {
		t.Fatalf("Get() before expiry error = %v", err)
	}

	current = current.Add(2 * time.Minute)
	if _, err := m.Get(ctx, "k1"); !errors.Is(err, session.ErrKeyNotFound) {
		t.Errorf("Get() after expiry error = %v, want ErrKeyNotFound", err)
	}
}

func TestMemory_Del(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if err := m.Set(ctx, "k1", "v1", 0); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := m.Del(ctx, "k1", "never-existed"); err != nil {
		t.Fatalf("Del() error = %v", err)
	}
	if _, err := m.Get(ctx, "k1"); !errors.Is(err, session.ErrKeyNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrKeyNotFound", err)
	}
}

func TestMemory_Scan(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	current := time.Unix(1000, 0)
	m.now = func() time.Time { return current }

	seed := map[string]time.Duration{
		"s:a:ea":  0,
		"s:b:ea":  time.Minute,
		"s:c:nru": 0,
		"u:1:uid": 0,
	}
	for key, ttl := range seed {
		if err := m.Set(ctx, key, "x", ttl); err != nil {
			t.Fatalf("Set(%q) error = %v", key, err)
		}
	}

	keys, err := m.Scan(ctx, "s:*:ea")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	sort.Strings(keys)
	want := []string{"s:a:ea", "s:b:ea"}
	if len(keys) != len(want) {
		t.Fatalf("Scan() = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("Scan() = %v, want %v", keys, want)
		}
	}

	// Lapsed keys drop out of scans.
	current = current.Add(2 * time.Minute)
	keys, err = m.Scan(ctx, "s:*:ea")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(keys) != 1 || keys[0] != "s:a:ea" {
		t.Errorf("Scan() after expiry = %v, want [s:a:ea]", keys)
	}
}
