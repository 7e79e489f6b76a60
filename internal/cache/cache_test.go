package cache

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"
)

func TestLocalCache_RoundTrip(t *testing.T) {
	c := NewLocalCache(t.TempDir(), time.Hour)
	ctx := context.Background()

	value := []byte(`{"name":"pikachu","types":["electric"]}`)
	if err := c.Set(ctx, "pikachu", value); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := c.Get(ctx, "pikachu")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != string(value) {
		t.Errorf("Get() = %s, want %s", got, value)
	}
}

func TestLocalCache_MissOnAbsentKey(t *testing.T) {
	c := NewLocalCache(t.TempDir(), time.Hour)

	got, err := c.Get(context.Background(), "mewtwo")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %s, want nil miss", got)
	}
}

func TestLocalCache_ExpiredEntryReadsAsMiss(t *testing.T) {
	c := NewLocalCache(t.TempDir(), time.Minute)
	ctx := context.Background()

	// Plant an entry that aged past the TTL.
	stale, err := json.Marshal(entry{
		SavedAt: time.Now().Add(-2 * time.Minute),
		Value:   json.RawMessage(`{"name":"ditto"}`),
	})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		t.Fatalf("MkdirAll() error = %v", err)
	}
	if err := os.WriteFile(c.path("ditto"), stale, 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	got, err := c.Get(ctx, "ditto")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %s, want nil for an expired entry", got)
	}
}

func TestLocalCache_KeysNeedNoEscaping(t *testing.T) {
	c := NewLocalCache(t.TempDir(), time.Hour)
	ctx := context.Background()

	// Lookup keys are hashed into file names, so hostile strings are fine.
	keys := []string{"mr. mime", "nidoran♀", "../../../etc", "a/b/c"}
	for _, key := range keys {
		if err := c.Set(ctx, key, []byte(`{}`)); err != nil {
			t.Errorf("Set(%q) error = %v", key, err)
		}
		got, err := c.Get(ctx, key)
		if err != nil {
			t.Errorf("Get(%q) error = %v", key, err)
		}
		if got == nil {
			t.Errorf("Get(%q) missed after Set", key)
		}
	}
}

func TestNew(t *testing.T) {
	t.Run("none returns nil cache", func(t *testing.T) {
		c, err := New(Config{Type: TypeNone})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if c != nil {
			t.Error("New() should return a nil cache for type none")
		}
	})

	t.Run("empty type is none", func(t *testing.T) {
		c, err := New(Config{})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if c != nil {
			t.Error("New() should return a nil cache by default")
		}
	})

	t.Run("local", func(t *testing.T) {
		c, err := New(Config{Type: TypeLocal, Dir: t.TempDir()})
		if err != nil {
			t.Fatalf("New() error = %v", err)
		}
		if _, ok := c.(*LocalCache); !ok {
			t.Errorf("New() = %T, want *LocalCache", c)
		}
	})

	t.Run("unknown type", func(t *testing.T) {
		if _, err := New(Config{Type: "memcached"}); err == nil {
			t.Error("New() should reject unknown cache types")
		}
	})
}

func TestNewRedisCache_InvalidURL(t *testing.T) {
	if _, err := NewRedisCache(RedisConfig{URL: "not a url"}); err == nil {
		t.Error("NewRedisCache() should reject an unparseable URL")
	}
}
