package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Errorf("Get() = %v, %v, want miss", data, hit)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}
	if _, hit, _ = c.Get(ctx, "key"); hit {
		t.Error("NullCache should not store data")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "nested"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "peel:abc"); hit {
		t.Fatal("empty cache reported a hit")
	}
	if err := c.Set(ctx, "peel:abc", []byte(`{"layers":[]}`), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "peel:abc")
	if err != nil || !hit {
		t.Fatalf("Get() hit = %v, err = %v, want hit", hit, err)
	}
	if string(data) != `{"layers":[]}` {
		t.Errorf("Get() = %s, want stored bytes", data)
	}

	if err := c.Delete(ctx, "peel:abc"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "peel:abc"); hit {
		t.Error("entry survived Delete")
	}
	if err := c.Delete(ctx, "peel:abc"); err != nil {
		t.Errorf("Delete of missing key = %v, want nil", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry not removed from disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("Get(corrupt) = hit %v, err %v, want clean miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("entry survived Clear")
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	if h1 != Hash([]byte("hello")) {
		t.Error("Hash should be deterministic")
	}
	if h1 == Hash([]byte("world")) {
		t.Error("Different inputs should produce different hashes")
	}
	if len(h1) != 64 {
		t.Errorf("Hash length = %d, want 64", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	pk1 := k.PeelKey("set", PeelKeyOpts{Diameters: []float64{60}})
	pk2 := k.PeelKey("set", PeelKeyOpts{Diameters: []float64{60, 40}})
	pk3 := k.PeelKey("set", PeelKeyOpts{Diameters: []float64{60}, Hull: true})
	if pk1 == pk2 || pk1 == pk3 {
		t.Error("Different PeelKeyOpts should produce different keys")
	}
	if pk1 != k.PeelKey("set", PeelKeyOpts{Diameters: []float64{60}}) {
		t.Error("PeelKey should be deterministic")
	}
	if !strings.HasPrefix(pk1, "peel:") {
		t.Errorf("PeelKey = %s, want peel: prefix", pk1)
	}

	ak1 := k.ArtifactKey("layers", ArtifactKeyOpts{Format: "svg"})
	ak2 := k.ArtifactKey("layers", ArtifactKeyOpts{Format: "png"})
	if ak1 == ak2 {
		t.Error("Different ArtifactKeyOpts should produce different keys")
	}
}

func TestScopedKeyer(t *testing.T) {
	scoped := NewScopedKeyer(NewDefaultKeyer(), "onion:")
	want := "onion:" + NewDefaultKeyer().PeelKey("h", PeelKeyOpts{})
	if got := scoped.PeelKey("h", PeelKeyOpts{}); got != want {
		t.Errorf("PeelKey() = %s, want %s", got, want)
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if got := nilInner.ArtifactKey("h", ArtifactKeyOpts{}); !strings.HasPrefix(got, "p:artifact:") {
		t.Errorf("ArtifactKey() with nil inner = %s", got)
	}
}

var errTransient = errors.New("transient")

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}
	err := Retryable(errTransient)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if !errors.Is(err, errTransient) {
		t.Error("wrapped error should unwrap to the cause")
	}
	if IsRetryable(errTransient) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()

	calls := 0
	err := RetryWithBackoff(ctx, 3, time.Millisecond, func() error {
		calls++
		return errTransient
	})
	if err != errTransient || calls != 1 {
		t.Errorf("non-retryable: err = %v, calls = %d, want errTransient once", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, 3, time.Millisecond, func() error {
		calls++
		if calls < 2 {
			return Retryable(errTransient)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("retryable: err = %v, calls = %d, want nil after 2", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, 3, time.Millisecond, func() error {
		calls++
		return Retryable(errTransient)
	})
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err = %v, calls = %d, want retryable after 3", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, 3, time.Hour, func() error {
		return Retryable(errTransient)
	})
	if err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestNewRedisCacheErrors(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := NewRedisCache(ctx, "not a url"); err == nil {
		t.Error("NewRedisCache(bad url) = nil error")
	}
	if _, err := NewRedisCache(ctx, "redis://127.0.0.1:1/0"); !errors.Is(err, ErrUnavailable) {
		t.Errorf("NewRedisCache(closed port) = %v, want ErrUnavailable", err)
	}
}
