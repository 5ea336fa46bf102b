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

var errTransient = errors.New("connection reset")

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit || data != nil {
		t.Error("NullCache.Get should always miss")
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
	c, err := NewFileCache(filepath.Join(t.TempDir(), "charts"))
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("empty cache: hit=%v err=%v", hit, err)
	}

	if err := c.Set(ctx, "k", []byte("  |#\n"), time.Hour); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit {
		t.Fatalf("Get after Set: hit=%v err=%v", hit, err)
	}
	if string(data) != "  |#\n" {
		t.Errorf("data = %q", data)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("entry still present after Delete")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("x"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	p := c.path("k")
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit=%v err=%v, want miss", hit, err)
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
		t.Errorf("Clear removed %d entries, want 3", n)
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
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	base := ChartKeyOpts{Width: 80, Height: 5, Range: "min-max", Symbol: "#", Type: "bar"}

	key := k.ChartKey("abc", base)
	if !strings.HasPrefix(key, "chart:") || len(key) != len("chart:")+64 {
		t.Errorf("ChartKey format unexpected: %s", key)
	}
	if key != k.ChartKey("abc", base) {
		t.Error("ChartKey should be deterministic")
	}
	if key == k.ChartKey("abd", base) {
		t.Error("different dataset hashes should produce different keys")
	}

	variants := []ChartKeyOpts{
		{Width: 81, Height: 5, Range: "min-max", Symbol: "#", Type: "bar"},
		{Width: 80, Height: 6, Range: "min-max", Symbol: "#", Type: "bar"},
		{Width: 80, Height: 5, Range: "zero-max", Symbol: "#", Type: "bar"},
		{Width: 80, Height: 5, Range: "min-max", Symbol: "*", Type: "bar"},
		{Width: 80, Height: 5, Range: "min-max", Symbol: "#", Type: "scatter"},
		{Width: 80, Height: 5, Range: "min-max", Symbol: "#", Type: "bar", Colour: true},
	}
	for _, v := range variants {
		if k.ChartKey("abc", v) == key {
			t.Errorf("opts %+v should change the key", v)
		}
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "v1:")

	opts := ChartKeyOpts{Width: 80}
	if got, want := scoped.ChartKey("h", opts), "v1:"+inner.ChartKey("h", opts); got != want {
		t.Errorf("ChartKey = %s, want %s", got, want)
	}

	if got := NewScopedKeyer(nil, "p:").ChartKey("h", opts); got != "p:"+inner.ChartKey("h", opts) {
		t.Errorf("nil inner: %s", got)
	}
}

func TestRetryableError(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should return nil")
	}

	err := Retryable(errTransient)
	if !IsRetryable(err) {
		t.Error("IsRetryable should return true for wrapped error")
	}
	if err.Error() != errTransient.Error() {
		t.Errorf("Error message should be preserved: %s", err.Error())
	}
	if !errors.Is(err, errTransient) {
		t.Error("wrapped error should unwrap")
	}
	if IsRetryable(errTransient) {
		t.Error("IsRetryable should return false for unwrapped error")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	retryDelay = time.Millisecond
	t.Cleanup(func() { retryDelay = 100 * time.Millisecond })

	calls := 0
	if err := RetryWithBackoff(ctx, func() error { calls++; return nil }); err != nil || calls != 1 {
		t.Errorf("success: err=%v calls=%d", err, calls)
	}

	calls = 0
	permanent := errors.New("bad request")
	err := RetryWithBackoff(ctx, func() error { calls++; return permanent })
	if err != permanent || calls != 1 {
		t.Errorf("permanent: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error {
		calls++
		if calls < 2 {
			return Retryable(errTransient)
		}
		return nil
	})
	if err != nil || calls != 2 {
		t.Errorf("transient: err=%v calls=%d", err, calls)
	}

	calls = 0
	err = RetryWithBackoff(ctx, func() error { calls++; return Retryable(errTransient) })
	if !IsRetryable(err) || calls != 3 {
		t.Errorf("exhausted: err=%v calls=%d", err, calls)
	}
}

func TestRetryWithBackoffContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errTransient)
	})
	if err != context.Canceled {
		t.Errorf("Should return context error: %v", err)
	}
}
