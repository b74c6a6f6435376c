package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if err := c.Set("key1", []byte("value1"), 0); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	data, ok := c.Get("key1")
	if !ok {
		t.Fatal("Expected cache hit")
	}
	if string(data) != "value1" {
		t.Errorf("Expected 'value1', got %q", data)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("Expected cache miss for unknown key")
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("key1", []byte("value1"), 0)
	if err := c.Delete("key1"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok := c.Get("key1"); ok {
		t.Error("Expected key to be deleted")
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	_ = c.Set("key1", []byte("a"), 0)
	_ = c.Set("key2", []byte("b"), 0)
	if err := c.Clear(); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, ok := c.Get("key1"); ok {
		t.Error("Expected cache to be empty after Clear")
	}
}

func TestFileKey_ChangesWithContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reqs.csv")

	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	key1 := FileKey(path)

	if !strings.HasPrefix(key1, "canonry:v1:") {
		t.Errorf("Expected versioned key prefix, got %q", key1)
	}

	// A size change must invalidate the key
	if err := os.WriteFile(path, []byte("ab"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	key2 := FileKey(path)

	if key1 == key2 {
		t.Error("Expected key to change when file content changes")
	}
}

func TestFileKey_StableForSameFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reqs.csv")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if FileKey(path) != FileKey(path) {
		t.Error("Expected identical keys for unchanged file")
	}
}
