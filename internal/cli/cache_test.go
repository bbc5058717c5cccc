package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/matzehuels/dungeonforge/pkg/cache"
)

func TestClearCacheDirMissing(t *testing.T) {
	n, err := clearCacheDir(filepath.Join(t.TempDir(), "absent"))
	if err != nil || n != 0 {
		t.Errorf("clearCacheDir() = %d, %v; want 0, nil", n, err)
	}
}

func TestClearCacheDir(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	_ = fc.Set(ctx, "layout:a", []byte("a"), 0)
	_ = fc.Set(ctx, "layout:b", []byte("b"), 0)

	n, err := clearCacheDir(dir)
	if err != nil || n != 2 {
		t.Errorf("clearCacheDir() = %d, %v; want 2, nil", n, err)
	}
}

func TestNewCacheDisabled(t *testing.T) {
	c, err := newCache(true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("newCache(true) = %T, want *cache.NullCache", c)
	}
}
