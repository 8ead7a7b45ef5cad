package storage_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dkeye/nexvox/internal/adapters/storage"
	"github.com/dkeye/nexvox/internal/core"
)

func TestMemoryStore(t *testing.T) {
	s := storage.NewMemoryStore(0)
	if _, ok, err := s.Get("k"); ok || err != nil {
		t.Fatalf("missing key: ok=%v err=%v", ok, err)
	}
	if err := s.Set("k", []byte("v")); err != nil {
		t.Fatal(err)
	}
	v, ok, err := s.Get("k")
	if err != nil || !ok || string(v) != "v" {
		t.Fatalf("Get = %q %v %v", v, ok, err)
	}
	v[0] = 'x'
	if again, _, _ := s.Get("k"); string(again) != "v" {
		t.Fatal("Get leaked internal buffer")
	}
}

func TestMemoryStoreQuota(t *testing.T) {
	s := storage.NewMemoryStore(8)
	if err := s.Set("a", []byte("12345")); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("b", []byte("12345")); !errors.Is(err, core.ErrQuotaExceeded) {
		t.Fatalf("err = %v, want ErrQuotaExceeded", err)
	}
	// Overwriting a key only counts its new size.
	if err := s.Set("a", []byte("12345678")); err != nil {
		t.Fatalf("overwrite within quota: %v", err)
	}
}

func TestFileStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "store.json")
	s, err := storage.NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set(core.RoomsKey, []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatal(err)
	}

	reopened, err := storage.NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	v, ok, err := reopened.Get(core.RoomsKey)
	if err != nil || !ok || string(v) != `[{"id":"1"}]` {
		t.Fatalf("Get = %q %v %v", v, ok, err)
	}
}

func TestFileStoreCorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{{{"), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := storage.NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if _, ok, _ := s.Get(core.UserKey); ok {
		t.Fatal("corrupt file produced a value")
	}
	if err := s.Set(core.UserKey, []byte(`{}`)); err != nil {
		t.Fatalf("Set after corrupt load: %v", err)
	}
}

func TestFileStoreWriteFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "store.json")
	s, err := storage.NewFileStore(path)
	if err != nil {
		t.Fatal(err)
	}
	// A directory where the temp file should go makes the write fail.
	if err := os.Mkdir(path+".tmp", 0o755); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("k", []byte(`1`)); err == nil {
		t.Fatal("expected write error")
	}
	if _, ok, _ := s.Get("k"); ok {
		t.Fatal("failed write left the value behind")
	}
}
