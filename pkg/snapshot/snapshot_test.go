package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNullStore(t *testing.T) {
	ctx := context.Background()
	s := NewNullStore()
	defer s.Close()

	if err := s.Put(ctx, Snapshot{Path: "a.json", Data: []byte("x")}); err != nil {
		t.Errorf("Put error: %v", err)
	}
	if _, hit, err := s.Get(ctx, "a.json"); err != nil || hit {
		t.Errorf("Get = hit %v err %v, want miss", hit, err)
	}
	if err := s.Delete(ctx, "a.json"); err != nil {
		t.Errorf("Delete error: %v", err)
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

func TestKeyNormalizesPath(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if Key("scene.json") != Key(filepath.Join(wd, "scene.json")) {
		t.Error("relative and absolute paths should share a key")
	}
	if Key("a/../scene.json") != Key("scene.json") {
		t.Error("uncleaned path should share a key")
	}
}

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	if _, hit, _ := s.Get(ctx, "scene.json"); hit {
		t.Fatal("empty store should miss")
	}

	if err := s.Put(ctx, Snapshot{Path: "scene.json", RunID: "run-1", Data: []byte("v1")}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, Snapshot{Path: "scene.json", RunID: "run-2", Data: []byte("v2")}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	snap, hit, err := s.Get(ctx, "scene.json")
	if err != nil || !hit {
		t.Fatalf("Get = hit %v err %v", hit, err)
	}
	if string(snap.Data) != "v2" || snap.RunID != "run-2" {
		t.Errorf("snapshot = %q %q, want latest", snap.Data, snap.RunID)
	}
	if !filepath.IsAbs(snap.Path) {
		t.Errorf("Path %q should be absolute", snap.Path)
	}
	if snap.ExpiresAt.Sub(snap.CreatedAt) != time.Hour {
		t.Errorf("TTL = %v, want 1h", snap.ExpiresAt.Sub(snap.CreatedAt))
	}

	if err := s.Delete(ctx, "scene.json"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := s.Get(ctx, "scene.json"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := s.Delete(ctx, "scene.json"); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
}

func TestFileStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir(), time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	if err := s.Put(ctx, Snapshot{Path: "scene.json", Data: []byte("x")}); err != nil {
		t.Fatal(err)
	}
	s.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, hit, _ := s.Get(ctx, "scene.json"); hit {
		t.Error("expired snapshot should miss")
	}
	if _, err := os.Stat(s.path("scene.json")); !os.IsNotExist(err) {
		t.Error("expired snapshot file should be removed")
	}
}

func TestFileStoreCorruptEntry(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if s.ttl != DefaultTTL {
		t.Errorf("ttl = %v, want DefaultTTL", s.ttl)
	}
	p := s.path("scene.json")
	_ = os.MkdirAll(filepath.Dir(p), 0o755)
	_ = os.WriteFile(p, []byte("{broken"), 0o600)

	if _, hit, err := s.Get(ctx, "scene.json"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v err %v, want clean miss", hit, err)
	}
}

func TestFileStoreClear(t *testing.T) {
	ctx := context.Background()
	s, err := NewFileStore(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range []string{"a.json", "b.json", "c.json"} {
		if err := s.Put(ctx, Snapshot{Path: p, Data: []byte(p)}); err != nil {
			t.Fatal(err)
		}
	}
	n, err := s.Clear(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d, want 3", n)
	}
	entries, _ := os.ReadDir(s.Dir())
	if len(entries) != 0 {
		t.Errorf("%d entries left after Clear", len(entries))
	}
}
