package index

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestBoltCache_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	cache, err := NewBoltCache(path, "text-embedding-3-small")
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	vectors := [][]float32{{1, 0, 0}, {0, 1, 0}}
	if err := cache.Put("doc1", vectors); err != nil {
		t.Fatal(err)
	}

	got, ok := cache.Get("doc1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if !reflect.DeepEqual(got, vectors) {
		t.Errorf("cached vectors differ: %v vs %v", got, vectors)
	}
}

func TestBoltCache_MissOnUnknownFingerprint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	cache, err := NewBoltCache(path, "text-embedding-3-small")
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	if _, ok := cache.Get("absent"); ok {
		t.Error("expected cache miss")
	}
}

func TestBoltCache_ModelMismatchIsMiss(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.db")

	cache, err := NewBoltCache(path, "text-embedding-3-small")
	if err != nil {
		t.Fatal(err)
	}
	if err := cache.Put("doc1", [][]float32{{1}}); err != nil {
		t.Fatal(err)
	}
	cache.Close()

	other, err := NewBoltCache(path, "text-embedding-3-large")
	if err != nil {
		t.Fatal(err)
	}
	defer other.Close()

	if _, ok := other.Get("doc1"); ok {
		t.Error("vectors from another model must not be served")
	}
}
