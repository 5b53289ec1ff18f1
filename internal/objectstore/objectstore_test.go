package objectstore

import (
	"bytes"
	"context"
	"testing"
)

func TestMemoryStorePut(t *testing.T) {
	store := NewMemoryStore()

	uri, err := store.Put(context.Background(), "bronze/swarm-inputs/acme/swarm-1.json", []byte(`{"task":{}}`))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	if uri != "mem://bronze/swarm-inputs/acme/swarm-1.json" {
		t.Errorf("unexpected uri %q", uri)
	}

	body, ok := store.Get("bronze/swarm-inputs/acme/swarm-1.json")
	if !ok {
		t.Fatal("object not found")
	}
	if !bytes.Equal(body, []byte(`{"task":{}}`)) {
		t.Errorf("unexpected body %s", body)
	}
}

func TestMemoryStoreCopiesBody(t *testing.T) {
	store := NewMemoryStore()

	body := []byte("original")
	store.Put(context.Background(), "k", body)
	body[0] = 'X'

	got, _ := store.Get("k")
	if string(got) != "original" {
		t.Errorf("stored object must not alias the caller's slice, got %s", got)
	}
}

func TestMemoryStoreMissingKey(t *testing.T) {
	store := NewMemoryStore()
	if _, ok := store.Get("missing"); ok {
		t.Error("expected miss for unknown key")
	}
}
