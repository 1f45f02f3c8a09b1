package signaling

import (
	"sync"
	"testing"
)

func TestStoreGetOrCreate(t *testing.T) {
	store := NewRoomStore()

	room := store.GetOrCreate("alpha")
	if room == nil {
		t.Fatal("GetOrCreate returned nil")
	}
	if room.ID != "alpha" {
		t.Errorf("room.ID = %q, want %q", room.ID, "alpha")
	}
	if room.CreatedAt.IsZero() {
		t.Error("CreatedAt not set")
	}

	again := store.GetOrCreate("alpha")
	if again != room {
		t.Error("second GetOrCreate returned a different instance")
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestStoreGetAbsent(t *testing.T) {
	store := NewRoomStore()

	if store.Get("nope") != nil {
		t.Error("Get of absent id should be nil")
	}
	if store.Has("nope") {
		t.Error("Has of absent id should be false")
	}
}

func TestStoreDelete(t *testing.T) {
	store := NewRoomStore()
	store.GetOrCreate("alpha")

	store.Delete("alpha")
	if store.Has("alpha") {
		t.Error("room still present after Delete")
	}

	// Deleting again is a no-op.
	store.Delete("alpha")
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0", store.Len())
	}
}

func TestStoreConcurrentCreate(t *testing.T) {
	store := NewRoomStore()

	const workers = 16
	results := make([]*Room, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results[n] = store.GetOrCreate("contested")
		}(i)
	}
	wg.Wait()

	if store.Len() != 1 {
		t.Fatalf("Len = %d, want exactly 1 room", store.Len())
	}
	for i := 1; i < workers; i++ {
		if results[i] != results[0] {
			t.Fatal("racing GetOrCreate calls observed different instances")
		}
	}
}
