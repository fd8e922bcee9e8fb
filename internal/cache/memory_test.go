package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryStore_GetMiss(t *testing.T) {
	store := NewMemoryStore()

	val, ok, err := store.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if ok {
		t.Error("Expected miss for absent key")
	}
	if val != nil {
		t.Errorf("Expected nil value on miss, got %v", val)
	}
}

func TestMemoryStore_SetGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	if err := store.Set(ctx, "Hello world.", []byte{1, 2, 3}); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	val, ok, err := store.Get(ctx, "Hello world.")
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected hit after Set")
	}
	if string(val) != string([]byte{1, 2, 3}) {
		t.Errorf("Expected stored bytes back, got %v", val)
	}
}

func TestMemoryStore_Overwrite(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	store.Set(ctx, "key", []byte("first"))
	store.Set(ctx, "key", []byte("second"))

	val, ok, _ := store.Get(ctx, "key")
	if !ok {
		t.Fatal("Expected hit")
	}
	if string(val) != "second" {
		t.Errorf("Expected last write to win, got %q", val)
	}
	if store.Len() != 1 {
		t.Errorf("Expected 1 entry, got %d", store.Len())
	}
}

func TestMemoryStore_ConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("sentence-%d", n%10)
			store.Set(ctx, key, []byte(key))
			val, ok, err := store.Get(ctx, key)
			if err != nil {
				t.Errorf("Get() failed: %v", err)
				return
			}
			if ok && string(val) != key {
				t.Errorf("Expected %q, got %q", key, val)
			}
		}(i)
	}
	wg.Wait()

	if store.Len() != 10 {
		t.Errorf("Expected 10 distinct entries, got %d", store.Len())
	}
}
