package service

import (
	"sync"
	"testing"
	"time"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	k := newKeyedMutex()

	const workers = 16
	counter := 0
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			k.Lock("user-1")
			counter++
			k.Unlock("user-1")
		}()
	}
	wg.Wait()

	if counter != workers {
		t.Errorf("counter = %d, want %d", counter, workers)
	}
}

func TestKeyedMutexIndependentKeysDoNotBlock(t *testing.T) {
	k := newKeyedMutex()
	k.Lock("user-1")
	defer k.Unlock("user-1")

	done := make(chan struct{})
	go func() {
		k.Lock("user-2")
		k.Unlock("user-2")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("independent key blocked behind user-1's lock")
	}
}

func TestKeyedMutexEvictsIdleEntries(t *testing.T) {
	k := newKeyedMutex()

	const users = 100
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%26))
			k.Lock(key)
			k.Unlock(key)
		}(i)
	}
	wg.Wait()

	k.mu.Lock()
	remaining := len(k.locks)
	k.mu.Unlock()
	if remaining != 0 {
		t.Errorf("%d entries survived after all holders unlocked, want 0", remaining)
	}
}

func TestKeyedMutexWaiterKeepsEntryAlive(t *testing.T) {
	k := newKeyedMutex()
	k.Lock("user-1")

	acquired := make(chan struct{})
	go func() {
		k.Lock("user-1")
		close(acquired)
		k.Unlock("user-1")
	}()

	// Wait until the second locker is registered as a waiter.
	for {
		k.mu.Lock()
		entry, ok := k.locks["user-1"]
		refs := 0
		if ok {
			refs = entry.refs
		}
		k.mu.Unlock()
		if refs == 2 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	k.Unlock("user-1")
	<-acquired
}
