package funcbox

import (
	"strconv"
	"sync"
	"testing"
)

func TestStore_SetGet(t *testing.T) {
	store, err := OpenStore(t.TempDir(), "alpha")
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	if err := store.Set("greeting", `"hello"`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := store.Get("greeting")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || *got != `"hello"` {
		t.Fatalf("Get returned %v, want %q", got, `"hello"`)
	}
}

func TestStore_GetMissing(t *testing.T) {
	store, err := OpenStore(t.TempDir(), "alpha")
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	got, err := store.Get("absent")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("Get returned %q, want nil", *got)
	}
}

func TestStore_SetReplaces(t *testing.T) {
	store, err := OpenStore(t.TempDir(), "alpha")
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	if err := store.Set("k", "1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Set("k", "2"); err != nil {
		t.Fatalf("Set again: %v", err)
	}
	got, err := store.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || *got != "2" {
		t.Fatalf("Get returned %v, want 2", got)
	}
}

func TestStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()

	store, err := OpenStore(dir, "persist")
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	if err := store.Set("k", "42"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	reopened, err := OpenStore(dir, "persist")
	if err != nil {
		t.Fatalf("OpenStore again: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || *got != "42" {
		t.Fatalf("Get returned %v, want 42", got)
	}
}

func TestStore_IsolatedPerName(t *testing.T) {
	dir := t.TempDir()

	a, err := OpenStore(dir, "a")
	if err != nil {
		t.Fatalf("OpenStore a: %v", err)
	}
	defer a.Close()
	b, err := OpenStore(dir, "b")
	if err != nil {
		t.Fatalf("OpenStore b: %v", err)
	}
	defer b.Close()

	if err := a.Set("k", "1"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, err := b.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("b sees a's key: %q", *got)
	}
}

func TestStore_ConcurrentWritesDistinctKeys(t *testing.T) {
	store, err := OpenStore(t.TempDir(), "conc")
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	const n = 16
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			key := "k" + strconv.Itoa(i)
			if err := store.Set(key, strconv.Itoa(i)); err != nil {
				t.Errorf("Set %s: %v", key, err)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < n; i++ {
		key := "k" + strconv.Itoa(i)
		got, err := store.Get(key)
		if err != nil {
			t.Fatalf("Get %s: %v", key, err)
		}
		if got == nil || *got != strconv.Itoa(i) {
			t.Fatalf("Get %s = %v, want %d", key, got, i)
		}
	}
}

func TestStore_ConcurrentWritesSameKey(t *testing.T) {
	store, err := OpenStore(t.TempDir(), "conc")
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	defer store.Close()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() { defer wg.Done(); store.Set("k", "a") }()
	go func() { defer wg.Done(); store.Set("k", "b") }()
	wg.Wait()

	got, err := store.Get("k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil || (*got != "a" && *got != "b") {
		t.Fatalf("Get = %v, want a or b", got)
	}
}
