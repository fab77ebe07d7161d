package ids

import (
	"sort"
	"testing"
)

func TestNewLengthAndCharset(t *testing.T) {
	id := New()
	if len(id) != 26 {
		t.Fatalf("expected 26-character id, got %d (%q)", len(id), id)
	}
	for _, r := range id {
		// Crockford base32 alphabet, upper case, no I, L, O, U.
		valid := (r >= '0' && r <= '9') || (r >= 'A' && r <= 'Z' && r != 'I' && r != 'L' && r != 'O' && r != 'U')
		if !valid {
			t.Fatalf("unexpected character %q in id %q", r, id)
		}
	}
}

func TestNewIsSortedAndUnique(t *testing.T) {
	const n = 1000
	generated := make([]string, 0, n)
	seen := make(map[string]struct{}, n)

	for i := 0; i < n; i++ {
		id := New()
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = struct{}{}
		generated = append(generated, id)
	}

	if !sort.StringsAreSorted(generated) {
		t.Fatal("ids generated in sequence are not lexicographically sorted")
	}
}

func TestNewConcurrent(t *testing.T) {
	const workers = 8
	const perWorker = 200

	out := make(chan string, workers*perWorker)
	done := make(chan struct{})
	for w := 0; w < workers; w++ {
		go func() {
			for i := 0; i < perWorker; i++ {
				out <- New()
			}
			done <- struct{}{}
		}()
	}
	for w := 0; w < workers; w++ {
		<-done
	}
	close(out)

	seen := make(map[string]struct{}, workers*perWorker)
	for id := range out {
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id under concurrency: %q", id)
		}
		seen[id] = struct{}{}
	}
}
