package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestGroup_CollapsesConcurrentCalls(t *testing.T) {
	t.Parallel()

	var g Group[int]
	var calls atomic.Int32

	gate := make(chan struct{})
	leaderIn := make(chan struct{})

	var wg sync.WaitGroup
	results := make([]int, 10)
	shared := make([]bool, 10)

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			val, err, wasShared := g.Do("scores", func() (int, error) {
				calls.Add(1)
				close(leaderIn)
				<-gate
				return 42, nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[i] = val
			shared[i] = wasShared
		}(i)
	}

	<-leaderIn
	close(gate)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one execution, got %d", got)
	}

	sharedCount := 0
	for i := range results {
		if results[i] != 42 {
			t.Fatalf("caller %d got %d, want 42", i, results[i])
		}
		if shared[i] {
			sharedCount++
		}
	}
	if sharedCount != 9 {
		t.Fatalf("expected 9 shared results, got %d", sharedCount)
	}
}

func TestGroup_DistinctKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var g Group[string]

	a, err, _ := g.Do("a", func() (string, error) { return "alpha", nil })
	if err != nil || a != "alpha" {
		t.Fatalf("got %q, %v", a, err)
	}

	b, err, _ := g.Do("b", func() (string, error) { return "beta", nil })
	if err != nil || b != "beta" {
		t.Fatalf("got %q, %v", b, err)
	}
}

func TestGroup_KeyReusableAfterCompletion(t *testing.T) {
	t.Parallel()

	var g Group[int]

	for want := 1; want <= 3; want++ {
		got, err, shared := g.Do("k", func() (int, error) { return want, nil })
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if shared {
			t.Fatal("sequential calls must not report shared results")
		}
		if got != want {
			t.Fatalf("got %d, want %d", got, want)
		}
	}

	if n := g.InFlight(); n != 0 {
		t.Fatalf("expected no in-flight keys, got %d", n)
	}
}
