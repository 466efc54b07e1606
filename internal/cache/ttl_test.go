package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestTTL_Freshness(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := New[string](time.Hour, WithClock(clock.Now))

	c.Set("champions_14.1.1", "data")

	clock.Advance(59 * time.Minute)
	if v, ok := c.Get("champions_14.1.1"); !ok || v != "data" {
		t.Fatalf("Get after 59m = (%q, %v), want (data, true)", v, ok)
	}

	clock.Advance(2 * time.Minute)
	if _, ok := c.Get("champions_14.1.1"); ok {
		t.Fatal("Get after 61m should miss")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry not removed, Len = %d", c.Len())
	}
}

func TestTTL_SetWithTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := New[int](time.Hour, WithClock(clock.Now))

	c.SetWithTTL("short", 1, time.Minute)
	c.Set("long", 2)

	clock.Advance(2 * time.Minute)
	if _, ok := c.Get("short"); ok {
		t.Error("short entry should have expired")
	}
	if v, ok := c.Get("long"); !ok || v != 2 {
		t.Errorf("long entry = (%d, %v), want (2, true)", v, ok)
	}
}

func TestTTL_Delete(t *testing.T) {
	c := New[int](time.Hour)
	c.Set("k", 1)
	c.Delete("k")
	if _, ok := c.Get("k"); ok {
		t.Error("deleted key still present")
	}
}

func TestTTL_LoadSingleFlight(t *testing.T) {
	c := New[int](time.Hour)

	var calls atomic.Int32
	release := make(chan struct{})
	loader := func(context.Context) (int, error) {
		calls.Add(1)
		<-release
		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := c.Load(context.Background(), "version", loader)
			if err != nil {
				t.Errorf("Load returned error: %v", err)
			}
			results[i] = v
		}(i)
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := calls.Load(); n != 1 {
		t.Errorf("loader called %d times, want 1", n)
	}
	for i, v := range results {
		if v != 42 {
			t.Errorf("results[%d] = %d, want 42", i, v)
		}
	}
}

func TestTTL_LoadDoesNotCacheErrors(t *testing.T) {
	c := New[int](time.Hour)
	boom := errors.New("boom")

	if _, err := c.Load(context.Background(), "k", func(context.Context) (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("Load error = %v, want boom", err)
	}
	if c.Len() != 0 {
		t.Fatal("failed load was cached")
	}

	v, err := c.Load(context.Background(), "k", func(context.Context) (int, error) { return 7, nil })
	if err != nil || v != 7 {
		t.Errorf("Load = (%d, %v), want (7, nil)", v, err)
	}
}

func TestTTL_LoadSurvivesCancelledCaller(t *testing.T) {
	c := New[string](time.Hour)

	var calls atomic.Int32
	started := make(chan struct{})
	release := make(chan struct{})
	loader := func(ctx context.Context) (string, error) {
		calls.Add(1)
		close(started)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-release:
			return "14.2.1", nil
		}
	}

	ctx1, cancel1 := context.WithCancel(context.Background())
	first := make(chan error, 1)
	go func() {
		_, err := c.Load(ctx1, "versions", loader)
		first <- err
	}()
	<-started

	type result struct {
		v   string
		err error
	}
	second := make(chan result, 1)
	go func() {
		v, err := c.Load(context.Background(), "versions", loader)
		second <- result{v, err}
	}()

	cancel1()
	if err := <-first; !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled caller err = %v, want context.Canceled", err)
	}

	close(release)
	got := <-second
	if got.err != nil || got.v != "14.2.1" {
		t.Fatalf("live caller = (%q, %v), want (14.2.1, nil)", got.v, got.err)
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("loader called %d times, want 1", n)
	}
	if v, ok := c.Get("versions"); !ok || v != "14.2.1" {
		t.Errorf("value not cached after cancelled caller: (%q, %v)", v, ok)
	}
}

func TestTTL_SweepOnWrite(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := New[int](time.Hour, WithClock(clock.Now))

	for i := range 1000 {
		c.Set(fmt.Sprintf("match:%d", i), i)
	}
	if c.Len() != 1000 {
		t.Fatalf("Len = %d, want 1000", c.Len())
	}

	clock.Advance(48 * time.Hour)
	c.Set("match:fresh", 1)

	if n := c.Len(); n != 1 {
		t.Errorf("Len after sweep = %d, want 1", n)
	}
}

func TestTTL_Purge(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := New[int](time.Hour, WithClock(clock.Now), WithSweepInterval(0))

	c.SetWithTTL("short", 1, time.Minute)
	c.Set("long", 2)
	clock.Advance(48 * time.Hour)
	c.SetWithTTL("new", 3, time.Hour)

	if c.Len() != 3 {
		t.Fatalf("sweeping disabled, Len = %d, want 3", c.Len())
	}
	if removed := c.Purge(); removed != 2 {
		t.Errorf("Purge removed %d, want 2", removed)
	}
	if _, ok := c.Get("new"); !ok {
		t.Error("fresh entry purged")
	}
}
