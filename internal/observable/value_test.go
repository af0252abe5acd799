package observable

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func activeSubscribers[T any](v *Value[T]) int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.subs)
}

func TestValue_ZeroValue(t *testing.T) {
	var v Value[string]
	assert.Equal(t, "", v.Get())

	v.Set("en")
	assert.Equal(t, "en", v.Get())
}

func TestSubscribe_ReceivesCurrentValueImmediately(t *testing.T) {
	v := New(true)

	var got []bool
	cancel := v.Subscribe(func(b bool) { got = append(got, b) })
	defer cancel()

	require.Equal(t, []bool{true}, got)
}

func TestSet_NotifiesInSubscriptionOrder(t *testing.T) {
	v := New(0)

	var order []string
	v.Subscribe(func(n int) { order = append(order, "first") })
	v.Subscribe(func(n int) { order = append(order, "second") })
	order = nil

	v.Set(1)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestSet_NotifiesEqualValues(t *testing.T) {
	v := New("fr")

	calls := 0
	v.Subscribe(func(string) { calls++ })

	v.Set("fr")
	v.Set("fr")
	assert.Equal(t, 3, calls, "one immediate emission plus two publishes")
}

func TestCancel_StopsNotifications(t *testing.T) {
	v := New(false)

	var got []bool
	cancel := v.Subscribe(func(b bool) { got = append(got, b) })
	v.Set(true)
	cancel()
	cancel()
	v.Set(false)

	assert.Equal(t, []bool{false, true}, got)
	assert.Equal(t, 0, activeSubscribers(v))
}

func TestCancel_FromInsideCallback(t *testing.T) {
	v := New(0)

	var cancel func()
	calls := 0
	cancel = v.Subscribe(func(n int) {
		calls++
		if n == 1 {
			cancel()
		}
	})

	v.Set(1)
	v.Set(2)
	assert.Equal(t, 2, calls)
}

func TestWatch_DeliversLatestValue(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	v := New("en")
	ch := v.Watch(ctx)

	require.Equal(t, "en", receive(t, ch))

	v.Set("de")
	v.Set("fr")
	assert.Equal(t, "fr", receive(t, ch), "stale values are dropped")

	select {
	case extra := <-ch:
		t.Fatalf("unexpected extra value %q", extra)
	default:
	}
}

func TestWatch_UnsubscribesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	v := New(1)
	_ = v.Watch(ctx)
	require.Equal(t, 1, activeSubscribers(v))

	cancel()
	require.Eventually(t, func() bool { return activeSubscribers(v) == 0 }, time.Second, 5*time.Millisecond)
}

func TestValue_ConcurrentUse(t *testing.T) {
	v := New(0)

	var mu sync.Mutex
	seen := 0
	v.Subscribe(func(int) {
		mu.Lock()
		seen++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Set(i)
			_ = v.Get()
		}()
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 51, seen)
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case val := <-ch:
		return val
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}
