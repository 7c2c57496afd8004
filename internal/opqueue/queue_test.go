package opqueue

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dshills/refactorengine/internal/lockmgr"
)

func TestEnqueueDispatchesFIFO(t *testing.T) {
	q := New(lockmgr.NewManager())
	defer q.Close()

	var order []int
	var mu sync.Mutex
	var results []<-chan Result

	for i := 0; i < 5; i++ {
		i := i
		results = append(results, q.Enqueue(Operation{
			ID:       "op",
			FilePath: "/a",
			Run: func() error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			},
		}))
	}

	for _, r := range results {
		<-r
	}

	for i, v := range order {
		if v != i {
			t.Fatalf("expected FIFO order, got %v", order)
		}
	}
}

func TestDispatchSerializesSamePath(t *testing.T) {
	q := New(lockmgr.NewManager())
	defer q.Close()

	var active int32
	var maxActive int32
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		r := q.Enqueue(Operation{
			FilePath: "/shared",
			Run: func() error {
				n := atomic.AddInt32(&active, 1)
				if n > atomic.LoadInt32(&maxActive) {
					atomic.StoreInt32(&maxActive, n)
				}
				time.Sleep(2 * time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			},
		})
		go func() {
			defer wg.Done()
			<-r
		}()
	}
	wg.Wait()

	if maxActive > 1 {
		t.Fatalf("expected at most 1 concurrent operation on the same path, saw %d", maxActive)
	}
}

func TestFailingOperationIncrementsFailedAndContinues(t *testing.T) {
	q := New(lockmgr.NewManager())
	defer q.Close()

	r1 := q.Enqueue(Operation{FilePath: "/a", Run: func() error { return errTest }})
	res1 := <-r1
	if res1.Err == nil {
		t.Fatal("expected error from failing operation")
	}

	r2 := q.Enqueue(Operation{FilePath: "/a", Run: func() error { return nil }})
	res2 := <-r2
	if res2.Err != nil {
		t.Fatalf("expected subsequent operation to succeed, got %v", res2.Err)
	}

	stats := q.Stats()
	if stats.Failed != 1 || stats.Completed != 1 {
		t.Fatalf("expected 1 failed, 1 completed, got %+v", stats)
	}
}

func TestPanicIsIsolated(t *testing.T) {
	q := New(lockmgr.NewManager())
	defer q.Close()

	r1 := q.Enqueue(Operation{FilePath: "/a", Run: func() error { panic("boom") }})
	res1 := <-r1
	if res1.Err == nil {
		t.Fatal("expected panic to surface as an error")
	}

	r2 := q.Enqueue(Operation{FilePath: "/a", Run: func() error { return nil }})
	res2 := <-r2
	if res2.Err != nil {
		t.Fatalf("expected worker loop to survive panic, got %v", res2.Err)
	}
}

func TestWaitUntilIdle(t *testing.T) {
	q := New(lockmgr.NewManager())
	defer q.Close()

	started := make(chan struct{})
	release := make(chan struct{})
	q.Enqueue(Operation{FilePath: "/a", Run: func() error {
		close(started)
		<-release
		return nil
	}})
	<-started

	idleDone := make(chan error, 1)
	go func() {
		idleDone <- q.WaitUntilIdle(context.Background())
	}()

	select {
	case <-idleDone:
		t.Fatal("WaitUntilIdle returned before operation finished")
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	if err := <-idleDone; err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestWaitUntilIdleRespectsContext(t *testing.T) {
	q := New(lockmgr.NewManager())
	defer q.Close()

	release := make(chan struct{})
	q.Enqueue(Operation{FilePath: "/a", Run: func() error {
		<-release
		return nil
	}})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := q.WaitUntilIdle(ctx)
	if err == nil {
		t.Fatal("expected context deadline error")
	}
	close(release)
}

func TestCloseDrainsPendingWithErrClosed(t *testing.T) {
	q := New(lockmgr.NewManager())

	release := make(chan struct{})
	q.Enqueue(Operation{FilePath: "/a", Run: func() error { <-release; return nil }})
	pending := q.Enqueue(Operation{FilePath: "/b", Run: func() error { return nil }})

	go func() {
		time.Sleep(5 * time.Millisecond)
		close(release)
	}()
	q.Close()

	res := <-pending
	if res.Err != ErrClosed {
		t.Fatalf("expected ErrClosed for drained operation, got %v", res.Err)
	}
}

var errTest = &testError{"operation failed"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }
