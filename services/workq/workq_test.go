package workq

import (
	"context"
	"testing"
	"time"
)

func TestSubmitCollapsesWhilePending(t *testing.T) {
	q := New(4)
	var runs int
	w := NewWork(func() { runs++ })

	if !q.Submit(w) {
		t.Fatal("first Submit should queue")
	}
	if q.Submit(w) || q.Submit(w) {
		t.Fatal("duplicate Submit should collapse")
	}
	if !w.Pending() || q.Collapsed() != 2 {
		t.Fatalf("pending=%v collapsed=%d", w.Pending(), q.Collapsed())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)

	deadline := time.After(time.Second)
	for w.Pending() {
		select {
		case <-deadline:
			t.Fatal("item never ran")
		case <-time.After(time.Millisecond):
		}
	}
	// Let the handler finish, then check exactly one run.
	done := make(chan struct{})
	q.Submit(NewWork(func() { close(done) }))
	<-done
	if runs != 1 {
		t.Fatalf("runs = %d, want 1", runs)
	}
}

func TestItemsRunInOrderOneAtATime(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q := New(8)
	q.Start(ctx)

	out := make(chan int, 8)
	running := make(chan struct{}, 1)
	for i := 0; i < 5; i++ {
		i := i
		q.Submit(NewWork(func() {
			select {
			case running <- struct{}{}:
			default:
				t.Error("two items running at once")
			}
			time.Sleep(time.Millisecond)
			<-running
			out <- i
		}))
	}
	for want := 0; want < 5; want++ {
		select {
		case got := <-out:
			if got != want {
				t.Fatalf("order: got %d want %d", got, want)
			}
		case <-time.After(time.Second):
			t.Fatal("timeout")
		}
	}
}

func TestResubmitFromHandler(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q := New(2)
	q.Start(ctx)

	done := make(chan struct{})
	var n int
	var w *Work
	w = NewWork(func() {
		n++
		if n < 3 {
			if !q.Submit(w) {
				t.Error("resubmit from handler rejected")
			}
			return
		}
		close(done)
	})
	q.Submit(w)
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("timeout after %d runs", n)
	}
}

func TestSubmitBeyondDepthIsKept(t *testing.T) {
	q := New(1)
	out := make(chan int, 4)
	var items []*Work
	for i := 0; i < 4; i++ {
		i := i
		w := NewWork(func() { out <- i })
		if !q.Submit(w) {
			t.Fatalf("item %d rejected", i)
		}
		items = append(items, w)
	}
	for i, w := range items {
		if !w.Pending() {
			t.Fatalf("item %d not pending", i)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	q.Start(ctx)
	for want := 0; want < 4; want++ {
		select {
		case got := <-out:
			if got != want {
				t.Fatalf("order: got %d want %d", got, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("item %d never ran", want)
		}
	}
}

func TestStopOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := New(1)
	q.Start(ctx)
	q.Start(ctx)
	cancel()
	select {
	case <-q.Stopped():
	case <-time.After(time.Second):
		t.Fatal("queue did not stop")
	}
}
