package corpreport

import (
	"sync/atomic"
	"testing"
)

func TestNewServicePoolClampsSize(t *testing.T) {
	pool := NewServicePool(0, nil)
	defer pool.Close()
	if pool.Size() != 1 {
		t.Errorf("Size() = %d, want 1", pool.Size())
	}
}

func TestServicePoolLazyCreation(t *testing.T) {
	var created int32
	pool := NewServicePool(3, func() *Service {
		atomic.AddInt32(&created, 1)
		return New()
	})
	defer pool.Close()

	if n := atomic.LoadInt32(&created); n != 0 {
		t.Fatalf("factory called %d times before Acquire", n)
	}

	svc := pool.Acquire()
	if n := atomic.LoadInt32(&created); n != 1 {
		t.Errorf("factory called %d times, want 1", n)
	}
	pool.Release(svc)

	// Released service is reused, not recreated
	again := pool.Acquire()
	if n := atomic.LoadInt32(&created); n != 1 {
		t.Errorf("factory called %d times after reuse, want 1", n)
	}
	if again != svc {
		t.Errorf("Acquire returned a different service than released")
	}
	pool.Release(again)
}

func TestServicePoolCreatesUpToCapacity(t *testing.T) {
	var created int32
	pool := NewServicePool(2, func() *Service {
		atomic.AddInt32(&created, 1)
		return New()
	})
	defer pool.Close()

	a := pool.Acquire()
	b := pool.Acquire()
	if n := atomic.LoadInt32(&created); n != 2 {
		t.Errorf("factory called %d times, want 2", n)
	}
	pool.Release(a)
	pool.Release(b)
}

func TestServicePoolCloseIdempotent(t *testing.T) {
	pool := NewServicePool(1, nil)
	if err := pool.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := pool.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestResolvePoolSize(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		check   func(int) bool
	}{
		{"explicit workers win", 5, func(n int) bool { return n == 5 }},
		{"auto stays within bounds", 0, func(n int) bool {
			return n >= MinPoolSize && n <= MaxPoolSize
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if n := ResolvePoolSize(tt.workers); !tt.check(n) {
				t.Errorf("ResolvePoolSize(%d) = %d", tt.workers, n)
			}
		})
	}
}
