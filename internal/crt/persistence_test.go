package crt

import (
	"testing"
	"time"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func pointAt(ms int) ScreenPoint {
	return ScreenPoint{X: float64(ms), Y: float64(-ms), Brightness: 1, Created: epoch.Add(time.Duration(ms) * time.Millisecond)}
}

func TestPersistenceBufferEvict(t *testing.T) {
	b := NewPersistenceBuffer()
	for ms := 0; ms < 200; ms += 10 {
		b.Push(pointAt(ms))
	}

	now := epoch.Add(250 * time.Millisecond)
	ttl := 100 * time.Millisecond

	removed := b.Evict(now, ttl)
	// 0..150ms have reached the ttl
	if removed != 16 {
		t.Errorf("Expected 16 points evicted, got %d", removed)
	}

	snap := b.Snapshot()
	if len(snap) != 4 {
		t.Fatalf("Expected 4 survivors, got %d", len(snap))
	}
	for i, p := range snap {
		if now.Sub(p.Created) >= ttl {
			t.Errorf("stale point survived: age %v", now.Sub(p.Created))
		}
		if i > 0 && !p.Created.After(snap[i-1].Created) {
			t.Errorf("order broken at %d", i)
		}
	}
	if snap[0].X != 160 {
		t.Errorf("Expected oldest survivor at 160ms, got %v", snap[0].X)
	}

	if again := b.Evict(now, ttl); again != 0 {
		t.Errorf("Expected idempotent eviction, removed %d more", again)
	}
}

func TestPersistenceBufferEvictBoundary(t *testing.T) {
	b := NewPersistenceBuffer()
	b.Push(pointAt(0))
	b.Push(pointAt(1))

	b.Evict(epoch.Add(100*time.Millisecond), 100*time.Millisecond)
	snap := b.Snapshot()
	if len(snap) != 1 || snap[0].X != 1 {
		t.Errorf("Expected only the point younger than ttl to survive, got %+v", snap)
	}
}

func TestPersistenceBufferSnapshotIsCopy(t *testing.T) {
	b := NewPersistenceBuffer()
	b.Push(pointAt(0))
	snap := b.Snapshot()
	snap[0].X = 999

	if b.Snapshot()[0].X != 0 {
		t.Error("Expected snapshot mutation not to reach the buffer")
	}
}

func TestPersistenceBufferClear(t *testing.T) {
	b := NewPersistenceBuffer()
	for ms := 0; ms < 5; ms++ {
		b.Push(pointAt(ms))
	}
	b.Clear()
	if b.Len() != 0 || len(b.Snapshot()) != 0 {
		t.Errorf("Expected empty buffer, got %d points", b.Len())
	}

	b.Push(pointAt(7))
	if b.Len() != 1 {
		t.Errorf("Expected buffer to accept points after clear, got %d", b.Len())
	}
}

func TestScreenPointFade(t *testing.T) {
	p := pointAt(0)
	p.Brightness = 0.5
	ttl := 200 * time.Millisecond

	tests := []struct {
		age  time.Duration
		fade float64
	}{
		{0, 1},
		{50 * time.Millisecond, 0.75},
		{100 * time.Millisecond, 0.5},
		{200 * time.Millisecond, 0},
		{500 * time.Millisecond, 0},
	}
	for _, tt := range tests {
		now := epoch.Add(tt.age)
		if got := p.Fade(now, ttl); got != tt.fade {
			t.Errorf("age %v: expected fade %v, got %v", tt.age, tt.fade, got)
		}
		if got := p.Intensity(now, ttl); got != tt.fade*0.5 {
			t.Errorf("age %v: expected intensity %v, got %v", tt.age, tt.fade*0.5, got)
		}
	}
}
