package crt

import (
	"slices"
	"time"
)

// ScreenPoint is a beam landing in screen pixel space.
type ScreenPoint struct {
	X          float64
	Y          float64
	Brightness float64
	Created    time.Time
}

// Fade is the remaining afterglow fraction of p at now, from 1 when fresh
// down to 0 at ttl.
func (p ScreenPoint) Fade(now time.Time, ttl time.Duration) float64 {
	if ttl <= 0 {
		return 0
	}
	age := now.Sub(p.Created)
	return max(0, 1-float64(age)/float64(ttl))
}

// Intensity is the brightness of p scaled by its fade.
func (p ScreenPoint) Intensity(now time.Time, ttl time.Duration) float64 {
	return p.Brightness * p.Fade(now, ttl)
}

// PersistenceBuffer holds the phosphor trail in creation order. Memory grows
// linearly with the TTL since only time-based eviction bounds it.
type PersistenceBuffer struct {
	points []ScreenPoint
}

func NewPersistenceBuffer() *PersistenceBuffer {
	return &PersistenceBuffer{}
}

func (b *PersistenceBuffer) Push(p ScreenPoint) {
	b.points = append(b.points, p)
}

// Evict drops every point whose age at now has reached ttl and returns how
// many were removed. Survivors keep their relative order.
func (b *PersistenceBuffer) Evict(now time.Time, ttl time.Duration) int {
	before := len(b.points)
	b.points = slices.DeleteFunc(b.points, func(p ScreenPoint) bool {
		return now.Sub(p.Created) >= ttl
	})
	return before - len(b.points)
}

// Snapshot returns a copy of the trail, oldest first.
func (b *PersistenceBuffer) Snapshot() []ScreenPoint {
	return slices.Clone(b.points)
}

func (b *PersistenceBuffer) Len() int {
	return len(b.points)
}

func (b *PersistenceBuffer) Clear() {
	b.points = b.points[:0]
}
