package sdf

import (
	"container/heap"
	"math"
)

// seedKey is the priority of a frontier pixel: the displacement to the
// closest boundary seed found so far and that seed's sub-pixel correction.
type seedKey struct {
	vx, vy   float32
	dist     float32
	interior bool
}

// distance returns the signed distance encoded by the key: the length of
// the displacement, negated for interior pixels, plus the seed correction.
func (k seedKey) distance() float32 {
	d := float32(math.Sqrt(float64(k.vx*k.vx + k.vy*k.vy)))
	if k.interior {
		d = -d
	}
	return d + k.dist
}

// frontierItem is a queued pixel.
type frontierItem struct {
	pixel int
	key   seedKey
	abs   float32 // |key.distance()|, the heap priority
	seq   uint64  // first push order, breaks ties
}

// frontier is a binary min-heap over |distance| with decrease-key,
// indexed by pixel so every pixel is queued at most once.
type frontier struct {
	items []frontierItem
	pos   []int32 // pixel -> heap index, -1 when not queued
	seq   uint64
}

func newFrontier(pixels int) *frontier {
	f := &frontier{
		items: make([]frontierItem, 0, 64),
		pos:   make([]int32, pixels),
	}
	for i := range f.pos {
		f.pos[i] = -1
	}
	return f
}

// Len implements heap.Interface.
func (f *frontier) Len() int { return len(f.items) }

// Less implements heap.Interface.
func (f *frontier) Less(i, j int) bool {
	a, b := &f.items[i], &f.items[j]
	if a.abs != b.abs {
		return a.abs < b.abs
	}
	return a.seq < b.seq
}

// Swap implements heap.Interface.
func (f *frontier) Swap(i, j int) {
	f.items[i], f.items[j] = f.items[j], f.items[i]
	f.pos[f.items[i].pixel] = int32(i) //nolint:gosec // heap size is bounded by pixel count
	f.pos[f.items[j].pixel] = int32(j) //nolint:gosec // heap size is bounded by pixel count
}

// Push implements heap.Interface.
func (f *frontier) Push(x any) {
	item := x.(frontierItem)
	f.pos[item.pixel] = int32(len(f.items)) //nolint:gosec // heap size is bounded by pixel count
	f.items = append(f.items, item)
}

// Pop implements heap.Interface.
func (f *frontier) Pop() any {
	n := len(f.items) - 1
	item := f.items[n]
	f.items = f.items[:n]
	f.pos[item.pixel] = -1
	return item
}

// push queues a pixel, or lowers its priority if it is already queued and
// the new key is strictly closer. A queued priority never increases.
// Reports whether the frontier changed.
func (f *frontier) push(pixel int, key seedKey) bool {
	abs := float32(math.Abs(float64(key.distance())))

	if i := f.pos[pixel]; i >= 0 {
		item := &f.items[i]
		if abs >= item.abs {
			return false
		}
		item.key = key
		item.abs = abs
		heap.Fix(f, int(i))
		return true
	}

	f.seq++
	heap.Push(f, frontierItem{pixel: pixel, key: key, abs: abs, seq: f.seq})
	return true
}

// pop removes and returns the closest queued pixel.
func (f *frontier) pop() (int, seedKey) {
	item := heap.Pop(f).(frontierItem)
	return item.pixel, item.key
}
