package sim

import "container/heap"

// timeHeap implements heap.Interface over raw tick values.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type timeHeap []int64

func (h timeHeap) Len() int           { return len(h) }
func (h timeHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h timeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *timeHeap) Push(x any) {
	*h = append(*h, x.(int64))
}

func (h *timeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// TimeQueue is a sorted multiset of future time points at which some state becomes
// available (a machine frees up, a job operation becomes ready, a job arrives).
type TimeQueue struct {
	times timeHeap
}

// NewTimeQueue creates an empty time queue.
func NewTimeQueue() *TimeQueue {
	q := &TimeQueue{times: make(timeHeap, 0)}
	heap.Init(&q.times)
	return q
}

// Register adds a time point. Duplicates are kept.
func (q *TimeQueue) Register(t int64) {
	heap.Push(&q.times, t)
}

// Len returns the number of pending time points, duplicates included.
func (q *TimeQueue) Len() int {
	return q.times.Len()
}

// PopNext removes and returns the earliest pending time point.
func (q *TimeQueue) PopNext() (int64, bool) {
	if q.times.Len() == 0 {
		return 0, false
	}
	return heap.Pop(&q.times).(int64), true
}

// PopThrough removes every time point <= t and returns how many were removed.
func (q *TimeQueue) PopThrough(t int64) int {
	n := 0
	for q.times.Len() > 0 && q.times[0] <= t {
		heap.Pop(&q.times)
		n++
	}
	return n
}
