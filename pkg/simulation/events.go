package simulation

import "container/heap"

// CompletionEvent marks the instant at which an admitted job finishes.
type CompletionEvent struct {
	CompletionTime int64
	// JobIndex is the submission index of the job within the replayed log.
	JobIndex int
}

// CompletionQueue holds in-flight jobs ordered by completion time.
// Events with equal completion time are ordered by job index.
type CompletionQueue struct {
	events completionHeap
}

// NewCompletionQueue returns an empty queue with room for capacity events.
func NewCompletionQueue(capacity int) *CompletionQueue {
	return &CompletionQueue{events: make(completionHeap, 0, capacity)}
}

// Len returns the number of in-flight jobs.
func (q *CompletionQueue) Len() int {
	return len(q.events)
}

// PushEvent adds an in-flight job to the queue.
func (q *CompletionQueue) PushEvent(e CompletionEvent) {
	heap.Push(&q.events, e)
}

// PeekMin returns the earliest event without removing it.
// ok is false if the queue is empty.
func (q *CompletionQueue) PeekMin() (e CompletionEvent, ok bool) {
	if len(q.events) == 0 {
		return CompletionEvent{}, false
	}
	return q.events[0], true
}

// PopMin removes and returns the earliest event.
// ok is false if the queue is empty.
func (q *CompletionQueue) PopMin() (e CompletionEvent, ok bool) {
	if len(q.events) == 0 {
		return CompletionEvent{}, false
	}
	return heap.Pop(&q.events).(CompletionEvent), true
}

type completionHeap []CompletionEvent

func (h completionHeap) Len() int { return len(h) }

func (h completionHeap) Less(i, j int) bool {
	if h[i].CompletionTime == h[j].CompletionTime {
		return h[i].JobIndex < h[j].JobIndex
	}
	return h[i].CompletionTime < h[j].CompletionTime
}

func (h completionHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *completionHeap) Push(x any) {
	*h = append(*h, x.(CompletionEvent))
}

func (h *completionHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}
