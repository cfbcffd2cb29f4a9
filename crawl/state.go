package crawl

import "sync"

// State is the visited set shared across all seed crawls in a run, so a
// page reachable from two seeds is only processed once. It is passed by
// reference into each seed's crawl and is safe for concurrent use.
type State struct {
	mu      sync.Mutex
	visited map[string]struct{}
}

// NewState creates an empty State.
func NewState() *State {
	return &State{visited: make(map[string]struct{})}
}

// Claim marks a URL visited. Returns false if it was already visited —
// the claim-then-process check that guarantees no URL is processed twice.
func (s *State) Claim(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.visited[url]; ok {
		return false
	}
	s.visited[url] = struct{}{}
	return true
}

// Visited reports whether the URL has been visited.
func (s *State) Visited(url string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.visited[url]
	return ok
}

// Len returns the number of visited URLs.
func (s *State) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.visited)
}
