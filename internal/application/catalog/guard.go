package catalog

import "sync"

// SearchGuard hands out per-session sequence tickets so responses arriving
// out of order never overwrite fresher results. Begin issues a ticket before
// the upstream call; Accept afterwards reports whether a newer search has
// started in the meantime.
type SearchGuard struct {
	mu      sync.Mutex
	tickets map[string]uint64
}

// NewSearchGuard creates a search guard.
func NewSearchGuard() *SearchGuard {
	return &SearchGuard{tickets: make(map[string]uint64)}
}

// Begin starts a new search for the session and returns its ticket.
// Any ticket issued earlier for the same session becomes stale.
func (g *SearchGuard) Begin(sessionID string) uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.tickets[sessionID]++
	return g.tickets[sessionID]
}

// Accept reports whether the ticket still names the latest search for the
// session. A false result means the response is stale and must be dropped.
func (g *SearchGuard) Accept(sessionID string, ticket uint64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.tickets[sessionID] == ticket
}

// Forget drops the session's counter, e.g. on logout.
func (g *SearchGuard) Forget(sessionID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.tickets, sessionID)
}
