package nakama

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// RoomRegistry owns the process-wide mapping from room code to live match id.
// A single registry is constructed in InitModule and shared by the RPCs and
// the match factory; there is no ambient global.
type RoomRegistry struct {
	mu       sync.Mutex
	matchIDs map[string]string
	width    int
	rng      *rand.Rand
}

// NewRoomRegistry constructs a registry for fixed-width numeric codes, with
// the provided rng or a time-seeded default.
func NewRoomRegistry(width int, rng *rand.Rand) *RoomRegistry {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RoomRegistry{
		matchIDs: make(map[string]string),
		width:    width,
		rng:      rng,
	}
}

// Reserve allocates a code not currently in use, by rejection sampling over
// the full code space. Terminates because the code space is far larger than
// any realistic number of concurrent rooms.
func (r *RoomRegistry) Reserve() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	space := 1
	for i := 0; i < r.width; i++ {
		space *= 10
	}

	for {
		code := fmt.Sprintf("%0*d", r.width, r.rng.Intn(space))
		if _, taken := r.matchIDs[code]; !taken {
			r.matchIDs[code] = ""
			return code
		}
	}
}

// Bind attaches a created match id to a reserved code.
func (r *RoomRegistry) Bind(code, matchID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.matchIDs[code] = matchID
}

// Lookup resolves a code to its match id. A reserved-but-unbound code is
// reported as not found.
func (r *RoomRegistry) Lookup(code string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matchID, ok := r.matchIDs[code]
	if !ok || matchID == "" {
		return "", false
	}
	return matchID, true
}

// Release frees a code for reuse. Safe to call more than once.
func (r *RoomRegistry) Release(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.matchIDs, code)
}

// Codes returns a snapshot of the live codes.
func (r *RoomRegistry) Codes() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.matchIDs))
	for code := range r.matchIDs {
		out = append(out, code)
	}
	return out
}
