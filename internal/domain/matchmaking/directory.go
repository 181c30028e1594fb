package matchmaking

import (
	"fmt"
	"math/rand/v2"
	"sync"
)

// Directory is the top-level entry point: one GuildState per registered
// guild. Guilds are fully independent and may be driven in parallel; the
// directory lock only guards the registry map itself.
type Directory struct {
	mu       sync.RWMutex
	guilds   map[GuildID]*GuildState
	settings Settings
	ids      IDGenerator
	newRand  func() *rand.Rand
}

func NewDirectory(settings Settings, ids IDGenerator, newRand func() *rand.Rand) *Directory {
	if newRand == nil {
		newRand = func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		}
	}
	return &Directory{
		guilds:   make(map[GuildID]*GuildState),
		settings: settings.normalized(),
		ids:      ids,
		newRand:  newRand,
	}
}

// Register creates the guild's state on first call and reports whether it was
// created; re-registration is a no-op.
func (d *Directory) Register(id GuildID) (*GuildState, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if existing, ok := d.guilds[id]; ok {
		return existing, false
	}
	state := NewGuildState(id, d.settings, d.ids, d.newRand())
	d.guilds[id] = state
	return state, true
}

// Remove tears down a guild's state and reports whether it existed.
func (d *Directory) Remove(id GuildID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.guilds[id]; !ok {
		return false
	}
	delete(d.guilds, id)
	return true
}

func (d *Directory) Guild(id GuildID) (*GuildState, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	state, ok := d.guilds[id]
	if !ok {
		return nil, fmt.Errorf("%w: guild=%s", ErrNotFound, id)
	}
	return state, nil
}

func (d *Directory) GuildIDs() []GuildID {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]GuildID, 0, len(d.guilds))
	for id := range d.guilds {
		out = append(out, id)
	}
	return out
}

// Counts reports the lobby and match counts of one guild.
func (d *Directory) Counts(id GuildID) (lobbies, matches int, err error) {
	state, err := d.Guild(id)
	if err != nil {
		return 0, 0, err
	}
	lobbies, matches = state.Counts()
	return lobbies, matches, nil
}
