package matchmaking

import "fmt"

// Queue holds waiting players in arrival order. It is not safe for concurrent
// use on its own; GuildState serializes access.
type Queue struct {
	players []Participant
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Enqueue(p Participant) error {
	if q.Contains(p.ID) {
		return fmt.Errorf("%w: player=%s", ErrAlreadyQueued, p.ID)
	}
	q.players = append(q.players, p)
	return nil
}

// Dequeue removes the player if present and reports whether it did.
func (q *Queue) Dequeue(id PlayerID) bool {
	for i, p := range q.players {
		if p.ID == id {
			q.players = append(q.players[:i], q.players[i+1:]...)
			return true
		}
	}
	return false
}

func (q *Queue) Size() int {
	return len(q.players)
}

func (q *Queue) Contains(id PlayerID) bool {
	for _, p := range q.players {
		if p.ID == id {
			return true
		}
	}
	return false
}

// ExtractGroup atomically removes and returns the n earliest-arrived players,
// preserving arrival order within the group.
func (q *Queue) ExtractGroup(n int) ([]Participant, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: group size must be >= 1", ErrInvalidState)
	}
	if len(q.players) < n {
		return nil, fmt.Errorf("%w: have=%d need=%d", ErrInsufficientPlayers, len(q.players), n)
	}

	group := make([]Participant, n)
	copy(group, q.players[:n])
	q.players = append([]Participant(nil), q.players[n:]...)

	return group, nil
}

// Snapshot returns a copy of the waiting players in arrival order.
func (q *Queue) Snapshot() []Participant {
	out := make([]Participant, len(q.players))
	copy(out, q.players)
	return out
}
