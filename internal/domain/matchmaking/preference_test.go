package matchmaking

import (
	"math/rand/v2"
	"testing"
)

func newTestEngine(seed uint64) *PreferenceEngine {
	return NewPreferenceEngine(rand.New(rand.NewPCG(seed, seed+1)), 3, 4)
}

func TestCandidates_UnknownMatrixFallsBackToRandomShortlist(t *testing.T) {
	t.Parallel()

	pool := []MapID{"dust", "mirage", "inferno", "nuke", "train", "cache"}
	players := []PlayerID{"a", "b", "c", "d"}

	engine := newTestEngine(42)
	got := engine.Candidates(pool, players, PreferenceMatrix{}, MapHistory{})
	if len(got) != 4 {
		t.Fatalf("expected 4 fallback candidates, got %d", len(got))
	}

	seen := make(map[MapID]struct{}, len(got))
	available := make(map[MapID]struct{}, len(pool))
	for _, m := range pool {
		available[m] = struct{}{}
	}
	for _, m := range got {
		if _, dup := seen[m]; dup {
			t.Fatalf("candidate %s drawn twice", m)
		}
		seen[m] = struct{}{}
		if _, ok := available[m]; !ok {
			t.Fatalf("candidate %s is not in the pool", m)
		}
	}
}

func TestCandidates_PicksHighestAggregatePreference(t *testing.T) {
	t.Parallel()

	pool := []MapID{"alpha", "beta", "gamma", "delta"}
	players := []PlayerID{"a", "b"}
	prefs := PreferenceMatrix{
		"a": {"alpha": 9, "beta": 2, "gamma": 5, "delta": 1},
		"b": {"alpha": 8, "beta": 3, "gamma": 6, "delta": 1},
	}

	engine := newTestEngine(1)
	got := engine.Candidates(pool, players, prefs, MapHistory{})
	if len(got) != 3 {
		t.Fatalf("expected 3 candidates, got %d", len(got))
	}
	if got[0] != "alpha" {
		t.Fatalf("alpha is unanimously preferred, got shortlist %v", got)
	}
	for _, m := range got {
		if m == "delta" {
			t.Fatalf("delta is unanimously disliked, got shortlist %v", got)
		}
	}
}

func TestCandidates_RecentMapIsSuppressed(t *testing.T) {
	t.Parallel()

	pool := []MapID{"alpha", "beta"}
	players := []PlayerID{"a", "b"}
	prefs := PreferenceMatrix{
		"a": {"alpha": 9, "beta": 8},
		"b": {"alpha": 9, "beta": 8},
	}
	// Both players just played alpha; the decay must push it below beta.
	history := MapHistory{
		"a": {"alpha"},
		"b": {"alpha"},
	}

	engine := newTestEngine(3)
	got := engine.Candidates(pool, players, prefs, history)
	if len(got) == 0 || got[0] != "beta" {
		t.Fatalf("expected beta first after alpha was just played, got %v", got)
	}
}

func TestCandidates_UniformMatrixSpreadsFirstPick(t *testing.T) {
	t.Parallel()

	pool := []MapID{"alpha", "beta", "gamma"}
	players := []PlayerID{"a", "b", "c"}
	prefs := PreferenceMatrix{}
	for _, p := range players {
		row := make(map[MapID]float64, len(pool))
		for _, m := range pool {
			row[m] = 5
		}
		prefs[p] = row
	}

	firsts := make(map[MapID]int, len(pool))
	for seed := uint64(0); seed < 60; seed++ {
		engine := newTestEngine(seed)
		got := engine.Candidates(pool, players, prefs, MapHistory{})
		if len(got) != 3 {
			t.Fatalf("seed %d: expected 3 candidates, got %d", seed, len(got))
		}
		firsts[got[0]]++
	}
	for _, m := range pool {
		if firsts[m] == 0 {
			t.Fatalf("map %s never ranked first across seeds: %v", m, firsts)
		}
	}
}

func TestCandidates_ImputationDoesNotZeroUnratedMaps(t *testing.T) {
	t.Parallel()

	pool := []MapID{"alpha", "beta"}
	players := []PlayerID{"a", "b"}
	// beta is unrated by everyone but alpha scores are low; imputation keeps
	// beta close to the global mean instead of dropping it to zero.
	prefs := PreferenceMatrix{
		"a": {"alpha": 1},
		"b": {"alpha": 2},
	}

	engine := newTestEngine(9)
	got := engine.Candidates(pool, players, prefs, MapHistory{})
	if len(got) != 2 {
		t.Fatalf("expected both maps shortlisted, got %v", got)
	}
}

func TestSelectFromVotes_PluralityWins(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(5)
	candidates := []MapID{"alpha", "beta", "gamma"}
	votes := map[PlayerID]MapID{
		"a": "alpha",
		"b": "alpha",
		"c": "beta",
	}

	for trial := 0; trial < 20; trial++ {
		got, err := engine.SelectFromVotes(candidates, votes)
		if err != nil {
			t.Fatalf("select from votes: %v", err)
		}
		if got != "alpha" {
			t.Fatalf("expected alpha with 2 votes, got %s", got)
		}
	}
}

func TestSelectFromVotes_NoVotesDefaultsToFirstCandidate(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(6)
	got, err := engine.SelectFromVotes([]MapID{"gamma", "alpha"}, nil)
	if err != nil {
		t.Fatalf("select from votes: %v", err)
	}
	if got != "gamma" {
		t.Fatalf("expected first candidate gamma, got %s", got)
	}
}

func TestSelectFromVotes_TieIsResolvedAmongTiedMaps(t *testing.T) {
	t.Parallel()

	candidates := []MapID{"alpha", "beta"}
	votes := map[PlayerID]MapID{
		"a": "alpha",
		"b": "beta",
	}

	picked := make(map[MapID]int, 2)
	for seed := uint64(0); seed < 40; seed++ {
		engine := newTestEngine(seed)
		got, err := engine.SelectFromVotes(candidates, votes)
		if err != nil {
			t.Fatalf("seed %d: select from votes: %v", seed, err)
		}
		picked[got]++
	}
	if picked["alpha"] == 0 || picked["beta"] == 0 {
		t.Fatalf("both tied maps must be reachable, got %v", picked)
	}
	if picked["alpha"]+picked["beta"] != 40 {
		t.Fatalf("tie-break escaped the tied set: %v", picked)
	}
}

func TestSelectFromVotes_IgnoresVotesOutsideShortlist(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(8)
	got, err := engine.SelectFromVotes([]MapID{"alpha", "beta"}, map[PlayerID]MapID{
		"a": "omega",
		"b": "beta",
	})
	if err != nil {
		t.Fatalf("select from votes: %v", err)
	}
	if got != "beta" {
		t.Fatalf("expected beta, got %s", got)
	}
}
