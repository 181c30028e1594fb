package matchmaking

import (
	"fmt"
	"math/rand/v2"
)

const maxPreferenceScore = 10.0

// PreferenceMatrix is a sparse player-by-map grid of stated preference scores
// in [0,10]. A missing cell means the player never rated the map; it is
// imputed, never treated as zero.
type PreferenceMatrix map[PlayerID]map[MapID]float64

func (m PreferenceMatrix) score(p PlayerID, mapID MapID) (float64, bool) {
	row, ok := m[p]
	if !ok {
		return 0, false
	}
	v, ok := row[mapID]
	return v, ok
}

// MapHistory lists, per player, the maps of their recent matches ordered
// oldest to newest.
type MapHistory map[PlayerID][]MapID

// PreferenceEngine builds the candidate-map shortlist for a lobby and
// resolves the final map from lobby votes. The random source is injected so
// tie-breaks are reproducible in tests.
type PreferenceEngine struct {
	rng           *rand.Rand
	candidates    int
	fallbackCount int
}

func NewPreferenceEngine(rng *rand.Rand, candidateCount, fallbackCount int) *PreferenceEngine {
	if candidateCount < 1 {
		candidateCount = DefaultSettings().CandidateMapCount
	}
	if fallbackCount < 1 {
		fallbackCount = DefaultSettings().FallbackCandidateCount
	}
	return &PreferenceEngine{
		rng:           rng,
		candidates:    candidateCount,
		fallbackCount: fallbackCount,
	}
}

// Candidates selects a shortlist of maps balancing aggregate preference and
// fairness. Steps: bias-corrected mean imputation of unrated cells, factorial
// decay of recently played maps, then a greedy diverse pick maximizing the
// sum over players of min(preference, expected utility), where the expected
// utility cap gives under-served players more influence.
func (e *PreferenceEngine) Candidates(pool []MapID, players []PlayerID, prefs PreferenceMatrix, history MapHistory) []MapID {
	if len(pool) == 0 || len(players) == 0 {
		return nil
	}

	values, known := e.impute(pool, players, prefs)
	if known == 0 {
		return e.randomShortlist(pool)
	}

	utility := e.expectedUtility(players, values, history)
	e.decayRecent(players, values, history)

	remaining := append([]MapID(nil), pool...)
	limit := e.candidates
	if limit > len(remaining) {
		limit = len(remaining)
	}

	shortlist := make([]MapID, 0, limit)
	for len(shortlist) < limit {
		best := e.pickBest(remaining, players, values, utility)
		shortlist = append(shortlist, remaining[best])
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	return shortlist
}

// impute fills unknown cells with globalMean + rowDeviation + colDeviation so
// absent preferences neither default to zero nor bias against rarely played
// maps. Returns the dense matrix and the number of known cells.
func (e *PreferenceEngine) impute(pool []MapID, players []PlayerID, prefs PreferenceMatrix) (map[PlayerID]map[MapID]float64, int) {
	var globalSum float64
	var known int
	rowSum := make(map[PlayerID]float64, len(players))
	rowCount := make(map[PlayerID]int, len(players))
	colSum := make(map[MapID]float64, len(pool))
	colCount := make(map[MapID]int, len(pool))

	for _, p := range players {
		for _, m := range pool {
			v, ok := prefs.score(p, m)
			if !ok {
				continue
			}
			known++
			globalSum += v
			rowSum[p] += v
			rowCount[p]++
			colSum[m] += v
			colCount[m]++
		}
	}

	values := make(map[PlayerID]map[MapID]float64, len(players))
	if known == 0 {
		return values, 0
	}

	globalMean := globalSum / float64(known)
	for _, p := range players {
		row := make(map[MapID]float64, len(pool))
		rowMean := globalMean
		if rowCount[p] > 0 {
			rowMean = rowSum[p] / float64(rowCount[p])
		}
		for _, m := range pool {
			if v, ok := prefs.score(p, m); ok {
				row[m] = v
				continue
			}
			colMean := globalMean
			if colCount[m] > 0 {
				colMean = colSum[m] / float64(colCount[m])
			}
			row[m] = globalMean + (rowMean - globalMean) + (colMean - globalMean)
		}
		values[p] = row
	}

	return values, known
}

// decayRecent divides a player's preference for a recently played map by the
// factorial of its recency rank, so the map of the last match is suppressed
// hardest and the penalty fades factorially as matches pass.
func (e *PreferenceEngine) decayRecent(players []PlayerID, values map[PlayerID]map[MapID]float64, history MapHistory) {
	for _, p := range players {
		row := values[p]
		if row == nil {
			continue
		}
		for i, played := range history[p] {
			if _, ok := row[played]; !ok {
				continue
			}
			row[played] /= factorial(i + 1)
		}
	}
}

// expectedUtility derives each player's utility cap from how well served they
// were by their recent maps: the lower a player's mean preference for the
// maps they actually got, the closer their cap sits to the maximum score.
func (e *PreferenceEngine) expectedUtility(players []PlayerID, values map[PlayerID]map[MapID]float64, history MapHistory) map[PlayerID]float64 {
	weight := make(map[PlayerID]float64, len(players))
	var maxWeight float64
	for _, p := range players {
		satisfaction := e.satisfaction(p, values[p], history[p])
		w := maxPreferenceScore - satisfaction + 1
		if w < 1 {
			w = 1
		}
		weight[p] = w
		if w > maxWeight {
			maxWeight = w
		}
	}

	utility := make(map[PlayerID]float64, len(players))
	for _, p := range players {
		utility[p] = maxPreferenceScore * weight[p] / maxWeight
	}
	return utility
}

func (e *PreferenceEngine) satisfaction(p PlayerID, row map[MapID]float64, recent []MapID) float64 {
	if row == nil {
		return maxPreferenceScore / 2
	}
	var sum float64
	var count int
	for _, m := range recent {
		if v, ok := row[m]; ok {
			sum += v
			count++
		}
	}
	if count > 0 {
		return sum / float64(count)
	}
	// No history: fall back to the player's mean stated preference.
	for _, v := range row {
		sum += v
		count++
	}
	if count == 0 {
		return maxPreferenceScore / 2
	}
	return sum / float64(count)
}

func (e *PreferenceEngine) pickBest(remaining []MapID, players []PlayerID, values map[PlayerID]map[MapID]float64, utility map[PlayerID]float64) int {
	bestScore := 0.0
	var tied []int
	for i, m := range remaining {
		var score float64
		for _, p := range players {
			v := values[p][m]
			if ceiling := utility[p]; v > ceiling {
				v = ceiling
			}
			score += v
		}
		switch {
		case len(tied) == 0 || score > bestScore:
			bestScore = score
			tied = tied[:0]
			tied = append(tied, i)
		case score == bestScore:
			tied = append(tied, i)
		}
	}
	return tied[e.rng.IntN(len(tied))]
}

func (e *PreferenceEngine) randomShortlist(pool []MapID) []MapID {
	shuffled := append([]MapID(nil), pool...)
	e.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if len(shuffled) > e.fallbackCount {
		shuffled = shuffled[:e.fallbackCount]
	}
	return shuffled
}

// SelectFromVotes resolves the final map: plurality wins, an empty ballot
// defaults to the first (highest ranked) candidate, and ties are broken
// uniformly at random.
func (e *PreferenceEngine) SelectFromVotes(candidates []MapID, votes map[PlayerID]MapID) (MapID, error) {
	if len(candidates) == 0 {
		return "", fmt.Errorf("%w: no candidate maps", ErrInvalidState)
	}

	allowed := make(map[MapID]struct{}, len(candidates))
	for _, m := range candidates {
		allowed[m] = struct{}{}
	}

	tally := make(map[MapID]int, len(candidates))
	var cast int
	for _, m := range votes {
		if _, ok := allowed[m]; !ok {
			continue
		}
		tally[m]++
		cast++
	}
	if cast == 0 {
		return candidates[0], nil
	}

	best := -1
	var tied []MapID
	for _, m := range candidates {
		n := tally[m]
		switch {
		case n > best:
			best = n
			tied = tied[:0]
			tied = append(tied, m)
		case n == best:
			tied = append(tied, m)
		}
	}
	return tied[e.rng.IntN(len(tied))], nil
}

func factorial(n int) float64 {
	out := 1.0
	for i := 2; i <= n; i++ {
		out *= float64(i)
	}
	return out
}
