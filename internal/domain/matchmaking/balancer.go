package matchmaking

import (
	"fmt"
	"sort"
)

// SplitTeams partitions 2k players into two k-sized teams minimizing the
// absolute difference of team rating sums. Players are sorted by rating
// descending (stable, so rating ties keep input order) and greedily assigned
// to the team with the lower running sum, ties going to team one. Once a team
// is full the remainder goes to the other team. A swap pass then exchanges
// players one for one until no exchange narrows the gap, so the returned
// split is single-swap optimal.
func SplitTeams(players []Participant) (teamOne, teamTwo []Participant, err error) {
	if len(players) < 2 || len(players)%2 != 0 {
		return nil, nil, fmt.Errorf("%w: team split needs an even player count >= 2, got %d", ErrInvalidState, len(players))
	}

	seen := make(map[PlayerID]struct{}, len(players))
	for _, p := range players {
		if _, dup := seen[p.ID]; dup {
			// Duplicate ids indicate a caller bug, not user input.
			return nil, nil, fmt.Errorf("duplicate player id %s in team split input", p.ID)
		}
		seen[p.ID] = struct{}{}
	}

	sorted := make([]Participant, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	capacity := len(players) / 2
	var sumOne, sumTwo int
	teamOne = make([]Participant, 0, capacity)
	teamTwo = make([]Participant, 0, capacity)

	for _, p := range sorted {
		switch {
		case len(teamOne) >= capacity:
			teamTwo = append(teamTwo, p)
			sumTwo += p.Rating
		case len(teamTwo) >= capacity:
			teamOne = append(teamOne, p)
			sumOne += p.Rating
		case sumOne <= sumTwo:
			teamOne = append(teamOne, p)
			sumOne += p.Rating
		default:
			teamTwo = append(teamTwo, p)
			sumTwo += p.Rating
		}
	}

	// The greedy pass can fill a team early and strand an improving
	// exchange, e.g. 1600/1500/1400/1300/1200/1000 lands at 4100 vs 3900
	// when swapping the top two players reaches 4000 each. Each applied
	// swap strictly narrows the integer gap, so the loop terminates.
	for {
		diff := sumOne - sumTwo
		best := absRating(diff)
		bestOne, bestTwo := -1, -1
		for i, a := range teamOne {
			for j, b := range teamTwo {
				if d := absRating(diff - 2*(a.Rating-b.Rating)); d < best {
					best = d
					bestOne, bestTwo = i, j
				}
			}
		}
		if bestOne < 0 {
			break
		}
		delta := teamOne[bestOne].Rating - teamTwo[bestTwo].Rating
		sumOne -= delta
		sumTwo += delta
		teamOne[bestOne], teamTwo[bestTwo] = teamTwo[bestTwo], teamOne[bestOne]
	}

	return teamOne, teamTwo, nil
}

func absRating(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func teamRatingSum(team []Participant) int {
	var sum int
	for _, p := range team {
		sum += p.Rating
	}
	return sum
}

func teamRatingMean(team []Participant) float64 {
	if len(team) == 0 {
		return 0
	}
	return float64(teamRatingSum(team)) / float64(len(team))
}
