package matchmaking

import "math"

const (
	ratingScale  = 400.0
	kNumerator   = 800.0
	kGamesOffset = 10.0
	scoreWin     = 1.0
	scoreLoss    = 0.0
)

// ExpectedScore is the classic Elo win expectancy of a player against an
// opponent rating.
func ExpectedScore(rating, opponentRating float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (opponentRating-rating)/ratingScale))
}

// KFactor decays as a player accumulates games so that new players converge
// quickly and established ratings stay stable.
func KFactor(gamesPlayed int) float64 {
	if gamesPlayed < 0 {
		gamesPlayed = 0
	}
	return kNumerator / (kGamesOffset + float64(gamesPlayed))
}

// UpdatedRating returns the post-match rating for a player. actualScore is 1
// for a win and 0 for a loss. Ratings are not clamped; callers may clamp
// downstream if they want a floor.
func UpdatedRating(rating int, opponentRating float64, actualScore float64, gamesPlayed int) int {
	expected := ExpectedScore(float64(rating), opponentRating)
	k := KFactor(gamesPlayed)
	return int(math.Round(float64(rating) + k*(actualScore-expected)))
}

// RatingUpdate is the before/after snapshot for one participant of a
// confirmed match.
type RatingUpdate struct {
	Player    Participant // post-match record: new rating and bumped counters
	OldRating int
	NewRating int
	Won       bool
}

// settleTeams computes rating updates for every participant of a finished
// match. Opponent rating is the arithmetic mean of the opposing team's
// pre-match ratings.
func settleTeams(winners, losers []Participant) []RatingUpdate {
	winnerMean := teamRatingMean(winners)
	loserMean := teamRatingMean(losers)

	updates := make([]RatingUpdate, 0, len(winners)+len(losers))
	for _, p := range winners {
		updated := p
		updated.Rating = UpdatedRating(p.Rating, loserMean, scoreWin, p.GamesPlayed())
		updated.GamesWon++
		updates = append(updates, RatingUpdate{
			Player:    updated,
			OldRating: p.Rating,
			NewRating: updated.Rating,
			Won:       true,
		})
	}
	for _, p := range losers {
		updated := p
		updated.Rating = UpdatedRating(p.Rating, winnerMean, scoreLoss, p.GamesPlayed())
		updated.GamesLost++
		updates = append(updates, RatingUpdate{
			Player:    updated,
			OldRating: p.Rating,
			NewRating: updated.Rating,
			Won:       false,
		})
	}

	return updates
}
