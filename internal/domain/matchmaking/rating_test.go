package matchmaking

import (
	"math"
	"testing"
)

func TestExpectedScore_EqualRatingsIsHalf(t *testing.T) {
	t.Parallel()

	if got := ExpectedScore(1200, 1200); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("expected 0.5, got %f", got)
	}
}

func TestKFactor_DecaysWithGames(t *testing.T) {
	t.Parallel()

	if got := KFactor(0); math.Abs(got-80) > 1e-9 {
		t.Fatalf("K for a new player should be 80, got %f", got)
	}
	if got := KFactor(30); math.Abs(got-20) > 1e-9 {
		t.Fatalf("K after 30 games should be 20, got %f", got)
	}
	if KFactor(5) <= KFactor(50) {
		t.Fatal("K must shrink as games accumulate")
	}
}

func TestUpdatedRating_WinBeatsLoss(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		rating   int
		opponent float64
		games    int
	}{
		{1000, 1000, 0},
		{1500, 1200, 12},
		{900, 1600, 3},
		{-50, 400, 40},
	} {
		win := UpdatedRating(tc.rating, tc.opponent, scoreWin, tc.games)
		loss := UpdatedRating(tc.rating, tc.opponent, scoreLoss, tc.games)
		if win <= loss {
			t.Fatalf("rating=%d opponent=%f games=%d: win result %d not above loss result %d",
				tc.rating, tc.opponent, tc.games, win, loss)
		}
	}
}

func TestUpdatedRating_NoFloor(t *testing.T) {
	t.Parallel()

	got := UpdatedRating(5, 1500, scoreLoss, 0)
	if got >= 5 {
		t.Fatalf("expected a loss to lower the rating, got %d", got)
	}
	if got >= 0 {
		t.Fatalf("ratings may go negative, got %d", got)
	}
}

func TestSettleTeams_UsesOpposingTeamMean(t *testing.T) {
	t.Parallel()

	winners := []Participant{
		{ID: "w1", Rating: 1500, GamesWon: 3, GamesLost: 1},
		{ID: "w2", Rating: 1200},
	}
	losers := []Participant{
		{ID: "l1", Rating: 1400},
		{ID: "l2", Rating: 1300, GamesWon: 0, GamesLost: 6},
	}

	updates := settleTeams(winners, losers)
	if len(updates) != 4 {
		t.Fatalf("expected 4 updates, got %d", len(updates))
	}

	byID := make(map[PlayerID]RatingUpdate, len(updates))
	for _, u := range updates {
		byID[u.Player.ID] = u
	}

	w1 := byID["w1"]
	if !w1.Won || w1.OldRating != 1500 {
		t.Fatalf("unexpected w1 update: %+v", w1)
	}
	if want := UpdatedRating(1500, 1350, scoreWin, 4); w1.NewRating != want {
		t.Fatalf("w1 new rating=%d, want %d", w1.NewRating, want)
	}
	if w1.Player.GamesWon != 4 || w1.Player.GamesLost != 1 {
		t.Fatalf("w1 counters not bumped: %+v", w1.Player)
	}

	l2 := byID["l2"]
	if l2.Won {
		t.Fatalf("l2 should have lost: %+v", l2)
	}
	if want := UpdatedRating(1300, 1350, scoreLoss, 6); l2.NewRating != want {
		t.Fatalf("l2 new rating=%d, want %d", l2.NewRating, want)
	}
	if l2.Player.GamesLost != 7 {
		t.Fatalf("l2 loss counter not bumped: %+v", l2.Player)
	}
}
