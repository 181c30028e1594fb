package cache

import (
	"context"
	"testing"
	"time"

	"github.com/openmix/mixqueue/internal/domain/gamemap"
	basecache "github.com/openmix/mixqueue/internal/platform/cache"
)

type countingMapRepo struct {
	listCalls  int
	prefsCalls int
	maps       []gamemap.Map
	prefs      []gamemap.Preference
}

func (r *countingMapRepo) ListByGuild(_ context.Context, _ string) ([]gamemap.Map, error) {
	r.listCalls++
	return append([]gamemap.Map(nil), r.maps...), nil
}

func (r *countingMapRepo) Create(_ context.Context, m gamemap.Map) error {
	r.maps = append(r.maps, m)
	return nil
}

func (r *countingMapRepo) SetEnabled(_ context.Context, _, mapID string, enabled bool) (bool, error) {
	for i := range r.maps {
		if r.maps[i].ID == mapID {
			r.maps[i].Enabled = enabled
			return true, nil
		}
	}
	return false, nil
}

func (r *countingMapRepo) PreferencesByGuild(_ context.Context, _ string) ([]gamemap.Preference, error) {
	r.prefsCalls++
	return append([]gamemap.Preference(nil), r.prefs...), nil
}

func (r *countingMapRepo) SetPreference(_ context.Context, p gamemap.Preference) error {
	r.prefs = append(r.prefs, p)
	return nil
}

func (r *countingMapRepo) HistoryByGuild(_ context.Context, _ string, _ int) ([]gamemap.PlayedEntry, error) {
	return nil, nil
}

func (r *countingMapRepo) RecordPlayed(_ context.Context, _ []gamemap.PlayedEntry) error {
	return nil
}

func TestGameMapRepository_ListByGuildCachesUntilWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingMapRepo{maps: []gamemap.Map{{ID: "m-1", GuildID: "g1", Name: "Dust", Enabled: true}}}
	repo := NewGameMapRepository(next, basecache.NewStore(time.Minute))

	for i := 0; i < 3; i++ {
		maps, err := repo.ListByGuild(ctx, "g1")
		if err != nil {
			t.Fatalf("list maps: %v", err)
		}
		if len(maps) != 1 {
			t.Fatalf("expected 1 map, got %d", len(maps))
		}
	}
	if next.listCalls != 1 {
		t.Fatalf("expected a single backing call, got %d", next.listCalls)
	}

	if err := repo.Create(ctx, gamemap.Map{ID: "m-2", GuildID: "g1", Name: "Cache", Enabled: true}); err != nil {
		t.Fatalf("create map: %v", err)
	}

	maps, err := repo.ListByGuild(ctx, "g1")
	if err != nil {
		t.Fatalf("list maps after create: %v", err)
	}
	if len(maps) != 2 {
		t.Fatalf("expected refreshed list with 2 maps, got %d", len(maps))
	}
	if next.listCalls != 2 {
		t.Fatalf("expected cache invalidation to hit backing repo, got %d calls", next.listCalls)
	}
}

func TestGameMapRepository_SetPreferenceInvalidatesGuild(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	next := &countingMapRepo{}
	repo := NewGameMapRepository(next, basecache.NewStore(time.Minute))

	if _, err := repo.PreferencesByGuild(ctx, "g1"); err != nil {
		t.Fatalf("preferences: %v", err)
	}
	if _, err := repo.PreferencesByGuild(ctx, "g1"); err != nil {
		t.Fatalf("preferences: %v", err)
	}
	if next.prefsCalls != 1 {
		t.Fatalf("expected cached preferences, got %d backing calls", next.prefsCalls)
	}

	if err := repo.SetPreference(ctx, gamemap.Preference{GuildID: "g1", PlayerID: "p1", MapID: "m-1", Score: 7}); err != nil {
		t.Fatalf("set preference: %v", err)
	}

	prefs, err := repo.PreferencesByGuild(ctx, "g1")
	if err != nil {
		t.Fatalf("preferences after write: %v", err)
	}
	if len(prefs) != 1 || prefs[0].Score != 7 {
		t.Fatalf("expected refreshed preferences, got %+v", prefs)
	}
	if next.prefsCalls != 2 {
		t.Fatalf("expected invalidation to hit backing repo, got %d calls", next.prefsCalls)
	}
}
