package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/openmix/mixqueue/internal/domain/gamemap"
	"github.com/openmix/mixqueue/internal/platform/id"
)

// MapPoolService manages a guild's map pool and the per-player preferences
// the lobby shortlist is built from.
type MapPoolService struct {
	mapRepo gamemap.Repository
	idGen   id.Generator
}

func NewMapPoolService(mapRepo gamemap.Repository, idGen id.Generator) *MapPoolService {
	return &MapPoolService{
		mapRepo: mapRepo,
		idGen:   idGen,
	}
}

func (s *MapPoolService) ListMaps(ctx context.Context, guildID string) ([]gamemap.Map, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MapPoolService.ListMaps")
	defer span.End()

	guildID = strings.TrimSpace(guildID)
	if guildID == "" {
		return nil, fmt.Errorf("%w: guild id is required", ErrInvalidInput)
	}
	maps, err := s.mapRepo.ListByGuild(ctx, guildID)
	if err != nil {
		return nil, fmt.Errorf("list maps by guild: %w", err)
	}
	return maps, nil
}

// AddMap registers a new map in the guild pool, enabled by default.
func (s *MapPoolService) AddMap(ctx context.Context, guildID, name string) (gamemap.Map, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MapPoolService.AddMap")
	defer span.End()

	guildID = strings.TrimSpace(guildID)
	name = strings.TrimSpace(name)
	if guildID == "" || name == "" {
		return gamemap.Map{}, fmt.Errorf("%w: guild id and map name are required", ErrInvalidInput)
	}

	existing, err := s.mapRepo.ListByGuild(ctx, guildID)
	if err != nil {
		return gamemap.Map{}, fmt.Errorf("list maps by guild: %w", err)
	}
	for _, m := range existing {
		if strings.EqualFold(m.Name, name) {
			return gamemap.Map{}, fmt.Errorf("%w: map %q already exists in guild %s", ErrConflict, name, guildID)
		}
	}

	mapID, err := s.idGen.NewID()
	if err != nil {
		return gamemap.Map{}, fmt.Errorf("mint map id: %w", err)
	}
	m := gamemap.Map{
		ID:      mapID,
		GuildID: guildID,
		Name:    name,
		Enabled: true,
	}
	if err := m.Validate(); err != nil {
		return gamemap.Map{}, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}
	if err := s.mapRepo.Create(ctx, m); err != nil {
		return gamemap.Map{}, fmt.Errorf("create map: %w", err)
	}
	return m, nil
}

// SetMapEnabled toggles a map in or out of the shortlist pool without losing
// its stored preferences.
func (s *MapPoolService) SetMapEnabled(ctx context.Context, guildID, mapID string, enabled bool) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MapPoolService.SetMapEnabled")
	defer span.End()

	guildID = strings.TrimSpace(guildID)
	mapID = strings.TrimSpace(mapID)
	if guildID == "" || mapID == "" {
		return fmt.Errorf("%w: guild id and map id are required", ErrInvalidInput)
	}

	found, err := s.mapRepo.SetEnabled(ctx, guildID, mapID, enabled)
	if err != nil {
		return fmt.Errorf("set map enabled: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: map=%s guild=%s", ErrNotFound, mapID, guildID)
	}
	return nil
}

// RateMap stores a player's preference score for one map.
func (s *MapPoolService) RateMap(ctx context.Context, guildID, playerID, mapID string, score int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MapPoolService.RateMap")
	defer span.End()

	pref := gamemap.Preference{
		GuildID:  strings.TrimSpace(guildID),
		PlayerID: strings.TrimSpace(playerID),
		MapID:    strings.TrimSpace(mapID),
		Score:    score,
	}
	if err := pref.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	maps, err := s.mapRepo.ListByGuild(ctx, pref.GuildID)
	if err != nil {
		return fmt.Errorf("list maps by guild: %w", err)
	}
	known := false
	for _, m := range maps {
		if m.ID == pref.MapID {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf("%w: map=%s guild=%s", ErrNotFound, pref.MapID, pref.GuildID)
	}

	if err := s.mapRepo.SetPreference(ctx, pref); err != nil {
		return fmt.Errorf("set map preference: %w", err)
	}
	return nil
}
