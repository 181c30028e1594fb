package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/openmix/mixqueue/internal/domain/gamemap"
	gamemapmock "github.com/openmix/mixqueue/internal/mocks/domain/gamemap"
)

type fixedIDGen struct {
	id string
}

func (g fixedIDGen) NewID() (string, error) {
	return g.id, nil
}

func TestMapPoolService_AddMap_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	mapRepo := gamemapmock.NewRepository(t)
	service := NewMapPoolService(mapRepo, fixedIDGen{id: "m-new"})

	mapRepo.
		On("ListByGuild", mock.Anything, "g1").
		Return([]gamemap.Map{{ID: "m-dust", GuildID: "g1", Name: "Dust", Enabled: true}}, nil).
		Once()
	mapRepo.
		On("Create", mock.Anything, gamemap.Map{ID: "m-new", GuildID: "g1", Name: "Vault", Enabled: true}).
		Return(nil).
		Once()

	got, err := service.AddMap(context.Background(), "g1", "Vault")
	if err != nil {
		t.Fatalf("add map: %v", err)
	}
	if got.ID != "m-new" || !got.Enabled {
		t.Fatalf("unexpected map %+v", got)
	}
}

func TestMapPoolService_AddMap_DuplicateNameUsingMockery(t *testing.T) {
	t.Parallel()

	mapRepo := gamemapmock.NewRepository(t)
	service := NewMapPoolService(mapRepo, fixedIDGen{id: "m-new"})

	mapRepo.
		On("ListByGuild", mock.Anything, "g1").
		Return([]gamemap.Map{{ID: "m-vault", GuildID: "g1", Name: "Vault", Enabled: true}}, nil).
		Once()

	_, err := service.AddMap(context.Background(), "g1", "vault")
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestMapPoolService_RateMap_UnknownMapUsingMockery(t *testing.T) {
	t.Parallel()

	mapRepo := gamemapmock.NewRepository(t)
	service := NewMapPoolService(mapRepo, fixedIDGen{id: "m-new"})

	mapRepo.
		On("ListByGuild", mock.Anything, "g1").
		Return([]gamemap.Map{{ID: "m-dust", GuildID: "g1", Name: "Dust", Enabled: true}}, nil).
		Once()

	err := service.RateMap(context.Background(), "g1", "p1", "m-ghost", 5)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
