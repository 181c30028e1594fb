package usecase

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/openmix/mixqueue/internal/domain/matchmaking"
)

func TestLobbyJanitor_ExpiresStaleLobbies(t *testing.T) {
	t.Parallel()

	directory := matchmaking.NewDirectory(matchmaking.DefaultSettings(), &usecaseSeqIDs{}, func() *rand.Rand {
		return rand.New(rand.NewPCG(3, 5))
	})
	guild, _ := directory.Register("g1")
	for _, p := range []matchmaking.Participant{
		{ID: "p1", Rating: 1000}, {ID: "p2", Rating: 1000},
		{ID: "p3", Rating: 1000}, {ID: "p4", Rating: 1000},
	} {
		if err := guild.Enqueue(p); err != nil {
			t.Fatalf("enqueue %s: %v", p.ID, err)
		}
	}
	if _, err := guild.FormLobby([]matchmaking.MapID{"alpha"}, matchmaking.PreferenceMatrix{}, matchmaking.MapHistory{}); err != nil {
		t.Fatalf("form lobby: %v", err)
	}

	janitor := NewLobbyJanitor(directory, nil, 10*time.Millisecond, 10*time.Millisecond)
	if err := janitor.Start(context.Background()); err != nil {
		t.Fatalf("start janitor: %v", err)
	}
	defer janitor.Stop()

	deadline := time.Now().Add(2 * time.Second)
	for {
		lobbies, _ := guild.Counts()
		if lobbies == 0 {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("stale lobby was not expired, still %d open", lobbies)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestLobbyJanitor_KeepsFreshLobbies(t *testing.T) {
	t.Parallel()

	directory := matchmaking.NewDirectory(matchmaking.DefaultSettings(), &usecaseSeqIDs{}, nil)
	guild, _ := directory.Register("g1")
	for _, p := range []matchmaking.Participant{
		{ID: "p1", Rating: 1000}, {ID: "p2", Rating: 1000},
		{ID: "p3", Rating: 1000}, {ID: "p4", Rating: 1000},
	} {
		if err := guild.Enqueue(p); err != nil {
			t.Fatalf("enqueue %s: %v", p.ID, err)
		}
	}
	if _, err := guild.FormLobby([]matchmaking.MapID{"alpha"}, matchmaking.PreferenceMatrix{}, matchmaking.MapHistory{}); err != nil {
		t.Fatalf("form lobby: %v", err)
	}

	janitor := NewLobbyJanitor(directory, nil, time.Hour, 10*time.Millisecond)
	if err := janitor.Start(context.Background()); err != nil {
		t.Fatalf("start janitor: %v", err)
	}

	time.Sleep(100 * time.Millisecond)
	janitor.Stop()

	lobbies, _ := guild.Counts()
	if lobbies != 1 {
		t.Fatalf("fresh lobby must survive the sweep, got %d", lobbies)
	}
}

func TestLobbyJanitor_StartValidatesConfig(t *testing.T) {
	t.Parallel()

	directory := matchmaking.NewDirectory(matchmaking.DefaultSettings(), &usecaseSeqIDs{}, nil)
	janitor := NewLobbyJanitor(directory, nil, 0, time.Second)
	if err := janitor.Start(context.Background()); err == nil {
		t.Fatal("expected error for non-positive max age")
	}

	janitor = NewLobbyJanitor(directory, nil, time.Second, time.Second)
	if err := janitor.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := janitor.Start(context.Background()); err == nil {
		t.Fatal("expected error on double start")
	}
	janitor.Stop()
}
