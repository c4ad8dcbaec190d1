package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	db "github.com/deepakscse/auction-BE/internal/db/sqlc"
)

func doRequest(t *testing.T, server *Server, method, target, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	if bearer != "" {
		setAuthorization(req, bearer)
	}

	recorder := httptest.NewRecorder()
	server.router.ServeHTTP(recorder, req)
	return recorder
}

func createPlayers(t *testing.T, store *db.MemStore, names ...string) []db.Player {
	t.Helper()

	players := make([]db.Player, 0, len(names))
	for i, name := range names {
		player, err := store.CreatePlayer(context.Background(), db.CreatePlayerParams{
			Name:            name,
			Slug:            fmt.Sprintf("%s-%d", name, i),
			AffiliationRole: "Student",
		})
		if err != nil {
			t.Fatalf("CreatePlayer: %v", err)
		}
		players = append(players, player)
	}
	return players
}

func TestAuctionStatusDefaultsInactive(t *testing.T) {
	store := db.NewMemStore()
	server, _ := newTestServer(t, store)

	recorder := doRequest(t, server, http.MethodGet, "/v1/auction/status", "")
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	var resp struct {
		Active      bool   `json:"active"`
		LastEventID int64  `json:"last_event_id"`
		CurrentID   *int64 `json:"current_player_id"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Active {
		t.Fatal("auction should default to inactive")
	}
	if resp.CurrentID != nil {
		t.Fatalf("current_player_id = %v, want nil", resp.CurrentID)
	}
	if resp.LastEventID != 0 {
		t.Fatalf("last_event_id = %d, want 0", resp.LastEventID)
	}
}

func TestStartStopAuction(t *testing.T) {
	store := db.NewMemStore()
	server, _ := newTestServer(t, store)
	adminBearer := bearerToken(t, server, "admin-1", "admin", nil)

	if recorder := doRequest(t, server, http.MethodPost, "/v1/auction/start", adminBearer); recorder.Code != http.StatusOK {
		t.Fatalf("start status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	cfg, err := store.GetAuctionConfig(context.Background())
	if err != nil {
		t.Fatalf("GetAuctionConfig: %v", err)
	}
	if !cfg.Active || cfg.StartedAt == nil {
		t.Fatalf("config after start = %+v, want active with started_at", cfg)
	}

	if recorder := doRequest(t, server, http.MethodPost, "/v1/auction/stop", adminBearer); recorder.Code != http.StatusOK {
		t.Fatalf("stop status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	events := server.eventHub.Events(0, 0)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	for _, evt := range events {
		if evt.Type != "auction_status" {
			t.Fatalf("event type = %q, want auction_status", evt.Type)
		}
	}
	if events[0].Data["active"] != true || events[1].Data["active"] != false {
		t.Fatalf("event payloads = %v, %v", events[0].Data, events[1].Data)
	}
}

func TestStartAuctionRequiresAdmin(t *testing.T) {
	store := db.NewMemStore()
	server, _ := newTestServer(t, store)

	memberBearer := bearerToken(t, server, "member-1", "member", nil)
	if recorder := doRequest(t, server, http.MethodPost, "/v1/auction/start", memberBearer); recorder.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusForbidden)
	}

	if recorder := doRequest(t, server, http.MethodPost, "/v1/auction/start", ""); recorder.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusUnauthorized)
	}
}

// The rotation always proposes the lowest-ID available player, so selling or
// skipping does not shuffle the order.
func TestNextPlayerRotation(t *testing.T) {
	store := db.NewMemStore()
	server, _ := newTestServer(t, store)
	players := createPlayers(t, store, "first", "second", "third")
	adminBearer := bearerToken(t, server, "admin-1", "admin", nil)

	recorder := doRequest(t, server, http.MethodPost, "/v1/auction/next_player", adminBearer)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	var resp struct {
		Player struct {
			ID int64 `json:"id"`
		} `json:"player"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Player.ID != players[0].ID {
		t.Fatalf("next player = %d, want %d", resp.Player.ID, players[0].ID)
	}

	// Still the same player while it remains available.
	recorder = doRequest(t, server, http.MethodPost, "/v1/auction/next_player", adminBearer)
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Player.ID != players[0].ID {
		t.Fatalf("next player = %d, want %d", resp.Player.ID, players[0].ID)
	}

	// Once the first player leaves the available pool the rotation advances.
	ctx := context.Background()
	team, err := store.CreateTeam(ctx, db.CreateTeamParams{Name: "Strikers", Budget: 1000})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	if _, err = store.SetAuctionActive(ctx, true); err != nil {
		t.Fatalf("SetAuctionActive: %v", err)
	}
	if _, err = store.PlaceBidTx(ctx, db.PlaceBidTxParams{PlayerID: players[0].ID, TeamID: team.ID, Amount: 100}); err != nil {
		t.Fatalf("PlaceBidTx: %v", err)
	}
	if _, err = store.MarkPlayerSoldTx(ctx, players[0].ID); err != nil {
		t.Fatalf("MarkPlayerSoldTx: %v", err)
	}
	// A bid moves the second player to in_auction, taking it out of the pool too.
	if _, err = store.PlaceBidTx(ctx, db.PlaceBidTxParams{PlayerID: players[1].ID, TeamID: team.ID, Amount: 100}); err != nil {
		t.Fatalf("PlaceBidTx: %v", err)
	}

	recorder = doRequest(t, server, http.MethodPost, "/v1/auction/next_player", adminBearer)
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Player.ID != players[2].ID {
		t.Fatalf("next player = %d, want %d", resp.Player.ID, players[2].ID)
	}
}

func TestNextPlayerExhausted(t *testing.T) {
	store := db.NewMemStore()
	server, _ := newTestServer(t, store)
	adminBearer := bearerToken(t, server, "admin-1", "admin", nil)

	recorder := doRequest(t, server, http.MethodPost, "/v1/auction/next_player", adminBearer)
	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	var resp struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if resp.Message != "No more available players" {
		t.Fatalf("message = %q", resp.Message)
	}
}

func TestSetCurrentPlayer(t *testing.T) {
	store := db.NewMemStore()
	server, _ := newTestServer(t, store)
	players := createPlayers(t, store, "first")
	adminBearer := bearerToken(t, server, "admin-1", "admin", nil)

	target := fmt.Sprintf("/v1/auction/set_current_player/%d", players[0].ID)
	if recorder := doRequest(t, server, http.MethodPost, target, adminBearer); recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	cfg, err := store.GetAuctionConfig(context.Background())
	if err != nil {
		t.Fatalf("GetAuctionConfig: %v", err)
	}
	if cfg.CurrentPlayerID == nil || *cfg.CurrentPlayerID != players[0].ID {
		t.Fatalf("current_player_id = %v, want %d", cfg.CurrentPlayerID, players[0].ID)
	}

	events := server.eventHub.Events(0, 0)
	if len(events) != 1 || events[0].Type != "current_player_changed" {
		t.Fatalf("events = %+v, want one current_player_changed", events)
	}

	if recorder := doRequest(t, server, http.MethodPost, "/v1/auction/set_current_player/999", adminBearer); recorder.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", recorder.Code, http.StatusNotFound)
	}
}

// Existence is the only requirement; an admin may put a sold player back on
// the podium, for example to replay the sale for viewers.
func TestSetCurrentPlayerAllowsSoldPlayer(t *testing.T) {
	store := db.NewMemStore()
	server, _ := newTestServer(t, store)
	players := createPlayers(t, store, "first")
	ctx := context.Background()

	team, err := store.CreateTeam(ctx, db.CreateTeamParams{Name: "Strikers", Budget: 1000})
	if err != nil {
		t.Fatalf("CreateTeam: %v", err)
	}
	if _, err = store.SetAuctionActive(ctx, true); err != nil {
		t.Fatalf("SetAuctionActive: %v", err)
	}
	if _, err = store.PlaceBidTx(ctx, db.PlaceBidTxParams{PlayerID: players[0].ID, TeamID: team.ID, Amount: 100}); err != nil {
		t.Fatalf("PlaceBidTx: %v", err)
	}
	if _, err = store.MarkPlayerSoldTx(ctx, players[0].ID); err != nil {
		t.Fatalf("MarkPlayerSoldTx: %v", err)
	}

	adminBearer := bearerToken(t, server, "admin-1", "admin", nil)
	target := fmt.Sprintf("/v1/auction/set_current_player/%d", players[0].ID)
	if recorder := doRequest(t, server, http.MethodPost, target, adminBearer); recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
	}

	cfg, err := store.GetAuctionConfig(ctx)
	if err != nil {
		t.Fatalf("GetAuctionConfig: %v", err)
	}
	if cfg.CurrentPlayerID == nil || *cfg.CurrentPlayerID != players[0].ID {
		t.Fatalf("current_player_id = %v, want %d", cfg.CurrentPlayerID, players[0].ID)
	}
}

func TestGetCurrentPlayer(t *testing.T) {
	t.Run("none set", func(t *testing.T) {
		store := db.NewMemStore()
		server, _ := newTestServer(t, store)

		recorder := doRequest(t, server, http.MethodGet, "/v1/auction/current_player", "")
		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d", recorder.Code)
		}

		var resp struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Message != "No current player" {
			t.Fatalf("message = %q", resp.Message)
		}
	})

	t.Run("resolves the player", func(t *testing.T) {
		store := db.NewMemStore()
		server, _ := newTestServer(t, store)
		players := createPlayers(t, store, "first")
		if _, err := store.SetCurrentPlayer(context.Background(), players[0].ID); err != nil {
			t.Fatalf("SetCurrentPlayer: %v", err)
		}

		recorder := doRequest(t, server, http.MethodGet, "/v1/auction/current_player", "")
		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
		}

		var resp struct {
			Player db.Player `json:"player"`
		}
		if err := json.Unmarshal(recorder.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if resp.Player.ID != players[0].ID {
			t.Fatalf("player = %d, want %d", resp.Player.ID, players[0].ID)
		}
	})

	t.Run("orphan reference", func(t *testing.T) {
		store := db.NewMemStore()
		server, _ := newTestServer(t, store)
		players := createPlayers(t, store, "first")
		ctx := context.Background()
		if _, err := store.SetCurrentPlayer(ctx, players[0].ID); err != nil {
			t.Fatalf("SetCurrentPlayer: %v", err)
		}
		if err := store.DeletePlayer(ctx, players[0].ID); err != nil {
			t.Fatalf("DeletePlayer: %v", err)
		}

		recorder := doRequest(t, server, http.MethodGet, "/v1/auction/current_player", "")
		if recorder.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d, want %d", recorder.Code, http.StatusInternalServerError)
		}
	})
}

func TestMarkPlayerSold(t *testing.T) {
	newSoldFixture := func(t *testing.T) (*Server, *fakeTaskDistributor, db.Player, db.Team, string) {
		store := db.NewMemStore()
		server, distributor := newTestServer(t, store)
		players := createPlayers(t, store, "first")
		ctx := context.Background()

		team, err := store.CreateTeam(ctx, db.CreateTeamParams{Name: "Strikers", Budget: 1000})
		if err != nil {
			t.Fatalf("CreateTeam: %v", err)
		}
		if _, err = store.SetAuctionActive(ctx, true); err != nil {
			t.Fatalf("SetAuctionActive: %v", err)
		}
		if _, err = store.PlaceBidTx(ctx, db.PlaceBidTxParams{PlayerID: players[0].ID, TeamID: team.ID, Amount: 400}); err != nil {
			t.Fatalf("PlaceBidTx: %v", err)
		}

		return server, distributor, players[0], team, bearerToken(t, server, "admin-1", "admin", nil)
	}

	t.Run("finalizes and announces", func(t *testing.T) {
		server, distributor, player, team, adminBearer := newSoldFixture(t)

		target := fmt.Sprintf("/v1/auction/sold/%d", player.ID)
		recorder := doRequest(t, server, http.MethodPost, target, adminBearer)
		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", recorder.Code, recorder.Body.String())
		}

		events := server.eventHub.Events(0, 0)
		last := events[len(events)-1]
		if last.Type != "player_sold" {
			t.Fatalf("last event type = %q, want player_sold", last.Type)
		}

		deadline := time.Now().Add(2 * time.Second)
		for distributor.announceCount() == 0 && time.Now().Before(deadline) {
			time.Sleep(10 * time.Millisecond)
		}
		if distributor.announceCount() != 1 {
			t.Fatalf("got %d announcements, want 1", distributor.announceCount())
		}

		distributor.mu.Lock()
		payload := distributor.announcements[0]
		distributor.mu.Unlock()
		if payload.TeamID != team.ID || payload.Amount != 400 {
			t.Fatalf("announcement payload = %+v", payload)
		}
		if payload.TeamName != "Strikers" {
			t.Fatalf("team name = %q, want Strikers", payload.TeamName)
		}
	})

	t.Run("not idempotent", func(t *testing.T) {
		server, _, player, _, adminBearer := newSoldFixture(t)

		target := fmt.Sprintf("/v1/auction/sold/%d", player.ID)
		if recorder := doRequest(t, server, http.MethodPost, target, adminBearer); recorder.Code != http.StatusOK {
			t.Fatalf("first sell status = %d", recorder.Code)
		}
		if recorder := doRequest(t, server, http.MethodPost, target, adminBearer); recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("second sell status = %d, want %d", recorder.Code, http.StatusUnprocessableEntity)
		}
	})

	t.Run("requires a bid", func(t *testing.T) {
		store := db.NewMemStore()
		server, _ := newTestServer(t, store)
		players := createPlayers(t, store, "first")
		adminBearer := bearerToken(t, server, "admin-1", "admin", nil)

		target := fmt.Sprintf("/v1/auction/sold/%d", players[0].ID)
		if recorder := doRequest(t, server, http.MethodPost, target, adminBearer); recorder.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want %d", recorder.Code, http.StatusUnprocessableEntity)
		}
	})

	t.Run("unknown player", func(t *testing.T) {
		store := db.NewMemStore()
		server, _ := newTestServer(t, store)
		adminBearer := bearerToken(t, server, "admin-1", "admin", nil)

		if recorder := doRequest(t, server, http.MethodPost, "/v1/auction/sold/999", adminBearer); recorder.Code != http.StatusNotFound {
			t.Fatalf("status = %d, want %d", recorder.Code, http.StatusNotFound)
		}
	})
}
