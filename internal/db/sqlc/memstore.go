package db

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemStore is an in-memory Store with the same conditional-update semantics
// as the SQL-backed store. It exists so handlers can be tested in isolation
// without a database; a single mutex stands in for row locks.
type MemStore struct {
	mu            sync.Mutex
	users         map[string]User
	players       map[int64]Player
	teams         map[int64]Team
	config        *AuctionConfig
	notifications []Notification
	nextPlayerID  int64
	nextTeamID    int64
	nextNotifID   int64
}

var _ Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		users:   make(map[string]User),
		players: make(map[int64]Player),
		teams:   make(map[int64]Team),
	}
}

func clonePlayer(p Player) Player {
	out := p
	out.Category = cloneStringPtr(p.Category)
	out.Age = cloneInt32Ptr(p.Age)
	out.BattingStyle = cloneStringPtr(p.BattingStyle)
	out.BowlingStyle = cloneStringPtr(p.BowlingStyle)
	out.Bio = cloneStringPtr(p.Bio)
	out.BasePrice = cloneInt64Ptr(p.BasePrice)
	out.FinalBid = cloneInt64Ptr(p.FinalBid)
	out.FinalTeamID = cloneInt64Ptr(p.FinalTeamID)
	return out
}

func cloneStringPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneInt32Ptr(i *int32) *int32 {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

func cloneInt64Ptr(i *int64) *int64 {
	if i == nil {
		return nil
	}
	v := *i
	return &v
}

func cloneTimePtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func (m *MemStore) cloneConfig() (AuctionConfig, bool) {
	if m.config == nil {
		return AuctionConfig{}, false
	}
	cfg := *m.config
	cfg.CurrentPlayerID = cloneInt64Ptr(m.config.CurrentPlayerID)
	cfg.StartedAt = cloneTimePtr(m.config.StartedAt)
	cfg.StoppedAt = cloneTimePtr(m.config.StoppedAt)
	return cfg, true
}

// --- users ---

func (m *MemStore) CreateUser(_ context.Context, arg CreateUserParams) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == arg.Email {
			return User{}, ErrUniqueViolation
		}
	}

	now := time.Now()
	user := User{
		ID:             arg.ID,
		Email:          arg.Email,
		HashedPassword: arg.HashedPassword,
		FullName:       arg.FullName,
		Role:           arg.Role,
		TeamID:         cloneInt64Ptr(arg.TeamID),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *MemStore) GetUserByID(_ context.Context, id string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[id]
	if !ok {
		return User{}, ErrRecordNotFound
	}
	return user, nil
}

func (m *MemStore) GetUserByEmail(_ context.Context, email string) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrRecordNotFound
}

func (m *MemStore) UpdateUserTeam(_ context.Context, arg UpdateUserTeamParams) (User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, ok := m.users[arg.ID]
	if !ok {
		return User{}, ErrRecordNotFound
	}
	user.TeamID = cloneInt64Ptr(arg.TeamID)
	user.UpdatedAt = time.Now()
	m.users[arg.ID] = user
	return user, nil
}

func (m *MemStore) ListUsersByTeamID(_ context.Context, teamID int64) ([]User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := []User{}
	for _, u := range m.users {
		if u.TeamID != nil && *u.TeamID == teamID {
			users = append(users, u)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].CreatedAt.Before(users[j].CreatedAt) })
	return users, nil
}

// --- players ---

func (m *MemStore) CreatePlayer(_ context.Context, arg CreatePlayerParams) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextPlayerID++
	now := time.Now()
	player := Player{
		ID:              m.nextPlayerID,
		Name:            arg.Name,
		Slug:            arg.Slug,
		AffiliationRole: arg.AffiliationRole,
		Category:        cloneStringPtr(arg.Category),
		Age:             cloneInt32Ptr(arg.Age),
		BattingStyle:    cloneStringPtr(arg.BattingStyle),
		BowlingStyle:    cloneStringPtr(arg.BowlingStyle),
		Bio:             cloneStringPtr(arg.Bio),
		BasePriceStatus: BasePriceStatusPending,
		Status:          PlayerStatusAvailable,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	m.players[player.ID] = player
	return clonePlayer(player), nil
}

func (m *MemStore) GetPlayerByID(_ context.Context, id int64) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	player, ok := m.players[id]
	if !ok {
		return Player{}, ErrRecordNotFound
	}
	return clonePlayer(player), nil
}

func (m *MemStore) GetPlayerBySlug(_ context.Context, slug string) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.players {
		if p.Slug == slug {
			return clonePlayer(p), nil
		}
	}
	return Player{}, ErrRecordNotFound
}

func (m *MemStore) GetPlayerByIDForUpdate(ctx context.Context, id int64) (Player, error) {
	return m.GetPlayerByID(ctx, id)
}

func (m *MemStore) GetNextAvailablePlayer(_ context.Context) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := m.sortedPlayerIDs()
	for _, id := range ids {
		if m.players[id].Status == PlayerStatusAvailable {
			return clonePlayer(m.players[id]), nil
		}
	}
	return Player{}, ErrRecordNotFound
}

func (m *MemStore) ListPlayers(_ context.Context) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	players := []Player{}
	for _, id := range m.sortedPlayerIDs() {
		players = append(players, clonePlayer(m.players[id]))
	}
	return players, nil
}

func (m *MemStore) ListPendingBasePricePlayers(_ context.Context) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	players := []Player{}
	for _, id := range m.sortedPlayerIDs() {
		if m.players[id].BasePriceStatus == BasePriceStatusPending {
			players = append(players, clonePlayer(m.players[id]))
		}
	}
	return players, nil
}

func (m *MemStore) UpdatePlayer(_ context.Context, arg UpdatePlayerParams) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	player, ok := m.players[arg.ID]
	if !ok {
		return Player{}, ErrRecordNotFound
	}
	if arg.Name != nil {
		player.Name = *arg.Name
	}
	if arg.AffiliationRole != nil {
		player.AffiliationRole = *arg.AffiliationRole
	}
	if arg.Category != nil {
		player.Category = cloneStringPtr(arg.Category)
	}
	if arg.Age != nil {
		player.Age = cloneInt32Ptr(arg.Age)
	}
	if arg.BattingStyle != nil {
		player.BattingStyle = cloneStringPtr(arg.BattingStyle)
	}
	if arg.BowlingStyle != nil {
		player.BowlingStyle = cloneStringPtr(arg.BowlingStyle)
	}
	if arg.Bio != nil {
		player.Bio = cloneStringPtr(arg.Bio)
	}
	player.UpdatedAt = time.Now()
	m.players[arg.ID] = player
	return clonePlayer(player), nil
}

func (m *MemStore) SetPlayerBasePrice(_ context.Context, arg SetPlayerBasePriceParams) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	player, ok := m.players[arg.ID]
	if !ok {
		return Player{}, ErrRecordNotFound
	}
	price := arg.BasePrice
	player.BasePrice = &price
	player.BasePriceStatus = BasePriceStatusSet
	player.UpdatedAt = time.Now()
	m.players[arg.ID] = player
	return clonePlayer(player), nil
}

func (m *MemStore) DeletePlayer(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.players[id]; !ok {
		return ErrRecordNotFound
	}
	delete(m.players, id)
	return nil
}

func (m *MemStore) sortedPlayerIDs() []int64 {
	ids := make([]int64, 0, len(m.players))
	for id := range m.players {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// --- teams ---

func (m *MemStore) CreateTeam(_ context.Context, arg CreateTeamParams) (Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextTeamID++
	now := time.Now()
	team := Team{
		ID:        m.nextTeamID,
		Name:      arg.Name,
		Budget:    arg.Budget,
		CreatedAt: now,
		UpdatedAt: now,
	}
	m.teams[team.ID] = team
	return team, nil
}

func (m *MemStore) GetTeamByID(_ context.Context, id int64) (Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	team, ok := m.teams[id]
	if !ok {
		return Team{}, ErrRecordNotFound
	}
	return team, nil
}

func (m *MemStore) GetTeamByIDForUpdate(ctx context.Context, id int64) (Team, error) {
	return m.GetTeamByID(ctx, id)
}

func (m *MemStore) ListTeams(_ context.Context) ([]Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]int64, 0, len(m.teams))
	for id := range m.teams {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	teams := []Team{}
	for _, id := range ids {
		teams = append(teams, m.teams[id])
	}
	return teams, nil
}

func (m *MemStore) UpdateTeam(_ context.Context, arg UpdateTeamParams) (Team, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	team, ok := m.teams[arg.ID]
	if !ok {
		return Team{}, ErrRecordNotFound
	}
	if arg.Name != nil {
		team.Name = *arg.Name
	}
	if arg.Budget != nil {
		team.Budget = *arg.Budget
	}
	team.UpdatedAt = time.Now()
	m.teams[arg.ID] = team
	return team, nil
}

func (m *MemStore) DeleteTeam(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.teams[id]; !ok {
		return ErrRecordNotFound
	}
	delete(m.teams, id)
	return nil
}

// --- auction config ---

func (m *MemStore) GetAuctionConfig(_ context.Context) (AuctionConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cfg, ok := m.cloneConfig()
	if !ok {
		return AuctionConfig{}, ErrRecordNotFound
	}
	return cfg, nil
}

func (m *MemStore) SetAuctionActive(_ context.Context, active bool) (AuctionConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if m.config == nil {
		m.config = &AuctionConfig{Key: "auction"}
	}
	m.config.Active = active
	if active {
		m.config.StartedAt = &now
	} else {
		m.config.StoppedAt = &now
	}
	m.config.UpdatedAt = now

	cfg, _ := m.cloneConfig()
	return cfg, nil
}

func (m *MemStore) SetCurrentPlayer(_ context.Context, playerID int64) (AuctionConfig, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if m.config == nil {
		m.config = &AuctionConfig{Key: "auction"}
	}
	m.config.CurrentPlayerID = &playerID
	m.config.UpdatedAt = now

	cfg, _ := m.cloneConfig()
	return cfg, nil
}

// --- notifications ---

func (m *MemStore) CreateNotification(_ context.Context, arg CreateNotificationParams) (Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextNotifID++
	notif := Notification{
		ID:          m.nextNotifID,
		RecipientID: arg.RecipientID,
		Title:       arg.Title,
		Message:     arg.Message,
		Type:        arg.Type,
		ReferenceID: arg.ReferenceID,
		CreatedAt:   time.Now(),
	}
	m.notifications = append(m.notifications, notif)
	return notif, nil
}

func (m *MemStore) ListNotificationsByRecipient(_ context.Context, recipientID string) ([]Notification, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	notifs := []Notification{}
	for i := len(m.notifications) - 1; i >= 0; i-- {
		if m.notifications[i].RecipientID == recipientID {
			notifs = append(notifs, m.notifications[i])
		}
	}
	return notifs, nil
}

// --- transactions ---

// PlaceBidTx mirrors the SQL transaction: the store mutex plays the role of
// the player/team row locks and validateBid enforces the same rules.
func (m *MemStore) PlaceBidTx(_ context.Context, arg PlaceBidTxParams) (PlaceBidTxResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result PlaceBidTxResult

	player, ok := m.players[arg.PlayerID]
	if !ok {
		return result, ErrRecordNotFound
	}
	team, ok := m.teams[arg.TeamID]
	if !ok {
		return result, ErrRecordNotFound
	}
	cfg, cfgFound := m.cloneConfig()

	if err := validateBid(cfg, cfgFound, clonePlayer(player), team, arg.Amount); err != nil {
		return result, err
	}

	result.PreviousTeamID = cloneInt64Ptr(player.FinalTeamID)

	now := time.Now()
	amount := arg.Amount
	teamID := arg.TeamID
	player.FinalBid = &amount
	player.FinalTeamID = &teamID
	player.Status = PlayerStatusInAuction
	player.UpdatedAt = now
	m.players[player.ID] = player

	team.Budget -= arg.Amount
	team.UpdatedAt = now
	m.teams[team.ID] = team

	result.Player = clonePlayer(player)
	result.Team = team
	result.Amount = arg.Amount
	return result, nil
}

func (m *MemStore) MarkPlayerSoldTx(_ context.Context, playerID int64) (Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	player, ok := m.players[playerID]
	if !ok {
		return Player{}, ErrRecordNotFound
	}
	if player.Status == PlayerStatusSold {
		return Player{}, ErrPlayerAlreadySold
	}
	if player.FinalBid == nil || player.FinalTeamID == nil {
		return Player{}, ErrNoBidPlaced
	}

	player.Status = PlayerStatusSold
	player.UpdatedAt = time.Now()
	m.players[playerID] = player
	return clonePlayer(player), nil
}
