package ticketing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/lynx/pkg/entities"
	"github.com/Jacobbrewer1/lynx/pkg/logging"
	"github.com/stretchr/testify/require"
)

// fakeSession is an in-memory Session for tests.
type fakeSession struct {
	guilds   map[string]*discordgo.Guild
	users    map[string]*discordgo.User
	members  map[string]*discordgo.Member
	roles    map[string][]*discordgo.Role
	channels map[string]*discordgo.Channel

	nextChannelID int

	created      []discordgo.GuildChannelCreateData
	edits        map[string][]*discordgo.ChannelEdit
	deleted      []string
	permsSet     map[string][]string
	permsDeleted map[string][]string
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		guilds:   make(map[string]*discordgo.Guild),
		users:    make(map[string]*discordgo.User),
		members:  make(map[string]*discordgo.Member),
		roles:    make(map[string][]*discordgo.Role),
		channels: make(map[string]*discordgo.Channel),

		edits:        make(map[string][]*discordgo.ChannelEdit),
		permsSet:     make(map[string][]string),
		permsDeleted: make(map[string][]string),
	}
}

func (s *fakeSession) addGuildMember(guildID string, userID string, roleIDs ...string) {
	if _, ok := s.guilds[guildID]; !ok {
		s.guilds[guildID] = &discordgo.Guild{ID: guildID}
	}
	s.users[userID] = &discordgo.User{ID: userID}
	s.members[guildID+"/"+userID] = &discordgo.Member{User: &discordgo.User{ID: userID}, Roles: roleIDs}
}

func (s *fakeSession) addChannel(id string, channelType discordgo.ChannelType) {
	s.channels[id] = &discordgo.Channel{ID: id, Type: channelType}
}

func (s *fakeSession) Guild(guildID string, _ ...discordgo.RequestOption) (*discordgo.Guild, error) {
	g, ok := s.guilds[guildID]
	if !ok {
		return nil, errors.New("guild not found")
	}
	return g, nil
}

func (s *fakeSession) User(userID string, _ ...discordgo.RequestOption) (*discordgo.User, error) {
	u, ok := s.users[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	return u, nil
}

func (s *fakeSession) GuildMember(guildID string, userID string, _ ...discordgo.RequestOption) (*discordgo.Member, error) {
	m, ok := s.members[guildID+"/"+userID]
	if !ok {
		return nil, errors.New("member not found")
	}
	return m, nil
}

func (s *fakeSession) GuildRoles(guildID string, _ ...discordgo.RequestOption) ([]*discordgo.Role, error) {
	return s.roles[guildID], nil
}

func (s *fakeSession) Channel(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	c, ok := s.channels[channelID]
	if !ok {
		return nil, errors.New("channel not found")
	}
	return c, nil
}

func (s *fakeSession) GuildChannelCreateComplex(guildID string, data discordgo.GuildChannelCreateData, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	s.created = append(s.created, data)
	s.nextChannelID++

	c := &discordgo.Channel{
		ID:       fmt.Sprintf("chan-%d", s.nextChannelID),
		GuildID:  guildID,
		Name:     data.Name,
		Type:     data.Type,
		Topic:    data.Topic,
		ParentID: data.ParentID,
	}
	s.channels[c.ID] = c
	return c, nil
}

func (s *fakeSession) ChannelEditComplex(channelID string, data *discordgo.ChannelEdit, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	c, ok := s.channels[channelID]
	if !ok {
		return nil, errors.New("channel not found")
	}

	s.edits[channelID] = append(s.edits[channelID], data)
	if data.Name != "" {
		c.Name = data.Name
	}
	if data.ParentID != "" {
		c.ParentID = data.ParentID
	}
	return c, nil
}

func (s *fakeSession) ChannelDelete(channelID string, _ ...discordgo.RequestOption) (*discordgo.Channel, error) {
	c, ok := s.channels[channelID]
	if !ok {
		return nil, errors.New("channel not found")
	}

	delete(s.channels, channelID)
	s.deleted = append(s.deleted, channelID)
	return c, nil
}

func (s *fakeSession) ChannelPermissionSet(channelID string, targetID string, targetType discordgo.PermissionOverwriteType, allow int64, deny int64, _ ...discordgo.RequestOption) error {
	s.permsSet[channelID] = append(s.permsSet[channelID], targetID)
	return nil
}

func (s *fakeSession) ChannelPermissionDelete(channelID string, targetID string, _ ...discordgo.RequestOption) error {
	s.permsDeleted[channelID] = append(s.permsDeleted[channelID], targetID)
	return nil
}

func (s *fakeSession) lastEdit(t *testing.T, channelID string) *discordgo.ChannelEdit {
	t.Helper()
	edits := s.edits[channelID]
	require.NotEmpty(t, edits, "expected an edit for channel %s", channelID)
	return edits[len(edits)-1]
}

const (
	testGuildID      = "guild-1"
	testUserID       = "user-1"
	testStaffRoleID  = "role-staff"
	testParentID     = "cat-open"
	testClosedCatID  = "cat-closed"
	testChannelTopic = "Support ticket"
)

func testSession() *fakeSession {
	s := newFakeSession()
	s.addGuildMember(testGuildID, testUserID)
	s.addChannel(testParentID, discordgo.ChannelTypeGuildCategory)
	s.addChannel(testClosedCatID, discordgo.ChannelTypeGuildCategory)
	s.roles[testGuildID] = []*discordgo.Role{{ID: testStaffRoleID}}
	return s
}

func testConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		ParentID:       testParentID,
		ClosedParentID: testClosedCatID,
		ChannelTopic:   testChannelTopic,
		StaffRoles:     []string{testStaffRoleID},
		Storage:        filepath.Join(t.TempDir(), "tickets.json"),
	}
}

func testManager(t *testing.T, s Session, cfg Config) *Manager {
	t.Helper()

	l, err := logging.CommonLogger(logging.NewConfig(`tests`))
	require.NoError(t, err, "Failed to create logger")

	m, err := NewManager(s, cfg, l)
	require.NoError(t, err)
	require.NoError(t, m.Init(context.Background()))
	return m
}

func storedTickets(t *testing.T, path string) []*entities.Ticket {
	t.Helper()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	got := make([]*entities.Ticket, 0)
	require.NoError(t, json.Unmarshal(raw, &got))
	return got
}

func requireEvent(t *testing.T, m *Manager, want EventType) *Ticket {
	t.Helper()

	select {
	case e := <-m.Events():
		require.Equal(t, want, e.Type)
		require.NotNil(t, e.Ticket)
		return e.Ticket
	default:
		t.Fatalf("expected a %s event", want)
		return nil
	}
}

func drainEvents(m *Manager) {
	for {
		select {
		case <-m.Events():
		default:
			return
		}
	}
}

func TestNewManager_Validation(t *testing.T) {
	cfg := Config{ParentID: testParentID, Storage: "tickets.json"}

	tests := []struct {
		name    string
		session Session
		cfg     Config
		wantErr error
	}{
		{
			name:    "NilSession",
			session: nil,
			cfg:     cfg,
			wantErr: ErrNilSession,
		},
		{
			name:    "MissingParent",
			session: testSession(),
			cfg:     Config{Storage: "tickets.json"},
			wantErr: ErrMissingParent,
		},
		{
			name:    "MissingStorage",
			session: testSession(),
			cfg:     Config{ParentID: testParentID},
			wantErr: ErrMissingStorage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewManager(tt.session, tt.cfg, nil)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNewManager_ClosedParentDefaults(t *testing.T) {
	cfg := testConfig(t)
	cfg.ClosedParentID = ""

	m := testManager(t, testSession(), cfg)
	require.Equal(t, testParentID, m.cfg.ClosedParentID)
}

func TestManager_NotReady(t *testing.T) {
	m, err := NewManager(testSession(), testConfig(t), nil)
	require.NoError(t, err)
	require.Equal(t, StateUninitialized, m.State())

	ctx := context.Background()

	_, err = m.CreateTicket(ctx, testGuildID, testUserID)
	require.ErrorIs(t, err, ErrNotReady)

	_, err = m.CloseTicket(ctx, nil)
	require.ErrorIs(t, err, ErrNotReady)

	_, err = m.ReopenTicket(ctx, nil)
	require.ErrorIs(t, err, ErrNotReady)

	_, err = m.RenameTicket(ctx, nil, "new")
	require.ErrorIs(t, err, ErrNotReady)

	_, err = m.DeleteTicket(ctx, nil)
	require.ErrorIs(t, err, ErrNotReady)

	_, err = m.ClaimTicket(ctx, nil, testUserID)
	require.ErrorIs(t, err, ErrNotReady)

	_, err = m.CheckDoubleTickets(testGuildID, testUserID)
	require.ErrorIs(t, err, ErrNotReady)
}

func TestManager_Init(t *testing.T) {
	cfg := testConfig(t)

	stored := []*entities.Ticket{
		{Number: 1, GuildID: testGuildID, ChannelID: "chan-a", CreatorID: testUserID, Participants: []string{}, Status: entities.TicketStatusOpen},
		{Number: 2, GuildID: testGuildID, ChannelID: "chan-b", CreatorID: "user-2", Participants: []string{}, Status: entities.TicketStatusClosed},
	}
	raw, err := json.MarshalIndent(stored, "", "    ")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfg.Storage, raw, 0o644))

	m := testManager(t, testSession(), cfg)
	require.Equal(t, StateReady, m.State())
	require.Len(t, m.Tickets(), 2)

	ticket, ok := m.Ticket(testGuildID, 2)
	require.True(t, ok)
	require.Equal(t, entities.TicketStatusClosed, ticket.Status())

	// A second Init is rejected.
	require.ErrorIs(t, m.Init(context.Background()), ErrAlreadyInitialized)
}

func TestManager_Init_CorruptStorage(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, os.WriteFile(cfg.Storage, []byte(`{not json`), 0o644))

	m := testManager(t, testSession(), cfg)
	require.Equal(t, StateReady, m.State())
	require.Empty(t, m.Tickets())
}

func TestManager_CheckDoubleTickets(t *testing.T) {
	s := testSession()
	s.addGuildMember("guild-2", testUserID)
	m := testManager(t, s, testConfig(t))

	exists, err := m.CheckDoubleTickets(testGuildID, testUserID)
	require.NoError(t, err)
	require.False(t, exists)

	_, err = m.CreateTicket(context.Background(), testGuildID, testUserID)
	require.NoError(t, err)

	exists, err = m.CheckDoubleTickets(testGuildID, testUserID)
	require.NoError(t, err)
	require.True(t, exists)

	// Same user, different guild.
	exists, err = m.CheckDoubleTickets("guild-2", testUserID)
	require.NoError(t, err)
	require.False(t, exists)

	// Different user, same guild.
	exists, err = m.CheckDoubleTickets(testGuildID, "user-2")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestManager_CreateTicket(t *testing.T) {
	s := testSession()
	cfg := testConfig(t)
	m := testManager(t, s, cfg)

	ticket, err := m.CreateTicket(context.Background(), testGuildID, testUserID)
	require.NoError(t, err)

	require.Equal(t, 1, ticket.Number())
	require.Equal(t, testGuildID, ticket.GuildID())
	require.Equal(t, testUserID, ticket.CreatorID())
	require.Equal(t, entities.TicketStatusOpen, ticket.Status())
	require.Empty(t, ticket.Participants())
	require.False(t, ticket.CreatedAt().IsZero())

	// The channel was created under the parent category with the topic.
	require.Len(t, s.created, 1)
	created := s.created[0]
	require.Equal(t, "ticket-1", created.Name)
	require.Equal(t, discordgo.ChannelTypeGuildText, created.Type)
	require.Equal(t, testChannelTopic, created.Topic)
	require.Equal(t, testParentID, created.ParentID)

	// Permissions: @everyone denied, creator and staff role allowed.
	require.Len(t, created.PermissionOverwrites, 3)
	require.Equal(t, testGuildID, created.PermissionOverwrites[0].ID)
	require.EqualValues(t, discordgo.PermissionAll, created.PermissionOverwrites[0].Deny)
	require.Equal(t, testUserID, created.PermissionOverwrites[1].ID)
	require.EqualValues(t, discordgo.PermissionAllText, created.PermissionOverwrites[1].Allow)
	require.Equal(t, testStaffRoleID, created.PermissionOverwrites[2].ID)

	// The ticket is persisted with status open and no participants.
	stored := storedTickets(t, cfg.Storage)
	require.Len(t, stored, 1)
	require.Equal(t, 1, stored[0].Number)
	require.Equal(t, entities.TicketStatusOpen, stored[0].Status)
	require.Empty(t, stored[0].Participants)

	// The ticket is indexed and an event was emitted.
	got, ok := m.Ticket(testGuildID, 1)
	require.True(t, ok)
	require.Same(t, ticket, got)
	requireEvent(t, m, EventTicketCreated)
}

func TestManager_CreateTicket_SequentialNumbers(t *testing.T) {
	s := testSession()
	s.addGuildMember(testGuildID, "user-2")
	m := testManager(t, s, testConfig(t))

	first, err := m.CreateTicket(context.Background(), testGuildID, testUserID)
	require.NoError(t, err)
	require.Equal(t, 1, first.Number())

	second, err := m.CreateTicket(context.Background(), testGuildID, "user-2")
	require.NoError(t, err)
	require.Equal(t, 2, second.Number())
}

func TestManager_CreateTicket_NumbersPerGuild(t *testing.T) {
	s := testSession()
	s.addGuildMember("guild-2", testUserID)
	m := testManager(t, s, testConfig(t))

	first, err := m.CreateTicket(context.Background(), testGuildID, testUserID)
	require.NoError(t, err)
	require.Equal(t, 1, first.Number())

	// Numbering restarts in the second guild, and both tickets coexist in the
	// index because it is keyed by guild and number.
	other, err := m.CreateTicket(context.Background(), "guild-2", testUserID)
	require.NoError(t, err)
	require.Equal(t, 1, other.Number())

	got, ok := m.Ticket(testGuildID, 1)
	require.True(t, ok)
	require.Same(t, first, got)

	got, ok = m.Ticket("guild-2", 1)
	require.True(t, ok)
	require.Same(t, other, got)
}

func TestManager_CreateTicket_NotResolvable(t *testing.T) {
	s := testSession()
	m := testManager(t, s, testConfig(t))

	tests := []struct {
		name    string
		guildID string
		userID  string
	}{
		{
			name:    "UnknownGuild",
			guildID: "guild-nope",
			userID:  testUserID,
		},
		{
			name:    "UnknownUser",
			guildID: testGuildID,
			userID:  "user-nope",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.CreateTicket(context.Background(), tt.guildID, tt.userID)
			require.ErrorIs(t, err, ErrNotResolvable)
		})
	}
}

func TestManager_CreateTicket_NotAMember(t *testing.T) {
	s := testSession()
	// The user exists but is not a member of the guild.
	s.users["user-2"] = &discordgo.User{ID: "user-2"}
	m := testManager(t, s, testConfig(t))

	_, err := m.CreateTicket(context.Background(), testGuildID, "user-2")
	require.ErrorIs(t, err, ErrNotResolvable)
}

func TestManager_CreateTicket_InvalidCategory(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		s := testSession()
		delete(s.channels, testParentID)
		m := testManager(t, s, testConfig(t))

		_, err := m.CreateTicket(context.Background(), testGuildID, testUserID)
		require.ErrorIs(t, err, ErrInvalidCategory)
	})

	t.Run("NotACategory", func(t *testing.T) {
		s := testSession()
		s.addChannel(testParentID, discordgo.ChannelTypeGuildText)
		m := testManager(t, s, testConfig(t))

		_, err := m.CreateTicket(context.Background(), testGuildID, testUserID)
		require.ErrorIs(t, err, ErrInvalidCategory)
	})
}

func TestManager_CloseTicket(t *testing.T) {
	s := testSession()
	cfg := testConfig(t)
	m := testManager(t, s, cfg)

	ticket, err := m.CreateTicket(context.Background(), testGuildID, testUserID)
	require.NoError(t, err)
	drainEvents(m)

	closed, err := m.CloseTicket(context.Background(), ticket)
	require.NoError(t, err)

	// The returned entity is a replacement with the same number.
	require.NotSame(t, ticket, closed)
	require.Equal(t, ticket.Number(), closed.Number())
	require.Equal(t, entities.TicketStatusClosed, closed.Status())

	// The channel was renamed and moved to the closed category, with the
	// creator locked out.
	edit := s.lastEdit(t, ticket.ChannelID())
	require.Equal(t, "closed-1", edit.Name)
	require.Equal(t, testClosedCatID, edit.ParentID)
	require.Len(t, edit.PermissionOverwrites, 3)
	require.Equal(t, testUserID, edit.PermissionOverwrites[1].ID)
	require.EqualValues(t, discordgo.PermissionAllText, edit.PermissionOverwrites[1].Deny)

	// The status flip was persisted without adding or removing records.
	stored := storedTickets(t, cfg.Storage)
	require.Len(t, stored, 1)
	require.Equal(t, entities.TicketStatusClosed, stored[0].Status)

	// The stale handle is no longer accepted.
	_, err = m.CloseTicket(context.Background(), ticket)
	require.ErrorIs(t, err, ErrUnknownTicket)

	requireEvent(t, m, EventTicketClosed)
}

func TestManager_ReopenTicket(t *testing.T) {
	s := testSession()
	cfg := testConfig(t)
	m := testManager(t, s, cfg)

	ticket, err := m.CreateTicket(context.Background(), testGuildID, testUserID)
	require.NoError(t, err)

	closed, err := m.CloseTicket(context.Background(), ticket)
	require.NoError(t, err)
	drainEvents(m)

	reopened, err := m.ReopenTicket(context.Background(), closed)
	require.NoError(t, err)
	require.Equal(t, entities.TicketStatusOpen, reopened.Status())

	// The channel is renamed back and moved under the parent category.
	edit := s.lastEdit(t, ticket.ChannelID())
	require.Equal(t, "ticket-1", edit.Name)
	require.Equal(t, testParentID, edit.ParentID)

	stored := storedTickets(t, cfg.Storage)
	require.Len(t, stored, 1)
	require.Equal(t, entities.TicketStatusOpen, stored[0].Status)

	requireEvent(t, m, EventTicketReopened)
}

func TestManager_RenameTicket(t *testing.T) {
	s := testSession()
	cfg := testConfig(t)
	m := testManager(t, s, cfg)

	ticket, err := m.CreateTicket(context.Background(), testGuildID, testUserID)
	require.NoError(t, err)
	drainEvents(m)

	before, err := os.ReadFile(cfg.Storage)
	require.NoError(t, err)

	renamed, err := m.RenameTicket(context.Background(), ticket, "billing")
	require.NoError(t, err)

	// Renaming only touches the channel; the same handle stays valid and
	// nothing is persisted.
	require.Same(t, ticket, renamed)
	edit := s.lastEdit(t, ticket.ChannelID())
	require.Equal(t, "billing-1", edit.Name)

	after, err := os.ReadFile(cfg.Storage)
	require.NoError(t, err)
	require.Equal(t, string(before), string(after))

	requireEvent(t, m, EventTicketRenamed)
}

func TestManager_DeleteTicket(t *testing.T) {
	s := testSession()
	cfg := testConfig(t)
	m := testManager(t, s, cfg)

	ticket, err := m.CreateTicket(context.Background(), testGuildID, testUserID)
	require.NoError(t, err)
	drainEvents(m)

	ok, err := m.DeleteTicket(context.Background(), ticket)
	require.NoError(t, err)
	require.True(t, ok)

	// The channel is gone, the record is gone from storage and the index no
	// longer holds the ticket.
	require.Equal(t, []string{ticket.ChannelID()}, s.deleted)
	require.Empty(t, storedTickets(t, cfg.Storage))

	_, found := m.Ticket(testGuildID, 1)
	require.False(t, found)

	requireEvent(t, m, EventTicketDeleted)

	// Deleting again fails; the handle is no longer held.
	_, err = m.DeleteTicket(context.Background(), ticket)
	require.ErrorIs(t, err, ErrUnknownTicket)
}

func TestManager_ClaimTicket(t *testing.T) {
	s := testSession()
	cfg := testConfig(t)
	m := testManager(t, s, cfg)

	ticket, err := m.CreateTicket(context.Background(), testGuildID, testUserID)
	require.NoError(t, err)
	drainEvents(m)

	claimed, err := m.ClaimTicket(context.Background(), ticket, "staff-1")
	require.NoError(t, err)
	require.Equal(t, "staff-1", claimed.ClaimedBy())

	stored := storedTickets(t, cfg.Storage)
	require.Len(t, stored, 1)
	require.Equal(t, "staff-1", stored[0].ClaimedBy)

	requireEvent(t, m, EventTicketClaimed)

	// A claimed ticket cannot be claimed again.
	_, err = m.ClaimTicket(context.Background(), claimed, "staff-2")
	require.ErrorIs(t, err, ErrAlreadyClaimed)
}

func TestManager_Participants(t *testing.T) {
	s := testSession()
	cfg := testConfig(t)
	m := testManager(t, s, cfg)

	ticket, err := m.CreateTicket(context.Background(), testGuildID, testUserID)
	require.NoError(t, err)
	drainEvents(m)

	added, err := m.AddParticipant(context.Background(), ticket, "user-2")
	require.NoError(t, err)
	require.Equal(t, []string{"user-2"}, added.Participants())
	require.Equal(t, []string{"user-2"}, s.permsSet[ticket.ChannelID()])
	requireEvent(t, m, EventParticipantAdded)

	stored := storedTickets(t, cfg.Storage)
	require.Equal(t, []string{"user-2"}, stored[0].Participants)

	// Adding the same user again is a no-op.
	same, err := m.AddParticipant(context.Background(), added, "user-2")
	require.NoError(t, err)
	require.Same(t, added, same)
	require.Len(t, s.permsSet[ticket.ChannelID()], 1)

	removed, err := m.RemoveParticipant(context.Background(), added, "user-2")
	require.NoError(t, err)
	require.Empty(t, removed.Participants())
	require.Equal(t, []string{"user-2"}, s.permsDeleted[ticket.ChannelID()])
	requireEvent(t, m, EventParticipantRemoved)

	stored = storedTickets(t, cfg.Storage)
	require.Empty(t, stored[0].Participants)
}

func TestManager_UnknownTicket(t *testing.T) {
	m := testManager(t, testSession(), testConfig(t))

	// A handle from a different manager is rejected.
	otherSession := testSession()
	other := testManager(t, otherSession, testConfig(t))
	foreign, err := other.CreateTicket(context.Background(), testGuildID, testUserID)
	require.NoError(t, err)

	_, err = m.CloseTicket(context.Background(), foreign)
	require.ErrorIs(t, err, ErrUnknownTicket)

	_, err = m.CloseTicket(context.Background(), nil)
	require.ErrorIs(t, err, ErrUnknownTicket)
}

func TestManager_TicketByChannel(t *testing.T) {
	m := testManager(t, testSession(), testConfig(t))

	ticket, err := m.CreateTicket(context.Background(), testGuildID, testUserID)
	require.NoError(t, err)

	got, ok := m.TicketByChannel(ticket.ChannelID())
	require.True(t, ok)
	require.Same(t, ticket, got)

	_, ok = m.TicketByChannel("chan-nope")
	require.False(t, ok)
}

func TestTicket_DerivedLookups(t *testing.T) {
	s := testSession()
	m := testManager(t, s, testConfig(t))

	ticket, err := m.CreateTicket(context.Background(), testGuildID, testUserID)
	require.NoError(t, err)

	channel, err := ticket.Channel()
	require.NoError(t, err)
	require.Equal(t, ticket.ChannelID(), channel.ID)

	guild, err := ticket.Guild()
	require.NoError(t, err)
	require.Equal(t, testGuildID, guild.ID)

	creator, err := ticket.Creator()
	require.NoError(t, err)
	require.Equal(t, testUserID, creator.ID)

	// Lookups surface remote misses.
	delete(s.channels, ticket.ChannelID())
	_, err = ticket.Channel()
	require.Error(t, err)
}
