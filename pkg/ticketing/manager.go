package ticketing

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/lynx/pkg/custom"
	"github.com/Jacobbrewer1/lynx/pkg/dataaccess"
	"github.com/Jacobbrewer1/lynx/pkg/entities"
	"github.com/Jacobbrewer1/lynx/pkg/logging"
)

// eventBufferSize is the size of the lifecycle event buffer. Events are
// dropped once the buffer is full.
const eventBufferSize = 100

// State is the initialization state of a Manager.
type State int

const (
	// StateUninitialized is the state before Init has been called.
	StateUninitialized State = iota

	// StateLoading is the state while tickets are being loaded from storage.
	StateLoading

	// StateReady is the state once tickets have been loaded. Operations are
	// rejected with ErrNotReady until this state is reached.
	StateReady
)

// String implements the fmt.Stringer interface.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	default:
		return fmt.Sprintf("unknown (%d)", int(s))
	}
}

// Config is the configuration for a Manager.
type Config struct {
	// ParentID is the ID of the category that open ticket channels are created
	// under. Required.
	ParentID string `yaml:"parent_id"`

	// ClosedParentID is the ID of the category that closed ticket channels are
	// moved to. Defaults to ParentID.
	ClosedParentID string `yaml:"closed_parent_id"`

	// ChannelTopic is the topic set on new ticket channels.
	ChannelTopic string `yaml:"channel_topic"`

	// StaffRoles is the IDs of the roles that are granted access to every
	// ticket channel.
	StaffRoles []string `yaml:"staff_roles"`

	// Storage is the path to the ticket storage file. Required.
	Storage string `yaml:"storage"`
}

// ticketKey identifies a ticket within the manager. Ticket numbers are only
// sequential within a guild, so the guild has to be part of the key.
type ticketKey struct {
	guildID string
	number  int
}

// Manager owns the ticket lifecycle for a bot: creating, claiming, closing,
// reopening, renaming and deleting ticket channels, with the ticket set
// persisted through a dataaccess.TicketStore.
type Manager struct {
	// l is the logger.
	l *slog.Logger

	// s is the discord session.
	s Session

	// store is the ticket storage layer.
	store dataaccess.TicketStore

	// cfg is the manager configuration.
	cfg Config

	// events is the lifecycle notification stream.
	events chan Event

	// mtx guards state, records and tickets. Mutating operations hold it for
	// their full duration, so they serialize against each other.
	mtx sync.RWMutex

	// state is the initialization state.
	state State

	// records is the durable source of truth, mirrored to storage on every
	// mutation.
	records []*entities.Ticket

	// tickets is the handle index, keyed by guild and number. It is derived
	// from records and rebuilt alongside them.
	tickets map[ticketKey]*Ticket
}

// NewManager creates a new ticket manager. The session and the required
// configuration are validated here; tickets are not loaded until Init.
func NewManager(s Session, cfg Config, l *slog.Logger) (*Manager, error) {
	if s == nil {
		return nil, ErrNilSession
	}
	if cfg.ParentID == "" {
		return nil, ErrMissingParent
	}
	if cfg.Storage == "" {
		return nil, ErrMissingStorage
	}

	if cfg.ClosedParentID == "" {
		cfg.ClosedParentID = cfg.ParentID
	}

	if l == nil {
		l = slog.Default()
	}

	return &Manager{
		l:       l,
		s:       s,
		store:   dataaccess.NewFileStore(cfg.Storage, l),
		cfg:     cfg,
		events:  make(chan Event, eventBufferSize),
		state:   StateUninitialized,
		tickets: make(map[ticketKey]*Ticket),
	}, nil
}

// Init loads the ticket set from storage and readies the manager. It must be
// called exactly once before any operation.
func (m *Manager) Init(ctx context.Context) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.state != StateUninitialized {
		return ErrAlreadyInitialized
	}
	m.state = StateLoading

	if err := ctx.Err(); err != nil {
		m.state = StateUninitialized
		return err
	}

	records, err := m.store.Load()
	if err != nil {
		m.state = StateUninitialized
		return fmt.Errorf("error loading tickets: %w", err)
	}

	m.records = records
	for _, rec := range records {
		m.tickets[ticketKey{guildID: rec.GuildID, number: rec.Number}] = newTicket(m, rec)
	}

	m.state = StateReady
	m.l.Info("Ticket manager ready", slog.Int("tickets", len(records)))
	return nil
}

// State is the current initialization state of the manager.
func (m *Manager) State() State {
	m.mtx.RLock()
	defer m.mtx.RUnlock()
	return m.state
}

// Events is the lifecycle notification stream. Consumers should drain it;
// events are dropped once the buffer is full.
func (m *Manager) Events() <-chan Event {
	return m.events
}

// Ping reports whether the ticket storage is usable.
func (m *Manager) Ping() error {
	return m.store.Ping()
}

// Ticket gets a ticket by guild and number.
func (m *Manager) Ticket(guildID string, number int) (*Ticket, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	t, ok := m.tickets[ticketKey{guildID: guildID, number: number}]
	return t, ok
}

// TicketByChannel gets the ticket whose channel has the given ID.
func (m *Manager) TicketByChannel(channelID string) (*Ticket, bool) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	for _, t := range m.tickets {
		if t.record.ChannelID == channelID {
			return t, true
		}
	}
	return nil, false
}

// Tickets is a snapshot of every ticket the manager currently holds.
func (m *Manager) Tickets() []*Ticket {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	got := make([]*Ticket, 0, len(m.tickets))
	for _, t := range m.tickets {
		got = append(got, t)
	}
	return got
}

// CheckDoubleTickets reports whether the user already has a ticket in the
// guild. It is used to block a user from opening a second ticket.
func (m *Manager) CheckDoubleTickets(guildID string, userID string) (bool, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	if m.state != StateReady {
		return false, ErrNotReady
	}

	for _, rec := range m.records {
		if rec.GuildID == guildID && rec.CreatorID == userID {
			return true, nil
		}
	}
	return false, nil
}

// CreateTicket opens a new ticket for the user in the guild. A dedicated
// channel is created under the configured parent category, visible only to the
// creator and the staff roles.
func (m *Manager) CreateTicket(ctx context.Context, guildID string, userID string) (*Ticket, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.state != StateReady {
		return nil, ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// The guild, user and member all have to resolve before a channel is
	// created for them.
	if _, err := m.s.Guild(guildID); err != nil {
		return nil, fmt.Errorf("%w: guild %s: %s", ErrNotResolvable, guildID, err)
	}
	if _, err := m.s.User(userID); err != nil {
		return nil, fmt.Errorf("%w: user %s: %s", ErrNotResolvable, userID, err)
	}
	if _, err := m.s.GuildMember(guildID, userID); err != nil {
		return nil, fmt.Errorf("%w: member %s in guild %s: %s", ErrNotResolvable, userID, guildID, err)
	}

	parent, err := m.s.Channel(m.cfg.ParentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidCategory, m.cfg.ParentID, err)
	}
	if parent.Type != discordgo.ChannelTypeGuildCategory {
		return nil, fmt.Errorf("%w: %s is not a category", ErrInvalidCategory, m.cfg.ParentID)
	}

	rec := &entities.Ticket{
		Number:       m.nextNumber(guildID),
		GuildID:      guildID,
		CreatorID:    userID,
		Participants: []string{},
		Status:       entities.TicketStatusOpen,
		CreatedAt:    custom.Datetime(time.Now().UTC()),
	}

	channel, err := m.s.GuildChannelCreateComplex(guildID, discordgo.GuildChannelCreateData{
		Name:                 rec.ChannelName(),
		Type:                 discordgo.ChannelTypeGuildText,
		Topic:                m.cfg.ChannelTopic,
		PermissionOverwrites: m.openTicketOverwrites(guildID, userID),
		ParentID:             parent.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating ticket channel: %w", err)
	}
	rec.ChannelID = channel.ID

	m.records = append(m.records, rec)
	if err := m.store.SaveAll(m.records); err != nil {
		return nil, fmt.Errorf("error saving tickets: %w", err)
	}

	t := newTicket(m, rec)
	m.tickets[ticketKey{guildID: guildID, number: rec.Number}] = t

	m.notify(EventTicketCreated, t)
	m.l.Info("Ticket created",
		slog.Int("number", rec.Number),
		slog.String("guild", guildID),
		slog.String("channel", rec.ChannelID),
	)
	return t, nil
}

// CloseTicket closes the ticket. The channel is renamed, moved to the closed
// category and locked for the creator. A replacement handle is returned; the
// passed handle is stale afterwards.
func (m *Manager) CloseTicket(ctx context.Context, t *Ticket) (*Ticket, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	rec, err := m.verify(ctx, t)
	if err != nil {
		return nil, err
	}

	closedParent, err := m.s.Channel(m.cfg.ClosedParentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidCategory, m.cfg.ClosedParentID, err)
	}

	name := rec.ClosedChannelName()
	if _, err := m.s.ChannelEditComplex(rec.ChannelID, &discordgo.ChannelEdit{
		Name:                 name,
		ParentID:             closedParent.ID,
		PermissionOverwrites: m.closedTicketOverwrites(rec.GuildID, rec.CreatorID),
	}); err != nil {
		return nil, fmt.Errorf("error editing ticket channel: %w", err)
	}

	next := *rec
	next.Status = entities.TicketStatusClosed

	replacement, err := m.replace(rec, &next)
	if err != nil {
		return nil, err
	}

	m.notify(EventTicketClosed, replacement)
	m.l.Info("Ticket closed", slog.Int("number", next.Number), slog.String("guild", next.GuildID))
	return replacement, nil
}

// ReopenTicket reopens a closed ticket, moving the channel back under the
// parent category and restoring the creator's access.
func (m *Manager) ReopenTicket(ctx context.Context, t *Ticket) (*Ticket, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	rec, err := m.verify(ctx, t)
	if err != nil {
		return nil, err
	}

	parent, err := m.s.Channel(m.cfg.ParentID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrInvalidCategory, m.cfg.ParentID, err)
	}

	if _, err := m.s.ChannelEditComplex(rec.ChannelID, &discordgo.ChannelEdit{
		Name:                 rec.ChannelName(),
		ParentID:             parent.ID,
		PermissionOverwrites: m.openTicketOverwrites(rec.GuildID, rec.CreatorID),
	}); err != nil {
		return nil, fmt.Errorf("error editing ticket channel: %w", err)
	}

	next := *rec
	next.Status = entities.TicketStatusOpen

	replacement, err := m.replace(rec, &next)
	if err != nil {
		return nil, err
	}

	m.notify(EventTicketReopened, replacement)
	m.l.Info("Ticket reopened", slog.Int("number", next.Number), slog.String("guild", next.GuildID))
	return replacement, nil
}

// RenameTicket renames the ticket channel to "<newName>-<number>". The ticket
// record itself is unchanged, so nothing is persisted.
func (m *Manager) RenameTicket(ctx context.Context, t *Ticket, newName string) (*Ticket, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	rec, err := m.verify(ctx, t)
	if err != nil {
		return nil, err
	}

	if _, err := m.s.ChannelEditComplex(rec.ChannelID, &discordgo.ChannelEdit{
		Name: fmt.Sprintf("%s-%d", newName, rec.Number),
	}); err != nil {
		return nil, fmt.Errorf("error editing ticket channel: %w", err)
	}

	m.notify(EventTicketRenamed, t)
	m.l.Info("Ticket renamed",
		slog.Int("number", rec.Number),
		slog.String("guild", rec.GuildID),
		slog.String("name", newName),
	)
	return t, nil
}

// DeleteTicket deletes the ticket channel and removes the ticket from the
// manager and from storage.
func (m *Manager) DeleteTicket(ctx context.Context, t *Ticket) (bool, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	rec, err := m.verify(ctx, t)
	if err != nil {
		return false, err
	}

	if _, err := m.s.ChannelDelete(rec.ChannelID); err != nil {
		return false, fmt.Errorf("error deleting ticket channel: %w", err)
	}

	kept := make([]*entities.Ticket, 0, len(m.records))
	for _, r := range m.records {
		if r.ChannelID == rec.ChannelID {
			continue
		}
		kept = append(kept, r)
	}
	m.records = kept

	if err := m.store.SaveAll(m.records); err != nil {
		return false, fmt.Errorf("error saving tickets: %w", err)
	}

	delete(m.tickets, ticketKey{guildID: rec.GuildID, number: rec.Number})

	m.notify(EventTicketDeleted, t)
	m.l.Info("Ticket deleted", slog.Int("number", rec.Number), slog.String("guild", rec.GuildID))
	return true, nil
}

// ClaimTicket marks the ticket as claimed by the given staff member. A ticket
// can only be claimed once.
func (m *Manager) ClaimTicket(ctx context.Context, t *Ticket, staffUserID string) (*Ticket, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	rec, err := m.verify(ctx, t)
	if err != nil {
		return nil, err
	}

	if rec.ClaimedBy != "" {
		return nil, fmt.Errorf("%w: by %s", ErrAlreadyClaimed, rec.ClaimedBy)
	}

	next := *rec
	next.ClaimedBy = staffUserID

	replacement, err := m.replace(rec, &next)
	if err != nil {
		return nil, err
	}

	m.notify(EventTicketClaimed, replacement)
	m.l.Info("Ticket claimed",
		slog.Int("number", next.Number),
		slog.String("guild", next.GuildID),
		slog.String("claimedBy", staffUserID),
	)
	return replacement, nil
}

// AddParticipant grants the user access to the ticket channel and records them
// as a participant. Adding a user twice is a no-op.
func (m *Manager) AddParticipant(ctx context.Context, t *Ticket, userID string) (*Ticket, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	rec, err := m.verify(ctx, t)
	if err != nil {
		return nil, err
	}

	if rec.HasParticipant(userID) {
		return t, nil
	}

	if err := m.s.ChannelPermissionSet(rec.ChannelID, userID, discordgo.PermissionOverwriteTypeMember,
		discordgo.PermissionAllText, discordgo.PermissionMentionEveryone); err != nil {
		return nil, fmt.Errorf("error granting channel access: %w", err)
	}

	next := *rec
	next.Participants = append(append([]string{}, rec.Participants...), userID)

	replacement, err := m.replace(rec, &next)
	if err != nil {
		return nil, err
	}

	m.notify(EventParticipantAdded, replacement)
	return replacement, nil
}

// RemoveParticipant revokes the user's access to the ticket channel and
// removes them from the participant list. Removing an absent user is a no-op.
func (m *Manager) RemoveParticipant(ctx context.Context, t *Ticket, userID string) (*Ticket, error) {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	rec, err := m.verify(ctx, t)
	if err != nil {
		return nil, err
	}

	if !rec.HasParticipant(userID) {
		return t, nil
	}

	if err := m.s.ChannelPermissionDelete(rec.ChannelID, userID); err != nil {
		return nil, fmt.Errorf("error revoking channel access: %w", err)
	}

	next := *rec
	next.Participants = make([]string, 0, len(rec.Participants)-1)
	for _, p := range rec.Participants {
		if p == userID {
			continue
		}
		next.Participants = append(next.Participants, p)
	}

	replacement, err := m.replace(rec, &next)
	if err != nil {
		return nil, err
	}

	m.notify(EventParticipantRemoved, replacement)
	return replacement, nil
}

// nextNumber is the next ticket number for the guild. Numbers are sequential
// within a guild, starting at 1. Callers must hold mtx.
func (m *Manager) nextNumber(guildID string) int {
	max := 0
	for _, rec := range m.records {
		if rec.GuildID == guildID && rec.Number > max {
			max = rec.Number
		}
	}
	return max + 1
}

// verify checks that the manager is ready, the context is live and the ticket
// handle is the one the manager currently holds. Callers must hold mtx.
func (m *Manager) verify(ctx context.Context, t *Ticket) (*entities.Ticket, error) {
	if m.state != StateReady {
		return nil, ErrNotReady
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if t == nil || t.m != m {
		return nil, ErrUnknownTicket
	}

	held, ok := m.tickets[ticketKey{guildID: t.record.GuildID, number: t.record.Number}]
	if !ok || held != t {
		// Either the ticket was deleted, or the handle was superseded by a
		// later mutation.
		return nil, ErrUnknownTicket
	}
	return t.record, nil
}

// replace swaps old for next in the record list (matched by identity),
// persists the full set and indexes a replacement handle. Callers must hold
// mtx.
func (m *Manager) replace(old *entities.Ticket, next *entities.Ticket) (*Ticket, error) {
	for i, r := range m.records {
		if r == old {
			m.records[i] = next
			break
		}
	}

	if err := m.store.SaveAll(m.records); err != nil {
		return nil, fmt.Errorf("error saving tickets: %w", err)
	}

	t := newTicket(m, next)
	m.tickets[ticketKey{guildID: next.GuildID, number: next.Number}] = t
	return t, nil
}

// notify emits a lifecycle event without blocking. If nobody is draining the
// stream the event is dropped.
func (m *Manager) notify(eventType EventType, t *Ticket) {
	select {
	case m.events <- Event{Type: eventType, Ticket: t}:
	default:
		m.l.Warn("Event buffer full, dropping event", slog.String(logging.KeyEvent, string(eventType)))
	}
}
