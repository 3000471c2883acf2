package ticketing

import (
	"fmt"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/Jacobbrewer1/lynx/pkg/entities"
)

// Ticket is a live handle to a single ticket. Tickets are only constructed by
// a Manager; every mutation produces a replacement handle, so a Ticket never
// changes after it has been handed out.
type Ticket struct {
	// m is the manager that holds the ticket.
	m *Manager

	// record is the persisted state backing the ticket. It is never mutated
	// once the handle has been constructed.
	record *entities.Ticket
}

func newTicket(m *Manager, record *entities.Ticket) *Ticket {
	return &Ticket{
		m:      m,
		record: record,
	}
}

// Number is the number of the ticket within its guild.
func (t *Ticket) Number() int {
	return t.record.Number
}

// GuildID is the ID of the guild that the ticket is in.
func (t *Ticket) GuildID() string {
	return t.record.GuildID
}

// ChannelID is the ID of the ticket channel.
func (t *Ticket) ChannelID() string {
	return t.record.ChannelID
}

// CreatorID is the ID of the user that opened the ticket.
func (t *Ticket) CreatorID() string {
	return t.record.CreatorID
}

// Status is the lifecycle status of the ticket.
func (t *Ticket) Status() entities.TicketStatus {
	return t.record.Status
}

// Participants is the IDs of the users that have been added to the ticket.
func (t *Ticket) Participants() []string {
	got := make([]string, len(t.record.Participants))
	copy(got, t.record.Participants)
	return got
}

// ClaimedBy is the ID of the staff member that claimed the ticket, or empty if
// the ticket is unclaimed.
func (t *Ticket) ClaimedBy() string {
	return t.record.ClaimedBy
}

// CreatedAt is the time that the ticket was created.
func (t *Ticket) CreatedAt() time.Time {
	return time.Time(t.record.CreatedAt)
}

// Channel resolves the ticket channel through discord. The channel may no
// longer exist if it was removed outside of the manager.
func (t *Ticket) Channel() (*discordgo.Channel, error) {
	channel, err := t.m.s.Channel(t.record.ChannelID)
	if err != nil {
		return nil, fmt.Errorf("error getting channel %s: %w", t.record.ChannelID, err)
	}
	return channel, nil
}

// Guild resolves the ticket guild through discord.
func (t *Ticket) Guild() (*discordgo.Guild, error) {
	guild, err := t.m.s.Guild(t.record.GuildID)
	if err != nil {
		return nil, fmt.Errorf("error getting guild %s: %w", t.record.GuildID, err)
	}
	return guild, nil
}

// Creator resolves the user that opened the ticket through discord.
func (t *Ticket) Creator() (*discordgo.User, error) {
	user, err := t.m.s.User(t.record.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("error getting user %s: %w", t.record.CreatorID, err)
	}
	return user, nil
}

// String implements the fmt.Stringer interface.
func (t *Ticket) String() string {
	return fmt.Sprintf("ticket %d (guild %s, channel %s)", t.record.Number, t.record.GuildID, t.record.ChannelID)
}
