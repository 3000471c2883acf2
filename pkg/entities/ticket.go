package entities

import (
	"fmt"

	"github.com/Jacobbrewer1/lynx/pkg/custom"
)

// TicketStatus is the lifecycle status of a ticket.
type TicketStatus string

const (
	// TicketStatusOpen is the status of a ticket that is open.
	TicketStatusOpen TicketStatus = "open"

	// TicketStatusClosed is the status of a ticket that is closed.
	TicketStatusClosed TicketStatus = "closed"
)

// Ticket is the persisted representation of a ticket.
type Ticket struct {
	// Number is the number of the ticket.
	// Numbers are sequential within a guild; the first ticket in a guild is number 1.
	Number int `json:"number"`

	// GuildID is the ID of the guild that the ticket is in.
	GuildID string `json:"guildId"`

	// ChannelID is the ID of the channel that the ticket is in.
	ChannelID string `json:"channelId"`

	// CreatorID is the ID of the user that created the ticket.
	CreatorID string `json:"creatorId"`

	// Participants is the IDs of the users that have been added to the ticket.
	Participants []string `json:"participants"`

	// Status is the lifecycle status of the ticket.
	Status TicketStatus `json:"status"`

	// ClaimedBy is the ID of the staff member that claimed the ticket.
	ClaimedBy string `json:"claimedBy,omitempty"`

	// CreatedAt is the time that the ticket was created.
	CreatedAt custom.Datetime `json:"createdAt,omitempty"`
}

// ChannelName is the name of the ticket channel while the ticket is open.
func (t *Ticket) ChannelName() string {
	return fmt.Sprintf("ticket-%d", t.Number)
}

// ClosedChannelName is the name of the ticket channel once the ticket is closed.
func (t *Ticket) ClosedChannelName() string {
	return fmt.Sprintf("closed-%d", t.Number)
}

// HasParticipant reports whether the given user has been added to the ticket.
func (t *Ticket) HasParticipant(userID string) bool {
	for _, p := range t.Participants {
		if p == userID {
			return true
		}
	}
	return false
}
