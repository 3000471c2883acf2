package ticketing

// EventType is the type of a ticket lifecycle event.
type EventType string

const (
	// EventTicketCreated is emitted when a ticket is created.
	EventTicketCreated EventType = "ticketCreated"

	// EventTicketClosed is emitted when a ticket is closed.
	EventTicketClosed EventType = "ticketClosed"

	// EventTicketReopened is emitted when a closed ticket is reopened.
	EventTicketReopened EventType = "ticketReopened"

	// EventTicketRenamed is emitted when a ticket channel is renamed.
	EventTicketRenamed EventType = "ticketRenamed"

	// EventTicketDeleted is emitted when a ticket is deleted.
	EventTicketDeleted EventType = "ticketDeleted"

	// EventTicketClaimed is emitted when a staff member claims a ticket.
	EventTicketClaimed EventType = "ticketClaimed"

	// EventParticipantAdded is emitted when a user is added to a ticket.
	EventParticipantAdded EventType = "participantAdded"

	// EventParticipantRemoved is emitted when a user is removed from a ticket.
	EventParticipantRemoved EventType = "participantRemoved"
)

// Event is a ticket lifecycle notification. Events are delivered on the
// channel returned by Manager.Events.
type Event struct {
	// Type is the type of the event.
	Type EventType

	// Ticket is the ticket that the event relates to.
	Ticket *Ticket
}
