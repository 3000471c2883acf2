package messages

const (
	// ErrUserErrorProcessing is the message shown to a user when a command fails.
	ErrUserErrorProcessing = "Something went wrong processing that, please try again later."

	// ErrUserTicketExists is the message shown to a user that already has a ticket open.
	ErrUserTicketExists = "You already have a ticket open in this server."

	// ErrUserTooManyRequests is the message shown to a user that is opening tickets too quickly.
	ErrUserTooManyRequests = "You are doing that too often, please wait a moment and try again."

	// ErrUserNoTicketChannel is the message shown when a command is used outside a ticket channel.
	ErrUserNoTicketChannel = "This channel is not a ticket."

	// ErrUserNotStaff is the message shown when a user without a staff role uses a staff command.
	ErrUserNotStaff = "You do not have a staff role for tickets."
)
