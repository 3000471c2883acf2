package ticketing

import "errors"

var (
	// ErrNilSession is returned when a manager is constructed without a discord session.
	ErrNilSession = errors.New("no discord session provided")

	// ErrMissingParent is returned when a manager is constructed without a parent category.
	ErrMissingParent = errors.New("no parent category configured")

	// ErrMissingStorage is returned when a manager is constructed without a storage path.
	ErrMissingStorage = errors.New("no storage path configured")

	// ErrNotReady is returned when an operation is invoked before the manager has
	// finished loading tickets from storage.
	ErrNotReady = errors.New("ticket manager is not ready")

	// ErrAlreadyInitialized is returned when Init is called more than once.
	ErrAlreadyInitialized = errors.New("ticket manager is already initialized")

	// ErrUnknownTicket is returned when an operation is passed a ticket that this
	// manager does not currently hold.
	ErrUnknownTicket = errors.New("ticket is not held by this manager")

	// ErrNotResolvable is returned when the guild, user or member behind a ticket
	// cannot be resolved through discord.
	ErrNotResolvable = errors.New("not resolvable")

	// ErrInvalidCategory is returned when a configured category channel is missing
	// or is not a category.
	ErrInvalidCategory = errors.New("invalid category channel")

	// ErrAlreadyClaimed is returned when claiming a ticket that has already been claimed.
	ErrAlreadyClaimed = errors.New("ticket is already claimed")
)
