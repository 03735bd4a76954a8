package domain

import "context"

// EventTx groups the writes that must commit or abort together: the event
// mutation, its derived notifications and the recipients' unread-counter
// increments. A recipient must never see a counter increment without a
// matching notification, or vice versa.
type EventTx interface {
	CreateEvent(ctx context.Context, event *Event) error
	// SaveEvent persists the whole mutated event. It checks the version
	// the event was loaded at and returns ErrConflict when another writer
	// got there first, aborting the transaction.
	SaveEvent(ctx context.Context, event *Event) error
	DeleteEvent(ctx context.Context, id string) error
	CreateNotifications(ctx context.Context, notifications []*Notification) error
	// MarkInviteActionTaken flips ActionTaken on the pending Event Invite
	// notification matching the given parties and event.
	MarkInviteActionTaken(ctx context.Context, ownerID, initiatorID, eventID string) error
	IncrementNewNotifications(ctx context.Context, userIDs []string) error
}

// TxManager runs fn inside a single storage transaction. A nil return
// from fn commits; any error rolls back every write fn performed.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx EventTx) error) error
}
