package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/aibrid/zipo-server/internal/domain"
)

const eventColumns = `id, title, date, reminder_date, days_btwn_reminder_and_event,
	todo_count, todos, bg_cover, invite_link_id, is_invite_link_active,
	invited_emails, invitee_roles, invitee_ids, owner_id, version, created_at, updated_at`

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{DB: db}
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	e, err := scanEvent(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) ListForUser(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE owner_id = $1 OR $1 = ANY(invitee_ids)
		ORDER BY date ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) InviteLinkIDTaken(ctx context.Context, inviteLinkID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM events WHERE invite_link_id = $1)`
	var taken bool
	if err := r.DB.QueryRowContext(ctx, query, inviteLinkID).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEvent(row rowScanner) (*domain.Event, error) {
	e := &domain.Event{}
	var todos, inviteeRoles, invitedEmails []byte
	var bgCover sql.NullString
	err := row.Scan(
		&e.ID, &e.Title, &e.Date, &e.ReminderDate, &e.DaysBtwnReminderAndEvent,
		&e.TodoCount, &todos, &bgCover, &e.InviteLinkID, &e.IsInviteLinkActive,
		&invitedEmails, &inviteeRoles, pq.Array(&e.InviteeIDs), &e.OwnerID,
		&e.Version, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if bgCover.Valid {
		e.BgCover = bgCover.String
	}
	if err := json.Unmarshal(todos, &e.Todos); err != nil {
		return nil, fmt.Errorf("unmarshal todos: %w", err)
	}
	if err := json.Unmarshal(inviteeRoles, &e.InviteeRoles); err != nil {
		return nil, fmt.Errorf("unmarshal invitee roles: %w", err)
	}
	if err := json.Unmarshal(invitedEmails, &e.InvitedEmails); err != nil {
		return nil, fmt.Errorf("unmarshal invited emails: %w", err)
	}
	return e, nil
}
