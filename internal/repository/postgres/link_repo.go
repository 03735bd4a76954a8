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

const linkColumns = `id, path, alternators, type, link, combined_link, owner_id, clicks, created_at`

type linkRepository struct {
	DB *sql.DB
}

func NewLinkRepository(db *sql.DB) domain.LinkRepository {
	return &linkRepository{DB: db}
}

func (r *linkRepository) Create(ctx context.Context, l *domain.Link) error {
	var combined []byte
	if l.CombinedLink != nil {
		var err error
		if combined, err = json.Marshal(l.CombinedLink); err != nil {
			return fmt.Errorf("marshal combined link: %w", err)
		}
	}
	query := `
		INSERT INTO links (id, path, alternators, type, link, combined_link, owner_id, clicks, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.DB.ExecContext(ctx, query,
		l.ID, l.Path, pq.Array(l.Alternators), l.Type, l.Link, combined, l.OwnerID, l.Clicks, l.CreatedAt,
	)
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return domain.ErrConflict
	}
	return err
}

func (r *linkRepository) GetByPath(ctx context.Context, path string) (*domain.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links
		WHERE path = $1 OR $1 = ANY(alternators)`
	return r.getOne(ctx, query, path)
}

func (r *linkRepository) GetByTarget(ctx context.Context, url string) (*domain.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links
		WHERE link = $1 AND type = $2`
	l, err := scanLink(r.DB.QueryRowContext(ctx, query, url, domain.LinkTypeShortened))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func (r *linkRepository) ListByOwner(ctx context.Context, ownerID string) ([]*domain.Link, error) {
	query := `SELECT ` + linkColumns + ` FROM links
		WHERE owner_id = $1
		ORDER BY created_at DESC`
	rows, err := r.DB.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	links := make([]*domain.Link, 0)
	for rows.Next() {
		l, err := scanLink(rows)
		if err != nil {
			return nil, err
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

func (r *linkRepository) PathTaken(ctx context.Context, path string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM links WHERE path = $1 OR $1 = ANY(alternators))`
	var taken bool
	if err := r.DB.QueryRowContext(ctx, query, path).Scan(&taken); err != nil {
		return false, err
	}
	return taken, nil
}

func (r *linkRepository) IncrementClicks(ctx context.Context, linkID string) error {
	query := `UPDATE links SET clicks = clicks + 1 WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, linkID)
	return err
}

func (r *linkRepository) getOne(ctx context.Context, query string, arg interface{}) (*domain.Link, error) {
	l, err := scanLink(r.DB.QueryRowContext(ctx, query, arg))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return l, nil
}

func scanLink(row rowScanner) (*domain.Link, error) {
	l := &domain.Link{}
	var combined []byte
	var target, ownerID sql.NullString
	err := row.Scan(
		&l.ID, &l.Path, pq.Array(&l.Alternators), &l.Type, &target, &combined,
		&ownerID, &l.Clicks, &l.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.Link = target.String
	l.OwnerID = ownerID.String
	if len(combined) > 0 {
		l.CombinedLink = &domain.CombinedLink{}
		if err := json.Unmarshal(combined, l.CombinedLink); err != nil {
			return nil, fmt.Errorf("unmarshal combined link: %w", err)
		}
	}
	return l, nil
}
