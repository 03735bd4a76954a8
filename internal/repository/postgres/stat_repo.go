package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aibrid/zipo-server/internal/domain"
)

type statRepository struct {
	DB *sql.DB
}

func NewStatRepository(db *sql.DB) domain.StatRepository {
	return &statRepository{DB: db}
}

func (r *statRepository) GetByIP(ctx context.Context, ip string) (*domain.Stat, error) {
	query := `SELECT id, ip, visits, clicks FROM stats WHERE ip = $1`
	s := &domain.Stat{}
	var visits []byte
	err := r.DB.QueryRowContext(ctx, query, ip).Scan(&s.ID, &s.IP, &visits, &s.Clicks)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if err := json.Unmarshal(visits, &s.Visits); err != nil {
		return nil, fmt.Errorf("unmarshal visits: %w", err)
	}
	return s, nil
}

func (r *statRepository) Create(ctx context.Context, s *domain.Stat) error {
	visits, err := json.Marshal(s.Visits)
	if err != nil {
		return fmt.Errorf("marshal visits: %w", err)
	}
	query := `INSERT INTO stats (id, ip, visits, clicks) VALUES ($1, $2, $3, $4)`
	_, err = r.DB.ExecContext(ctx, query, s.ID, s.IP, visits, s.Clicks)
	return err
}

func (r *statRepository) AddVisit(ctx context.Context, statID string, visit domain.StatVisit) error {
	doc, err := json.Marshal(visit)
	if err != nil {
		return fmt.Errorf("marshal visit: %w", err)
	}
	query := `
		UPDATE stats
		SET visits = visits || $2::jsonb, clicks = clicks + 1
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, statID, doc)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
