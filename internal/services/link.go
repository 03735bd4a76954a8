package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nuid"

	"github.com/aibrid/zipo-server/internal/domain"
)

type linkService struct {
	linkRepo       domain.LinkRepository
	statRepo       domain.StatRepository
	logger         *slog.Logger
	newID          func() string
	contextTimeout time.Duration
}

func NewLinkService(linkRepo domain.LinkRepository,
	statRepo domain.StatRepository,
	logger *slog.Logger,
	timeout time.Duration,
) domain.LinkService {
	return &linkService{
		linkRepo:       linkRepo,
		statRepo:       statRepo,
		logger:         logger,
		newID:          nuid.Next,
		contextTimeout: timeout,
	}
}

func (s *linkService) ResolveLink(ctx context.Context, path, clientIP string) (*domain.Link, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	link, err := s.linkRepo.GetByPath(ctx, path)
	if err != nil {
		return nil, err
	}

	// Stats ride along with the redirect; they never block it.
	if err := s.recordVisit(ctx, link.ID, clientIP); err != nil {
		s.logger.WarnContext(ctx, "record link visit failed", "path", path, "err", err)
	}
	if err := s.linkRepo.IncrementClicks(ctx, link.ID); err != nil {
		s.logger.WarnContext(ctx, "increment clicks failed", "path", path, "err", err)
	}
	return link, nil
}

func (s *linkService) recordVisit(ctx context.Context, linkID, clientIP string) error {
	stat, err := s.statRepo.GetByIP(ctx, clientIP)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}
		stat = &domain.Stat{
			ID:     s.newID(),
			IP:     clientIP,
			Visits: []domain.StatVisit{{LinkID: linkID, Date: time.Now()}},
			Clicks: 1,
		}
		return s.statRepo.Create(ctx, stat)
	}
	if stat.Visited(linkID) {
		return nil
	}
	return s.statRepo.AddVisit(ctx, stat.ID, domain.StatVisit{LinkID: linkID, Date: time.Now()})
}

func (s *linkService) ListLinks(ctx context.Context, ownerID string) ([]*domain.Link, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()
	return s.linkRepo.ListByOwner(ctx, ownerID)
}

func (s *linkService) IsCustomizable(ctx context.Context, path string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	taken, err := s.linkRepo.PathTaken(ctx, path)
	if err != nil {
		return false, fmt.Errorf("check path: %w", err)
	}
	return !taken, nil
}

func (s *linkService) ShortenLink(ctx context.Context, url string) (*domain.Link, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	// The same target always shortens to the same path.
	existing, err := s.linkRepo.GetByTarget(ctx, url)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get link by target: %w", err)
	}

	path, err := s.freePath(ctx)
	if err != nil {
		return nil, err
	}
	link := &domain.Link{
		ID:        s.newID(),
		Path:      path,
		Type:      domain.LinkTypeShortened,
		Link:      url,
		CreatedAt: time.Now(),
	}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}
	return link, nil
}

func (s *linkService) ShortenCustomLink(ctx context.Context, ownerID string, in domain.ShortenCustomInput) (*domain.Link, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	taken, err := s.linkRepo.PathTaken(ctx, in.Path)
	if err != nil {
		return nil, fmt.Errorf("check path: %w", err)
	}
	if taken {
		return nil, domain.ErrConflict
	}

	link := &domain.Link{
		ID:        s.newID(),
		Path:      in.Path,
		Type:      domain.LinkTypeShortened,
		Link:      in.Link,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
	}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}
	return link, nil
}

func (s *linkService) CombineCustomLink(ctx context.Context, ownerID string, in domain.CombineCustomInput) (*domain.Link, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	taken, err := s.linkRepo.PathTaken(ctx, in.Path)
	if err != nil {
		return nil, fmt.Errorf("check path: %w", err)
	}
	if taken {
		return nil, domain.ErrConflict
	}

	combined := in.CombinedLink
	for i := range combined.Links {
		if combined.Links[i].ID == "" {
			combined.Links[i].ID = s.newID()
		}
	}
	link := &domain.Link{
		ID:           s.newID(),
		Path:         in.Path,
		Type:         domain.LinkTypeCombined,
		CombinedLink: &combined,
		OwnerID:      ownerID,
		CreatedAt:    time.Now(),
	}
	if err := s.linkRepo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("create link: %w", err)
	}
	return link, nil
}

func (s *linkService) freePath(ctx context.Context) (string, error) {
	for {
		path := s.newID()
		taken, err := s.linkRepo.PathTaken(ctx, path)
		if err != nil {
			return "", fmt.Errorf("check path: %w", err)
		}
		if !taken {
			return path, nil
		}
	}
}
