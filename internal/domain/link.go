package domain

import (
	"context"
	"time"
)

// LinkType distinguishes plain shortened links from combined link pages.
type LinkType string

const (
	LinkTypeShortened LinkType = "Shortened"
	LinkTypeCombined  LinkType = "Combined"
)

// CombinedLinkItem is one entry on a combined link page.
type CombinedLinkItem struct {
	Title string `json:"title"`
	ID    string `json:"id"`
	URL   string `json:"url"`
}

// CombinedLink is the payload of a Combined link: a titled page listing
// several target links.
type CombinedLink struct {
	Links       []CombinedLinkItem `json:"links"`
	Description string             `json:"description"`
	Title       string             `json:"title"`
}

// Link is a short link. Shortened links redirect to Link; Combined links
// render CombinedLink. Path is unique across all links.
// swagger:model Link
type Link struct {
	ID           string        `json:"id"`
	Path         string        `json:"path"`
	Alternators  []string      `json:"alternators,omitempty"`
	Type         LinkType      `json:"type"`
	Link         string        `json:"link,omitempty"`
	CombinedLink *CombinedLink `json:"combined_link,omitempty"`
	OwnerID      string        `json:"owner_id,omitempty"`
	Clicks       int           `json:"clicks"`
	CreatedAt    time.Time     `json:"created_at"`
}

// StatVisit records the first time an IP resolved a particular link.
type StatVisit struct {
	LinkID string    `json:"link"`
	Date   time.Time `json:"date"`
}

// Stat is the per-IP click record for the shortener.
type Stat struct {
	ID     string      `json:"id"`
	IP     string      `json:"ip"`
	Visits []StatVisit `json:"links"`
	Clicks int         `json:"clicks"`
}

// Visited reports whether the stat already records a visit to linkID.
func (s *Stat) Visited(linkID string) bool {
	for _, v := range s.Visits {
		if v.LinkID == linkID {
			return true
		}
	}
	return false
}

// LinkRepository defines storage operations for links.
type LinkRepository interface {
	Create(ctx context.Context, link *Link) error
	GetByPath(ctx context.Context, path string) (*Link, error)
	// GetByTarget returns an existing Shortened link pointing at url.
	GetByTarget(ctx context.Context, url string) (*Link, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*Link, error)
	PathTaken(ctx context.Context, path string) (bool, error)
	IncrementClicks(ctx context.Context, linkID string) error
}

// StatRepository defines storage for per-IP shortener stats.
type StatRepository interface {
	GetByIP(ctx context.Context, ip string) (*Stat, error)
	Create(ctx context.Context, stat *Stat) error
	AddVisit(ctx context.Context, statID string, visit StatVisit) error
}

// ShortenCustomInput carries the fields for a custom short link.
type ShortenCustomInput struct {
	Path string `json:"path"`
	Link string `json:"link"`
}

// CombineCustomInput carries the fields for a combined link page.
type CombineCustomInput struct {
	Path         string       `json:"path"`
	CombinedLink CombinedLink `json:"combined_link"`
}

// LinkService defines the link shortener operations.
type LinkService interface {
	// ResolveLink is the public path lookup. It records a per-IP visit
	// stat and bumps the link's click count.
	ResolveLink(ctx context.Context, path, clientIP string) (*Link, error)
	ListLinks(ctx context.Context, ownerID string) ([]*Link, error)
	IsCustomizable(ctx context.Context, path string) (bool, error)
	ShortenLink(ctx context.Context, url string) (*Link, error)
	ShortenCustomLink(ctx context.Context, ownerID string, in ShortenCustomInput) (*Link, error)
	CombineCustomLink(ctx context.Context, ownerID string, in CombineCustomInput) (*Link, error)
}
