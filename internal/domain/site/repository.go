package site

import "context"

// SiteRepository resolves site names exactly; returns ErrSiteNotFound for
// unregistered names.
type SiteRepository interface {
	GetByName(ctx context.Context, name string) (Site, error)
}
