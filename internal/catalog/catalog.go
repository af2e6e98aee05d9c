// Package catalog provides read-only hostel browsing: the full list
// and the search endpoint, with a short-lived response cache so
// repeated browsing does not hammer the backend. Single-hostel lookups
// stay in the booking store and are never cached.
package catalog

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Mitch2826/Hostel-Hunt/internal/api"
	"github.com/Mitch2826/Hostel-Hunt/internal/model"
)

const DefaultTTL = 30 * time.Second

type Catalog struct {
	api   *api.Client
	cache *gocache.Cache
}

func New(apiClient *api.Client, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Catalog{
		api:   apiClient,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *Catalog) List(ctx context.Context) ([]model.Hostel, error) {
	const key = "hostels"
	if cached, ok := c.cache.Get(key); ok {
		return cached.([]model.Hostel), nil
	}

	hostels, err := c.api.ListHostels(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing hostels: %w", err)
	}
	c.cache.SetDefault(key, hostels)

	return hostels, nil
}

func (c *Catalog) Search(ctx context.Context, query api.SearchQuery) (api.SearchResult, error) {
	key := fmt.Sprintf("search:%s:%g:%d:%d", query.Location, query.MaxPrice, query.Page, query.PerPage)
	if cached, ok := c.cache.Get(key); ok {
		return cached.(api.SearchResult), nil
	}

	result, err := c.api.SearchHostels(ctx, query)
	if err != nil {
		return api.SearchResult{}, fmt.Errorf("searching hostels: %w", err)
	}
	c.cache.SetDefault(key, result)

	return result, nil
}
