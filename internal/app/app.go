// Package app is the composition root: it builds the persistence
// adapter, the API client and the stores from configuration, and wires
// the session-to-booking invalidation link. Stores are explicit
// instances handed to callers by reference; nothing here is a global.
package app

import (
	"context"
	"fmt"

	"github.com/valkey-io/valkey-go"

	slogctx "github.com/veqryn/slog-context"

	"github.com/Mitch2826/Hostel-Hunt/internal/api"
	"github.com/Mitch2826/Hostel-Hunt/internal/booking"
	"github.com/Mitch2826/Hostel-Hunt/internal/catalog"
	"github.com/Mitch2826/Hostel-Hunt/internal/config"
	"github.com/Mitch2826/Hostel-Hunt/internal/session"
	"github.com/Mitch2826/Hostel-Hunt/internal/storage"
	filestore "github.com/Mitch2826/Hostel-Hunt/internal/storage/file"
	"github.com/Mitch2826/Hostel-Hunt/internal/storage/valkeystore"
)

type App struct {
	Config   *config.Config
	Sessions *session.Store
	Bookings booking.Store
	Catalog  *catalog.Catalog

	closeFn func()
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	apiClient, err := api.NewClient(cfg.API.BaseURL, cfg.API.Timeout)
	if err != nil {
		return nil, fmt.Errorf("building API client: %w", err)
	}

	persistence, closeFn, err := newPersistence(cfg)
	if err != nil {
		return nil, err
	}

	sessions := session.NewStore(apiClient, persistence)

	var bookings booking.Store
	switch cfg.Bookings.Mode {
	case config.ModeFixture:
		bookings = booking.NewFixtureStore()
	default:
		bookings = booking.NewRemoteStore(apiClient, persistence, sessions)
	}

	// Logging out must not leave another user's bookings behind, so
	// the booking list is invalidated on the authenticated-to-signed-
	// out transition. Favorites deliberately survive: they are not
	// scoped to an identity.
	wasAuthenticated := false
	sessions.Subscribe(func() {
		authenticated := sessions.Current().IsAuthenticated
		if wasAuthenticated && !authenticated {
			bookings.Invalidate(ctx)
		}
		wasAuthenticated = authenticated
	})

	return &App{
		Config:   cfg,
		Sessions: sessions,
		Bookings: bookings,
		Catalog:  catalog.New(apiClient, cfg.Catalog.CacheTTL),
		closeFn:  closeFn,
	}, nil
}

// Start runs the one-time restore phase for both stores.
func (a *App) Start(ctx context.Context) {
	a.Sessions.Restore(ctx)
	a.Bookings.Restore(ctx)

	slogctx.Debug(ctx, "Stores restored",
		"authenticated", a.Sessions.Current().IsAuthenticated,
		"bookings", len(a.Bookings.Bookings()),
	)
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

func newPersistence(cfg *config.Config) (storage.Store, func(), error) {
	switch cfg.Storage.Backend {
	case config.BackendValkey:
		client, err := valkey.NewClient(valkey.ClientOption{
			InitAddress: []string{cfg.Storage.Valkey.Address},
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to valkey: %w", err)
		}

		return valkeystore.New(client, cfg.Storage.Valkey.Prefix), client.Close, nil

	default:
		store, err := filestore.New(cfg.StatePath())
		if err != nil {
			return nil, nil, fmt.Errorf("opening state file: %w", err)
		}

		return store, nil, nil
	}
}
