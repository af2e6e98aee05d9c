package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	slogctx "github.com/veqryn/slog-context"

	"github.com/Mitch2826/Hostel-Hunt/internal/api"
	"github.com/Mitch2826/Hostel-Hunt/internal/model"
	"github.com/Mitch2826/Hostel-Hunt/internal/serviceerr"
	"github.com/Mitch2826/Hostel-Hunt/internal/storage"
)

// RemoteStore keeps the remote service authoritative: every mutation
// applies optimistically and then reconciles with a full refresh, the
// server's answer winning over the local guess.
type RemoteStore struct {
	notifier

	api     *api.Client
	storage storage.Store
	tokens  TokenSource

	stateMu   sync.Mutex
	bookings  []model.Booking
	favorites map[int]struct{}
	isLoading bool
}

var _ = Store(&RemoteStore{})

func NewRemoteStore(apiClient *api.Client, persistence storage.Store, tokens TokenSource) *RemoteStore {
	return &RemoteStore{
		api:       apiClient,
		storage:   persistence,
		tokens:    tokens,
		favorites: make(map[int]struct{}),
	}
}

func (s *RemoteStore) Restore(ctx context.Context) {
	s.loadFavorites(ctx)
	s.RefreshBookings(ctx)
}

func (s *RemoteStore) loadFavorites(ctx context.Context) {
	raw, err := s.storage.Get(ctx, storage.KeyFavorites)
	if err != nil {
		if !errors.Is(err, serviceerr.ErrNotFound) {
			slogctx.Warn(ctx, "Reading persisted favorites", "error", err)
		}
		return
	}

	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		slogctx.Warn(ctx, "Decoding persisted favorites", "error", err)
		return
	}

	s.stateMu.Lock()
	for _, id := range ids {
		s.favorites[id] = struct{}{}
	}
	s.stateMu.Unlock()
	s.notify()
}

func (s *RemoteStore) RefreshBookings(ctx context.Context) {
	token := s.tokens.Token()
	if token == "" {
		return
	}

	bookings, err := s.api.ListBookings(ctx, token)
	if err != nil {
		slogctx.Warn(ctx, "Refreshing bookings", "error", err)
		return
	}

	// Full replace in the order the service returned.
	s.stateMu.Lock()
	s.bookings = bookings
	s.stateMu.Unlock()
	s.notify()
}

func (s *RemoteStore) CreateBooking(ctx context.Context, req model.BookingRequest) (int, error) {
	token := s.tokens.Token()
	if token == "" {
		return 0, serviceerr.ErrNotAuthenticated
	}

	s.setLoading(true)
	defer s.setLoading(false)

	created, err := s.api.CreateBooking(ctx, token, req)
	if err != nil {
		return 0, bookingFailure(ctx, err, "Failed to create booking")
	}

	s.stateMu.Lock()
	s.bookings = append(s.bookings, created)
	s.stateMu.Unlock()
	s.notify()

	s.RefreshBookings(ctx)

	return created.ID, nil
}

func (s *RemoteStore) CancelBooking(ctx context.Context, bookingID int) (model.Booking, error) {
	token := s.tokens.Token()
	if token == "" {
		return model.Booking{}, serviceerr.ErrNotAuthenticated
	}

	s.setLoading(true)
	defer s.setLoading(false)

	cancelled, err := s.api.CancelBooking(ctx, token, bookingID)
	if err != nil {
		return model.Booking{}, bookingFailure(ctx, err, "Failed to cancel booking")
	}

	s.stateMu.Lock()
	for i, b := range s.bookings {
		if b.ID == cancelled.ID {
			s.bookings[i] = cancelled
			break
		}
	}
	s.stateMu.Unlock()
	s.notify()

	s.RefreshBookings(ctx)

	return cancelled, nil
}

func (s *RemoteStore) ToggleFavorite(ctx context.Context, hostelID int) error {
	s.stateMu.Lock()
	if _, ok := s.favorites[hostelID]; ok {
		delete(s.favorites, hostelID)
	} else {
		s.favorites[hostelID] = struct{}{}
	}
	ids := favoriteIDs(s.favorites)
	s.stateMu.Unlock()
	s.notify()

	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encoding favorites: %w", err)
	}
	if err := s.storage.Set(ctx, storage.KeyFavorites, string(raw)); err != nil {
		slogctx.Warn(ctx, "Persisting favorites", "error", err)
		return fmt.Errorf("persisting favorites: %w", err)
	}

	return nil
}

func (s *RemoteStore) HostelByID(ctx context.Context, id int) *model.Hostel {
	hostel, err := s.api.Hostel(ctx, id)
	if err != nil {
		slogctx.Warn(ctx, "Fetching hostel", "hostel_id", id, "error", err)
		return nil
	}

	return &hostel
}

func (s *RemoteStore) BookingByID(id int) (model.Booking, bool) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	for _, b := range s.bookings {
		if b.ID == id {
			return b, true
		}
	}

	return model.Booking{}, false
}

func (s *RemoteStore) Invalidate(ctx context.Context) {
	s.stateMu.Lock()
	s.bookings = nil
	s.stateMu.Unlock()
	s.notify()

	slogctx.Debug(ctx, "Invalidated booking list")
}

func (s *RemoteStore) Bookings() []model.Booking {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	return slices.Clone(s.bookings)
}

func (s *RemoteStore) Favorites() []int {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	return favoriteIDs(s.favorites)
}

func (s *RemoteStore) IsLoading() bool {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	return s.isLoading
}

func (s *RemoteStore) setLoading(loading bool) {
	s.stateMu.Lock()
	s.isLoading = loading
	s.stateMu.Unlock()
	s.notify()
}

func favoriteIDs(favorites map[int]struct{}) []int {
	ids := make([]int, 0, len(favorites))
	for id := range favorites {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	return ids
}

// bookingFailure maps a client error the same way authFailure does on
// the session side.
func bookingFailure(ctx context.Context, err error, fallback string) error {
	var remoteErr *api.RemoteError
	if errors.As(err, &remoteErr) {
		message := remoteErr.Message
		if message == "" {
			message = fallback
		}
		slogctx.Warn(ctx, "Booking mutation rejected", "status", remoteErr.StatusCode)

		return &serviceerr.BookingError{Message: message}
	}

	return fmt.Errorf("calling booking endpoint: %w", err)
}
