package booking

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Mitch2826/Hostel-Hunt/internal/model"
	"github.com/Mitch2826/Hostel-Hunt/internal/serviceerr"
)

// FixtureStore is the network-free Store used for demos and tests.
// Bookings, hostels and favorites are seeded at construction; nothing
// is persisted. CreateBooking assigns a client-generated timestamp id
// and a confirmed status.
type FixtureStore struct {
	notifier

	now func() time.Time

	stateMu   sync.Mutex
	bookings  []model.Booking
	hostels   []model.Hostel
	favorites map[int]struct{}
	userID    int
}

var _ = Store(&FixtureStore{})

type FixtureOption func(*FixtureStore)

// WithClock overrides the id/bookingDate clock.
func WithClock(now func() time.Time) FixtureOption {
	return func(s *FixtureStore) { s.now = now }
}

func NewFixtureStore(opts ...FixtureOption) *FixtureStore {
	s := &FixtureStore{
		now:       time.Now,
		bookings:  slices.Clone(fixtureBookings),
		hostels:   slices.Clone(fixtureHostels),
		favorites: make(map[int]struct{}),
		userID:    fixtureUserID,
	}
	for _, id := range fixtureFavorites {
		s.favorites[id] = struct{}{}
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

func (s *FixtureStore) Restore(_ context.Context) {}

func (s *FixtureStore) RefreshBookings(_ context.Context) {}

func (s *FixtureStore) CreateBooking(_ context.Context, req model.BookingRequest) (int, error) {
	now := s.now()

	s.stateMu.Lock()
	booking := model.Booking{
		ID:          int(now.UnixMilli()),
		HostelID:    req.HostelID,
		UserID:      s.userID,
		CheckIn:     req.CheckIn,
		CheckOut:    req.CheckOut,
		Guests:      req.Guests,
		TotalPrice:  req.TotalPrice,
		Status:      model.StatusConfirmed,
		BookingDate: model.Date{Time: now.UTC().Truncate(24 * time.Hour)},
	}
	s.bookings = append(s.bookings, booking)
	s.stateMu.Unlock()
	s.notify()

	return booking.ID, nil
}

func (s *FixtureStore) CancelBooking(_ context.Context, bookingID int) (model.Booking, error) {
	s.stateMu.Lock()
	var cancelled model.Booking
	found := false
	for i, b := range s.bookings {
		if b.ID == bookingID {
			s.bookings[i].Status = model.StatusCancelled
			cancelled = s.bookings[i]
			found = true
			break
		}
	}
	s.stateMu.Unlock()

	if !found {
		return model.Booking{}, serviceerr.ErrNotFound
	}
	s.notify()

	return cancelled, nil
}

func (s *FixtureStore) ToggleFavorite(_ context.Context, hostelID int) error {
	s.stateMu.Lock()
	if _, ok := s.favorites[hostelID]; ok {
		delete(s.favorites, hostelID)
	} else {
		s.favorites[hostelID] = struct{}{}
	}
	s.stateMu.Unlock()
	s.notify()

	return nil
}

func (s *FixtureStore) HostelByID(_ context.Context, id int) *model.Hostel {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	for _, h := range s.hostels {
		if h.ID == id {
			hostel := h
			return &hostel
		}
	}

	return nil
}

func (s *FixtureStore) BookingByID(id int) (model.Booking, bool) {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	for _, b := range s.bookings {
		if b.ID == id {
			return b, true
		}
	}

	return model.Booking{}, false
}

func (s *FixtureStore) Invalidate(_ context.Context) {
	s.stateMu.Lock()
	s.bookings = nil
	s.stateMu.Unlock()
	s.notify()
}

func (s *FixtureStore) Bookings() []model.Booking {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	return slices.Clone(s.bookings)
}

func (s *FixtureStore) Favorites() []int {
	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	return favoriteIDs(s.favorites)
}

func (s *FixtureStore) IsLoading() bool { return false }
