// Package booking owns the booking list and favorite set for the
// current session. Two implementations share one contract: the
// remote-backed store used in production and the fixture-backed store
// used as a test double, selected by configuration.
package booking

import (
	"context"
	"sync"

	"github.com/Mitch2826/Hostel-Hunt/internal/model"
)

// TokenSource yields the active session token, empty when signed out.
// The session store satisfies it.
type TokenSource interface {
	Token() string
}

// Store is the booking state manager contract.
type Store interface {
	// Restore runs once at process start: it loads persisted
	// favorites and performs the initial booking refresh.
	Restore(ctx context.Context)

	// RefreshBookings replaces the local booking list with the
	// remote result. Without a session it is a no-op; a failed call
	// leaves prior state untouched and is logged only.
	RefreshBookings(ctx context.Context)

	// CreateBooking submits a new booking and returns its id. It
	// fails with serviceerr.ErrNotAuthenticated when no session is
	// active, without touching the network.
	CreateBooking(ctx context.Context, req model.BookingRequest) (int, error)

	// CancelBooking transitions a booking to cancelled and returns
	// the updated copy. Same auth contract as CreateBooking.
	CancelBooking(ctx context.Context, bookingID int) (model.Booking, error)

	// ToggleFavorite adds or removes a hostel id from the favorite
	// set and persists the result. The in-memory toggle always
	// applies; a failed persistence write is returned so the caller
	// can retry.
	ToggleFavorite(ctx context.Context, hostelID int) error

	// HostelByID fetches one listing. It returns nil on any failure;
	// not-found and network errors are indistinguishable here.
	HostelByID(ctx context.Context, id int) *model.Hostel

	// BookingByID looks the id up in the local list only.
	BookingByID(id int) (model.Booking, bool)

	// Invalidate drops the local booking list. The favorite set is
	// kept: favorites outlive the session.
	Invalidate(ctx context.Context)

	Bookings() []model.Booking
	Favorites() []int
	IsLoading() bool

	// Subscribe registers fn to run after every state change and
	// returns a cancel function.
	Subscribe(fn func()) func()
}

// notifier implements the subscription mechanism shared by both store
// implementations.
type notifier struct {
	mu          sync.Mutex
	subscribers map[int]func()
	nextSubID   int
}

func (n *notifier) Subscribe(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subscribers == nil {
		n.subscribers = make(map[int]func())
	}
	id := n.nextSubID
	n.nextSubID++
	n.subscribers[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subscribers, id)
	}
}

func (n *notifier) notify() {
	n.mu.Lock()
	fns := make([]func(), 0, len(n.subscribers))
	for _, fn := range n.subscribers {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
