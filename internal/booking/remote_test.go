package booking_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mitch2826/Hostel-Hunt/internal/api"
	"github.com/Mitch2826/Hostel-Hunt/internal/booking"
	"github.com/Mitch2826/Hostel-Hunt/internal/model"
	"github.com/Mitch2826/Hostel-Hunt/internal/serviceerr"
	"github.com/Mitch2826/Hostel-Hunt/internal/storage"
	storagemock "github.com/Mitch2826/Hostel-Hunt/internal/storage/mock"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

// bookingServer is a minimal in-memory rendition of the booking
// endpoints, counting hits per route.
type bookingServer struct {
	*httptest.Server

	mu       sync.Mutex
	bookings []model.Booking
	nextID   int
	hits     map[string]int
}

func newBookingServer(t *testing.T, seed ...model.Booking) *bookingServer {
	t.Helper()

	s := &bookingServer{
		bookings: seed,
		nextID:   100,
		hits:     make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /bookings/", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.hits["list"]++
		_ = json.NewEncoder(w).Encode(map[string]any{"bookings": s.bookings})
	})
	mux.HandleFunc("POST /bookings/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.hits["create"]++

		var req model.BookingRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		created := model.Booking{
			ID:         s.nextID,
			HostelID:   req.HostelID,
			UserID:     1,
			CheckIn:    req.CheckIn,
			CheckOut:   req.CheckOut,
			Guests:     req.Guests,
			TotalPrice: req.TotalPrice,
			Status:     model.StatusConfirmed,
		}
		s.nextID++
		s.bookings = append(s.bookings, created)
		_ = json.NewEncoder(w).Encode(map[string]any{"booking": created})
	})
	mux.HandleFunc("PUT /bookings/{id}/cancel", func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.hits["cancel"]++

		for i := range s.bookings {
			if r.PathValue("id") == strconv.Itoa(s.bookings[i].ID) {
				s.bookings[i].Status = model.StatusCancelled
				_ = json.NewEncoder(w).Encode(map[string]any{"booking": s.bookings[i]})
				return
			}
		}

		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "Booking not found"})
	})

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Server.Close)

	return s
}

func (s *bookingServer) hitCount(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hits[route]
}

func newRemoteStore(t *testing.T, url string, tokens booking.TokenSource, persistence *storagemock.Store) *booking.RemoteStore {
	t.Helper()

	client, err := api.NewClient(url, 0)
	require.NoError(t, err)

	return booking.NewRemoteStore(client, persistence, tokens)
}

func TestRemoteStore_RefreshWithoutSession(t *testing.T) {
	server := newBookingServer(t)
	store := newRemoteStore(t, server.URL, staticToken(""), storagemock.New())

	store.RefreshBookings(t.Context())

	assert.Empty(t, store.Bookings())
	assert.Zero(t, server.hitCount("list"), "no session means no network call")
}

func TestRemoteStore_RefreshReplacesList(t *testing.T) {
	server := newBookingServer(t,
		model.Booking{ID: 1, HostelID: 1, Status: model.StatusConfirmed},
		model.Booking{ID: 2, HostelID: 2, Status: model.StatusUpcoming},
	)
	store := newRemoteStore(t, server.URL, staticToken("t1"), storagemock.New())

	store.RefreshBookings(t.Context())

	bookings := store.Bookings()
	require.Len(t, bookings, 2)
	assert.Equal(t, 1, bookings[0].ID, "remote order is preserved")
	assert.Equal(t, 2, bookings[1].ID)
}

func TestRemoteStore_RefreshFailureKeepsState(t *testing.T) {
	server := newBookingServer(t, model.Booking{ID: 1})
	store := newRemoteStore(t, server.URL, staticToken("t1"), storagemock.New())
	store.RefreshBookings(t.Context())
	require.Len(t, store.Bookings(), 1)

	server.Close()
	store.RefreshBookings(t.Context())

	assert.Len(t, store.Bookings(), 1, "failed refresh must not clear prior state")
}

func TestRemoteStore_CreateRequiresSession(t *testing.T) {
	server := newBookingServer(t)
	store := newRemoteStore(t, server.URL, staticToken(""), storagemock.New())

	_, err := store.CreateBooking(t.Context(), model.BookingRequest{HostelID: 1})

	assert.ErrorIs(t, err, serviceerr.ErrNotAuthenticated)
	assert.Zero(t, server.hitCount("create"), "unauthenticated create must never reach the network")
	assert.False(t, store.IsLoading())
}

func TestRemoteStore_CreateBooking(t *testing.T) {
	server := newBookingServer(t)
	store := newRemoteStore(t, server.URL, staticToken("t1"), storagemock.New())

	id, err := store.CreateBooking(t.Context(), model.BookingRequest{
		HostelID:   1,
		CheckIn:    model.NewDate(2026, 9, 15),
		CheckOut:   model.NewDate(2026, 9, 18),
		Guests:     2,
		TotalPrice: 75,
	})
	require.NoError(t, err)

	assert.Equal(t, 1, server.hitCount("list"), "create triggers exactly one refresh")

	refreshed, ok := store.BookingByID(id)
	require.True(t, ok, "created id must appear in the refreshed list")
	assert.Equal(t, model.StatusConfirmed, refreshed.Status)
	assert.False(t, store.IsLoading(), "loading flag must reset on completion")
}

func TestRemoteStore_CreateRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /bookings/", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message":"Hostel is fully booked"}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := newRemoteStore(t, server.URL, staticToken("t1"), storagemock.New())

	_, err := store.CreateBooking(t.Context(), model.BookingRequest{HostelID: 1})

	var bookingErr *serviceerr.BookingError
	require.ErrorAs(t, err, &bookingErr)
	assert.Equal(t, "Hostel is fully booked", bookingErr.Message)
	assert.Empty(t, store.Bookings(), "rejected create must not change local state")
	assert.False(t, store.IsLoading())
}

func TestRemoteStore_CancelBooking(t *testing.T) {
	server := newBookingServer(t, model.Booking{ID: 105, HostelID: 1, Status: model.StatusConfirmed})
	store := newRemoteStore(t, server.URL, staticToken("t1"), storagemock.New())
	store.RefreshBookings(t.Context())

	cancelled, err := store.CancelBooking(t.Context(), 105)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCancelled, cancelled.Status)

	local, ok := store.BookingByID(105)
	require.True(t, ok)
	assert.Equal(t, model.StatusCancelled, local.Status, "local list reflects the cancellation after refresh")
	assert.False(t, store.IsLoading())
}

func TestRemoteStore_CancelRequiresSession(t *testing.T) {
	server := newBookingServer(t)
	store := newRemoteStore(t, server.URL, staticToken(""), storagemock.New())

	_, err := store.CancelBooking(t.Context(), 5)
	assert.ErrorIs(t, err, serviceerr.ErrNotAuthenticated)
	assert.Zero(t, server.hitCount("cancel"))
}

func TestRemoteStore_ToggleFavoriteIsItsOwnInverse(t *testing.T) {
	server := newBookingServer(t)
	persistence := storagemock.New()
	store := newRemoteStore(t, server.URL, staticToken(""), persistence)

	require.NoError(t, store.ToggleFavorite(t.Context(), 7))
	assert.Equal(t, []int{7}, store.Favorites())

	raw, ok := persistence.Value(storage.KeyFavorites)
	require.True(t, ok)
	assert.JSONEq(t, "[7]", raw)

	require.NoError(t, store.ToggleFavorite(t.Context(), 7))
	assert.Empty(t, store.Favorites(), "toggling twice returns to the original set")
}

func TestRemoteStore_ToggleFavoriteSurfacesWriteFailure(t *testing.T) {
	server := newBookingServer(t)
	persistence := storagemock.New(storagemock.WithSetError(errors.New("disk full")))
	store := newRemoteStore(t, server.URL, staticToken(""), persistence)

	err := store.ToggleFavorite(t.Context(), 7)

	assert.Error(t, err, "a failed persistence write is recoverable, not silent")
	assert.Equal(t, []int{7}, store.Favorites(), "the in-memory toggle still applies")
}

func TestRemoteStore_RestoreLoadsFavorites(t *testing.T) {
	server := newBookingServer(t)
	persistence := storagemock.New(storagemock.WithValue(storage.KeyFavorites, "[1,3]"))
	store := newRemoteStore(t, server.URL, staticToken(""), persistence)

	store.Restore(t.Context())

	assert.Equal(t, []int{1, 3}, store.Favorites())
}

func TestRemoteStore_HostelByID(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /hostels/1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"name":"Sunset Backpackers","location":"Barcelona, Spain","price":25}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	store := newRemoteStore(t, server.URL, staticToken(""), storagemock.New())

	hostel := store.HostelByID(t.Context(), 1)
	require.NotNil(t, hostel)
	assert.Equal(t, "Sunset Backpackers", hostel.Name)

	assert.Nil(t, store.HostelByID(t.Context(), 42), "any failure degrades to nil")
}

func TestRemoteStore_BookingByIDMiss(t *testing.T) {
	server := newBookingServer(t)
	store := newRemoteStore(t, server.URL, staticToken("t1"), storagemock.New())

	_, ok := store.BookingByID(999)
	assert.False(t, ok)
	assert.Zero(t, server.hitCount("list"), "local lookup never calls the network")
}

func TestRemoteStore_InvalidateKeepsFavorites(t *testing.T) {
	server := newBookingServer(t, model.Booking{ID: 1})
	store := newRemoteStore(t, server.URL, staticToken("t1"), storagemock.New())
	store.RefreshBookings(t.Context())
	require.NoError(t, store.ToggleFavorite(t.Context(), 3))
	require.NotEmpty(t, store.Bookings())

	store.Invalidate(t.Context())

	assert.Empty(t, store.Bookings())
	assert.Equal(t, []int{3}, store.Favorites(), "favorites outlive the booking list")
}
