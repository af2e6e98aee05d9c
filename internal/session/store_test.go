package session_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mitch2826/Hostel-Hunt/internal/api"
	"github.com/Mitch2826/Hostel-Hunt/internal/serviceerr"
	"github.com/Mitch2826/Hostel-Hunt/internal/session"
	"github.com/Mitch2826/Hostel-Hunt/internal/storage"
	storagemock "github.com/Mitch2826/Hostel-Hunt/internal/storage/mock"
)

func newClient(t *testing.T, url string) *api.Client {
	t.Helper()

	client, err := api.NewClient(url, 0)
	require.NoError(t, err)

	return client
}

func authServer(t *testing.T) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login", "/auth/register":
			_, _ = w.Write([]byte(`{"access_token":"t1","user":{"id":1,"name":"John Doe","email":"a@b.com"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestStore_Restore(t *testing.T) {
	tests := []struct {
		name     string
		storage  *storagemock.Store
		wantAuth bool
	}{
		{
			name: "Both keys present",
			storage: storagemock.New(
				storagemock.WithValue(storage.KeyToken, "t1"),
				storagemock.WithValue(storage.KeyUser, `{"id":1,"email":"a@b.com"}`),
			),
			wantAuth: true,
		},
		{
			name:     "Token only",
			storage:  storagemock.New(storagemock.WithValue(storage.KeyToken, "t1")),
			wantAuth: false,
		},
		{
			name:     "Identity only",
			storage:  storagemock.New(storagemock.WithValue(storage.KeyUser, `{"id":1}`)),
			wantAuth: false,
		},
		{
			name:     "Nothing persisted",
			storage:  storagemock.New(),
			wantAuth: false,
		},
		{
			name: "Corrupt identity blob",
			storage: storagemock.New(
				storagemock.WithValue(storage.KeyToken, "t1"),
				storagemock.WithValue(storage.KeyUser, "not json"),
			),
			wantAuth: false,
		},
		{
			name:     "Storage read failure",
			storage:  storagemock.New(storagemock.WithGetError(errors.New("disk broke"))),
			wantAuth: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := session.NewStore(nil, tt.storage)
			require.True(t, store.IsLoading())

			store.Restore(t.Context())

			assert.False(t, store.IsLoading(), "restore must always end the loading phase")
			assert.Equal(t, tt.wantAuth, store.Current().IsAuthenticated)
			if tt.wantAuth {
				assert.Equal(t, "t1", store.Token())
			}
		})
	}
}

func TestStore_Login(t *testing.T) {
	server := authServer(t)
	defer server.Close()

	persistence := storagemock.New()
	store := session.NewStore(newClient(t, server.URL), persistence)

	notified := 0
	cancel := store.Subscribe(func() { notified++ })
	defer cancel()

	err := store.Login(t.Context(), session.Credentials{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)

	current := store.Current()
	assert.True(t, current.IsAuthenticated)
	assert.Equal(t, "t1", current.Token)
	assert.Equal(t, 1, current.Identity.ID)
	assert.Equal(t, "a@b.com", current.Identity.Email)
	assert.Positive(t, notified)

	token, ok := persistence.Value(storage.KeyToken)
	require.True(t, ok)
	assert.Equal(t, "t1", token)
	_, ok = persistence.Value(storage.KeyUser)
	assert.True(t, ok)
}

func TestStore_LoginThenRestore(t *testing.T) {
	// A login followed by a restore on a fresh store simulates a
	// process restart and must yield the identical session.
	server := authServer(t)
	defer server.Close()

	persistence := storagemock.New()

	first := session.NewStore(newClient(t, server.URL), persistence)
	require.NoError(t, first.Login(t.Context(), session.Credentials{Email: "a@b.com", Password: "x"}))

	second := session.NewStore(newClient(t, server.URL), persistence)
	second.Restore(t.Context())

	if diff := cmp.Diff(first.Current(), second.Current()); diff != "" {
		t.Errorf("restored session differs (-login +restore):\n%s", diff)
	}
}

func TestStore_LoginRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Invalid email or password"}`))
	}))
	defer server.Close()

	persistence := storagemock.New()
	store := session.NewStore(newClient(t, server.URL), persistence)

	err := store.Login(t.Context(), session.Credentials{Email: "a@b.com", Password: "wrong"})

	var authErr *serviceerr.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Invalid email or password", authErr.Message)

	assert.False(t, store.Current().IsAuthenticated)
	_, ok := persistence.Value(storage.KeyToken)
	assert.False(t, ok)
}

func TestStore_LoginRejectedWithoutMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	store := session.NewStore(newClient(t, server.URL), storagemock.New())

	err := store.Login(t.Context(), session.Credentials{Email: "a@b.com", Password: "x"})

	var authErr *serviceerr.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Login failed", authErr.Message)
}

func TestStore_LoginNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	store := session.NewStore(newClient(t, server.URL), storagemock.New())

	err := store.Login(t.Context(), session.Credentials{Email: "a@b.com", Password: "x"})
	assert.ErrorIs(t, err, serviceerr.ErrUnavailable)
	assert.False(t, store.Current().IsAuthenticated)
}

func TestStore_SignupFallbackMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer server.Close()

	store := session.NewStore(newClient(t, server.URL), storagemock.New())

	err := store.Signup(t.Context(), session.Registration{FullName: "John Doe", Email: "a@b.com", Password: "x"})

	var authErr *serviceerr.AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "Signup failed", authErr.Message)
}

func TestStore_Logout(t *testing.T) {
	persistence := storagemock.New(
		storagemock.WithValue(storage.KeyToken, "t1"),
		storagemock.WithValue(storage.KeyUser, `{"id":1}`),
	)
	store := session.NewStore(nil, persistence)
	store.Restore(t.Context())
	require.True(t, store.Current().IsAuthenticated)

	store.Logout(t.Context())

	assert.False(t, store.Current().IsAuthenticated)
	assert.Empty(t, store.Token())
	_, ok := persistence.Value(storage.KeyToken)
	assert.False(t, ok, "token must be cleared")
	_, ok = persistence.Value(storage.KeyUser)
	assert.False(t, ok, "identity must be cleared")
}

func TestStore_LogoutWithoutSession(t *testing.T) {
	store := session.NewStore(nil, storagemock.New())
	store.Restore(t.Context())

	store.Logout(t.Context())

	assert.False(t, store.Current().IsAuthenticated)
}

func TestStore_SubscribeCancel(t *testing.T) {
	persistence := storagemock.New()
	store := session.NewStore(nil, persistence)

	calls := 0
	cancel := store.Subscribe(func() { calls++ })

	store.Logout(t.Context())
	require.Positive(t, calls)

	seen := calls
	cancel()
	store.Logout(t.Context())
	assert.Equal(t, seen, calls, "cancelled subscriber must not fire")
}
