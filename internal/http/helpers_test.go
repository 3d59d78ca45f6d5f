package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	domainauth "github.com/batisuivi/batisuivi/internal/domain/auth"
	"github.com/stretchr/testify/require"
)

var testHashKey = []byte("0123456789abcdef0123456789abcdef")

func newTestSessions(t *testing.T) *SessionManager {
	t.Helper()
	m, err := NewSessionManager(SessionConfig{HashKey: testHashKey})
	require.NoError(t, err)
	return m
}

// sessionCookie issues a signed session cookie for userID.
func sessionCookie(t *testing.T, m *SessionManager, userID string) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	require.NoError(t, m.Create(rec, userID))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

// mapResolver resolves sessions from a mutable map and counts lookups.
type mapResolver struct {
	mu    sync.Mutex
	users map[string]*domainauth.SessionUser
	calls int
}

func newMapResolver(users ...*domainauth.SessionUser) *mapResolver {
	r := &mapResolver{users: make(map[string]*domainauth.SessionUser)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *mapResolver) ResolveSession(_ context.Context, userID string) *domainauth.SessionUser {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	return r.users[userID]
}

func (r *mapResolver) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

func sessionUser(id string, role domainauth.Role) *domainauth.SessionUser {
	return &domainauth.SessionUser{ID: id, Identifiant: id, Role: role}
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})
