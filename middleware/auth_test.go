package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/river20s/task-manager/services"
)

type fakeSessionStore struct {
	sessions map[string]uint
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]uint)}
}

func (f *fakeSessionStore) Create(ctx context.Context, userID uint) (string, error) {
	id := "fake-session"
	f.sessions[id] = userID
	return id, nil
}

func (f *fakeSessionStore) Get(ctx context.Context, sessionID string) (uint, error) {
	userID, ok := f.sessions[sessionID]
	if !ok {
		return 0, services.ErrSessionNotFound
	}
	return userID, nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, sessionID string) error {
	delete(f.sessions, sessionID)
	return nil
}

func newAuthTestRouter(store services.SessionStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(store), func(c *gin.Context) {
		c.String(http.StatusOK, "uid=%d", c.GetUint("uid"))
	})
	return r
}

func TestRequireAuthRedirectsWithoutCookie(t *testing.T) {
	r := newAuthTestRouter(newFakeSessionStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireAuthRedirectsOnUnknownSession(t *testing.T) {
	r := newAuthTestRouter(newFakeSessionStore())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: services.SessionCookieName, Value: "stale"})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestRequireAuthPassesValidSession(t *testing.T) {
	store := newFakeSessionStore()
	sessionID, err := store.Create(context.Background(), 42)
	require.NoError(t, err)

	r := newAuthTestRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: services.SessionCookieName, Value: sessionID})
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "uid=42", w.Body.String())
}
