package controllers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/river20s/task-manager/middleware"
	"github.com/river20s/task-manager/models"
	"github.com/river20s/task-manager/services"
)

type fakeSessionStore struct {
	sessions map[string]uint
	next     int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]uint)}
}

func (f *fakeSessionStore) Create(ctx context.Context, userID uint) (string, error) {
	f.next++
	id := fmt.Sprintf("session-%d", f.next)
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

// newTestApp wires the full handler stack over an in-memory database,
// mirroring the route table in routes.RegisterRoutes.
func newTestApp(t *testing.T) (*gin.Engine, *fakeSessionStore) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Task{}, &models.Tag{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	logger := zap.NewNop().Sugar()
	store := newFakeSessionStore()
	ac := NewAuthController(services.NewAuthService(db, logger), store, time.Hour, logger)
	tc := NewTaskController(services.NewTaskService(db, logger), logger)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.LoadHTMLGlob("../templates/*.html")

	r.GET("/login", ac.ShowLogin)
	r.POST("/login", ac.Login)
	r.GET("/register", ac.ShowRegister)
	r.POST("/register", ac.Register)

	private := r.Group("/")
	private.Use(middleware.RequireAuth(store))
	{
		private.GET("/", tc.Home)
		private.POST("/add", tc.AddTask)
		private.POST("/complete/:id", tc.Complete)
		private.GET("/tag/:name", tc.ByTag)
		private.GET("/logout", ac.Logout)
	}

	return r, store
}

func postForm(r *gin.Engine, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(w, req)
	return w
}

func get(r *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(w, req)
	return w
}

// sessionCookie pulls the session cookie out of a login response.
func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == services.SessionCookieName {
			return c
		}
	}
	t.Fatal("no session cookie in response")
	return nil
}

// registerAndLogin runs the registration and login forms, returning the
// session cookie.
func registerAndLogin(t *testing.T, r *gin.Engine, username, password string) *http.Cookie {
	t.Helper()

	form := url.Values{"username": {username}, "password": {password}}

	w := postForm(r, "/register", form, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login", w.Header().Get("Location"))

	w = postForm(r, "/login", form, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	return sessionCookie(t, w)
}
