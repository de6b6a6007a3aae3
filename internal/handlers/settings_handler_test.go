package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yoonsu-park/community-board/internal/models"
	"github.com/yoonsu-park/community-board/internal/services"
	jwtutil "github.com/yoonsu-park/community-board/pkg/jwt"
	"github.com/yoonsu-park/community-board/pkg/middleware"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type memSettingsStore struct {
	mu   sync.Mutex
	rows map[primitive.ObjectID]models.NotificationSettings
}

func newMemSettingsStore() *memSettingsStore {
	return &memSettingsStore{rows: make(map[primitive.ObjectID]models.NotificationSettings)}
}

func (m *memSettingsStore) GetByUser(_ context.Context, userID primitive.ObjectID) (*models.NotificationSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[userID]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (m *memSettingsStore) Upsert(_ context.Context, settings *models.NotificationSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	settings.UpdatedAt = time.Now()
	m.rows[settings.UserID] = *settings
	return nil
}

func settingsRouter(store *memSettingsStore) *mux.Router {
	handler := NewSettingsHandler(services.NewSettingsService(store))
	router := mux.NewRouter()
	router.HandleFunc("/api/notifications/settings", handler.GetSettingsHandler).Methods("GET")
	router.HandleFunc("/api/notifications/settings", handler.UpdateSettingsHandler).Methods("PUT")
	router.HandleFunc("/api/notifications/settings/reset", handler.ResetSettingsHandler).Methods("POST")
	router.HandleFunc("/api/notifications/settings/{type}", handler.ToggleSettingHandler).Methods("PUT")
	return router
}

func authedRequest(method, url, body string, userID primitive.ObjectID) *http.Request {
	req := httptest.NewRequest(method, url, strings.NewReader(body))
	claims := &jwtutil.Claims{UserID: userID.Hex()}
	ctx := context.WithValue(req.Context(), middleware.UserContextKey, claims)
	return req.WithContext(ctx)
}

func TestGetSettingsReturnsDefaultsForNewUser(t *testing.T) {
	router := settingsRouter(newMemSettingsStore())
	userID := primitive.NewObjectID()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/api/notifications/settings", "", userID))

	require.Equal(t, http.StatusOK, rec.Code)
	var settings models.NotificationSettings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.True(t, settings.CommentEnabled)
	assert.True(t, settings.LikeEnabled)
	assert.True(t, settings.FollowEnabled)
	assert.True(t, settings.SystemEnabled)
}

func TestUpdateSettingsReplacesAllFlags(t *testing.T) {
	router := settingsRouter(newMemSettingsStore())
	userID := primitive.NewObjectID()

	body := `{"comment_enabled":false,"like_enabled":true,"follow_enabled":false,"system_enabled":true}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/notifications/settings", body, userID))

	require.Equal(t, http.StatusOK, rec.Code)
	var settings models.NotificationSettings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.False(t, settings.CommentEnabled)
	assert.True(t, settings.LikeEnabled)
	assert.False(t, settings.FollowEnabled)
	assert.True(t, settings.SystemEnabled)
}

func TestToggleSettingFlipsSingleFlag(t *testing.T) {
	router := settingsRouter(newMemSettingsStore())
	userID := primitive.NewObjectID()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/notifications/settings/like", "", userID))

	require.Equal(t, http.StatusOK, rec.Code)
	var settings models.NotificationSettings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.False(t, settings.LikeEnabled)
	assert.True(t, settings.CommentEnabled)
}

func TestToggleUnknownTypeRejected(t *testing.T) {
	router := settingsRouter(newMemSettingsStore())
	userID := primitive.NewObjectID()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/notifications/settings/pager", "", userID))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResetRestoresDefaults(t *testing.T) {
	store := newMemSettingsStore()
	router := settingsRouter(store)
	userID := primitive.NewObjectID()

	body := `{"comment_enabled":false,"like_enabled":false,"follow_enabled":false,"system_enabled":false}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPut, "/api/notifications/settings", body, userID))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/api/notifications/settings/reset", "", userID))

	require.Equal(t, http.StatusOK, rec.Code)
	var settings models.NotificationSettings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.True(t, settings.CommentEnabled)
	assert.True(t, settings.LikeEnabled)
	assert.True(t, settings.FollowEnabled)
	assert.True(t, settings.SystemEnabled)
}

func TestSettingsRequireIdentity(t *testing.T) {
	router := settingsRouter(newMemSettingsStore())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/notifications/settings", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
