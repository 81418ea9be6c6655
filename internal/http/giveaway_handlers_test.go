package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giveaway-bot/internal/features/giveaway/models"
	giveawayservice "giveaway-bot/internal/features/giveaway/service"
)

// stubService serves canned giveaways to the handlers.
type stubService struct {
	open map[int64]*models.Giveaway
}

func (s *stubService) Create(context.Context, int64, int64) (*models.Giveaway, error) {
	panic("not used")
}

func (s *stubService) Join(context.Context, int64, string, int64, string) (int, error) {
	panic("not used")
}

func (s *stubService) Draw(context.Context, int64, int64) (*giveawayservice.DrawResult, error) {
	panic("not used")
}

func (s *stubService) ListOpen(context.Context) ([]*models.Giveaway, error) {
	giveaways := make([]*models.Giveaway, 0, len(s.open))
	for _, g := range s.open {
		giveaways = append(giveaways, g)
	}
	return giveaways, nil
}

func (s *stubService) GetByChannel(_ context.Context, channelID int64) (*models.Giveaway, error) {
	giveaway, ok := s.open[channelID]
	if !ok {
		return nil, giveawayservice.ErrNoActiveGiveaway
	}
	return giveaway, nil
}

func newTestRouter(adminToken string) http.Handler {
	service := &stubService{open: map[int64]*models.Giveaway{
		-100: {
			ID:           "g1",
			ChannelID:    -100,
			Status:       models.GiveawayStatusOpen,
			WinnersCount: 3,
			Participants: []models.Participant{{UserID: 1, Username: "alice"}},
			LedgerURL:    "https://ledger.example/g1.csv",
		},
	}}
	return NewRouter(service, "*", adminToken, false)
}

func TestHealth(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter("").ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListActive(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter("").ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/giveaways/active", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var summaries []giveawaySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, "g1", summaries[0].ID)
	assert.Equal(t, 1, summaries[0].ParticipantsCount)
}

func TestGetByChannel(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter("").ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/giveaways/-100", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var summary giveawaySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	assert.Equal(t, int64(-100), summary.ChannelID)
	assert.Equal(t, "open", summary.Status)
}

func TestGetByChannel_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter("").ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/giveaways/-999", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetByChannel_InvalidID(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter("").ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/giveaways/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestBearerAuth(t *testing.T) {
	router := newTestRouter("secret")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/giveaways/active", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest("GET", "/api/v1/giveaways/active", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Health stays open.
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
