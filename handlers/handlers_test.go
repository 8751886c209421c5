package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"poojaseva/database/repository"
	"poojaseva/middleware"
	"poojaseva/models"
	"poojaseva/services/booking"
	"poojaseva/services/functions"
	"poojaseva/services/matching"
	"poojaseva/services/selection"
	"poojaseva/services/storage"
	"poojaseva/services/user"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var devotee = models.CurrentUser{ID: "u1", FullName: "Asha", Role: models.RoleDevotee}

// asUser stands in for the JWT middleware.
func asUser(u models.CurrentUser) gin.HandlerFunc {
	return func(c *gin.Context) {
		middleware.SetCurrentUser(c, u)
		c.Next()
	}
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

type memoryStore map[string]selection.Selection

func (m memoryStore) Save(ctx context.Context, s *selection.Selection) error {
	m[s.ID] = *s
	return nil
}

func (m memoryStore) Get(ctx context.Context, id string) (*selection.Selection, error) {
	s, ok := m[id]
	if !ok {
		return nil, selection.ErrSelectionNotFound
	}
	return &s, nil
}

func (m memoryStore) Delete(ctx context.Context, id string) error {
	delete(m, id)
	return nil
}

type stubBookings struct {
	booking.BookingService

	submitted []booking.SubmitRequest
	submitErr error
	byProv    map[string][]models.Booking
}

func (s *stubBookings) Submit(ctx context.Context, req booking.SubmitRequest) (*models.Booking, error) {
	s.submitted = append(s.submitted, req)
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	b := &models.Booking{
		ID:           fmt.Sprintf("b%d", len(s.submitted)),
		PoojaID:      req.PoojaID,
		UserID:       req.UserID,
		ProviderID:   req.ProviderID,
		AutoAssigned: req.ProviderID == nil,
		Status:       models.StatusPending,
	}
	return b, nil
}

func (s *stubBookings) ListForProvider(ctx context.Context, providerID string) ([]models.Booking, error) {
	return s.byProv[providerID], nil
}

type stubMatching struct {
	matching.MatchingService
	result []models.EligibleProvider
}

func (s stubMatching) EligibleProviders(ctx context.Context, poojaID, templeID string) ([]models.EligibleProvider, error) {
	return s.result, nil
}

func submitRouter(bookings *stubBookings, store memoryStore) *gin.Engine {
	h := NewBookingHandler(bookings, &selection.DefaultSelectionService{Store: store})
	r := gin.New()
	r.POST("/api/bookings", asUser(devotee), h.Submit)
	return r
}

func TestSubmitUsesSelectionIntent(t *testing.T) {
	store := memoryStore{}
	sel := selection.New("s1", devotee.ID, "p1", "t1")
	require.NoError(t, sel.ChooseAutoAssign())
	store["s1"] = *sel

	bookings := &stubBookings{}
	w := doJSON(t, submitRouter(bookings, store), http.MethodPost, "/api/bookings", gin.H{
		"selection_id":    "s1",
		"service_mode":    "virtual",
		"date":            "2026-10-20",
		"provider_id":     "ignored",
		"sankalp_details": gin.H{"family_names": []string{"Ravi"}},
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, bookings.submitted, 1)
	req := bookings.submitted[0]
	assert.Nil(t, req.ProviderID)
	assert.True(t, req.AutoAssign)
	assert.Equal(t, "p1", req.PoojaID)
	assert.Equal(t, "t1", req.TempleID)
	assert.Equal(t, devotee.ID, req.UserID)

	closed := store["s1"]
	assert.Equal(t, selection.StateSubmitted, closed.State)
	assert.Equal(t, "b1", closed.BookingID)
}

func TestSubmitManualSelection(t *testing.T) {
	store := memoryStore{}
	sel := selection.New("s1", devotee.ID, "p1", "")
	require.NoError(t, sel.ChooseProvider("pr-9"))
	store["s1"] = *sel

	bookings := &stubBookings{}
	w := doJSON(t, submitRouter(bookings, store), http.MethodPost, "/api/bookings", gin.H{
		"selection_id":    "s1",
		"service_mode":    "in_person",
		"date":            "2026-10-20",
		"auto_assign":     true,
		"sankalp_details": gin.H{"family_names": []string{"Ravi"}},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	req := bookings.submitted[0]
	require.NotNil(t, req.ProviderID)
	assert.Equal(t, "pr-9", *req.ProviderID)
	assert.False(t, req.AutoAssign)
}

func TestSubmitRejectsPoojaOutsideSelection(t *testing.T) {
	tests := []struct {
		name  string
		body  gin.H
		field string
	}{
		{"other pooja", gin.H{"selection_id": "s1", "pooja_id": "p2"}, "pooja_id"},
		{"other temple", gin.H{"selection_id": "s1", "temple_id": "t9"}, "temple_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memoryStore{}
			sel := selection.New("s1", devotee.ID, "p1", "t1")
			require.NoError(t, sel.ChooseProvider("pr-9"))
			store["s1"] = *sel

			bookings := &stubBookings{}
			w := doJSON(t, submitRouter(bookings, store), http.MethodPost, "/api/bookings", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tt.field, decode(t, w)["details"])
			assert.Empty(t, bookings.submitted)
			assert.Equal(t, selection.StateManualProvider, store["s1"].State)
		})
	}
}

func TestSubmitMatchingPoojaWithSelection(t *testing.T) {
	store := memoryStore{}
	sel := selection.New("s1", devotee.ID, "p1", "t1")
	require.NoError(t, sel.ChooseAutoAssign())
	store["s1"] = *sel

	bookings := &stubBookings{}
	w := doJSON(t, submitRouter(bookings, store), http.MethodPost, "/api/bookings", gin.H{
		"selection_id": "s1",
		"pooja_id":     "p1",
		"temple_id":    "t1",
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "p1", bookings.submitted[0].PoojaID)
	assert.Equal(t, "t1", bookings.submitted[0].TempleID)
}

func TestSubmitRejectsEmptySelection(t *testing.T) {
	store := memoryStore{}
	store["s1"] = *selection.New("s1", devotee.ID, "p1", "")

	bookings := &stubBookings{}
	w := doJSON(t, submitRouter(bookings, store), http.MethodPost, "/api/bookings", gin.H{
		"selection_id": "s1",
		"service_mode": "virtual",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, selection.ErrNothingSelected.Error(), decode(t, w)["error"])
	assert.Empty(t, bookings.submitted)
	assert.Equal(t, selection.StateNoneSelected, store["s1"].State)
}

func TestSubmitForeignSelectionNotFound(t *testing.T) {
	store := memoryStore{}
	sel := selection.New("s1", "someone-else", "p1", "")
	require.NoError(t, sel.ChooseAutoAssign())
	store["s1"] = *sel

	bookings := &stubBookings{}
	w := doJSON(t, submitRouter(bookings, store), http.MethodPost, "/api/bookings", gin.H{"selection_id": "s1"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, bookings.submitted)
}

func TestSubmitFailureKeepsSelectionOpen(t *testing.T) {
	store := memoryStore{}
	sel := selection.New("s1", devotee.ID, "p1", "")
	require.NoError(t, sel.ChooseAutoAssign())
	store["s1"] = *sel

	bookings := &stubBookings{submitErr: fmt.Errorf("%w: %w", booking.ErrSubmitFailed, errors.New("mongo down"))}
	w := doJSON(t, submitRouter(bookings, store), http.MethodPost, "/api/bookings", gin.H{"selection_id": "s1"})

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "booking failed, please try again", decode(t, w)["error"])
	assert.Equal(t, selection.StateAutoAssign, store["s1"].State)
}

func TestWriteErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &booking.ValidationError{Field: "sankalp_details.family_names", Message: "please add at least one name"}, http.StatusBadRequest},
		{"transition", &booking.TransitionError{BookingID: "b1", Action: "accept", Status: models.StatusCompleted}, http.StatusConflict},
		{"submit failed", fmt.Errorf("%w: boom", booking.ErrSubmitFailed), http.StatusBadGateway},
		{"forbidden", booking.ErrForbidden, http.StatusForbidden},
		{"not found", fmt.Errorf("load: %w", repository.ErrNotFound), http.StatusNotFound},
		{"selection missing", selection.ErrSelectionNotFound, http.StatusNotFound},
		{"nothing selected", selection.ErrNothingSelected, http.StatusBadRequest},
		{"already submitted", selection.ErrAlreadySubmitted, http.StatusConflict},
		{"unknown folder", storage.ErrUnknownMediaKind, http.StatusBadRequest},
		{"weak password", &user.InputError{Field: "password", Message: "password must include at least one number"}, http.StatusBadRequest},
		{"email taken", user.ErrEmailTaken, http.StatusConflict},
		{"bad login", user.ErrInvalidCredentials, http.StatusUnauthorized},
		{"functions off", functions.ErrNotConfigured, http.StatusServiceUnavailable},
		{"remote", &functions.RemoteError{Function: "getAvailablePoojaSlots", StatusCode: 500}, http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			writeError(c, tt.err)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestValidationErrorCarriesField(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
	writeError(c, &booking.ValidationError{Field: "sankalp_details.family_names", Message: "please add at least one name"})

	body := decode(t, w)
	assert.Equal(t, "please add at least one name", body["error"])
	assert.Equal(t, "sankalp_details.family_names", body["details"])
}

func TestEligibleProviders(t *testing.T) {
	ranked := []models.EligibleProvider{
		{Provider: models.Provider{ID: "a", VerificationTier: models.TierElite}, MatchedBy: "ritual", Rank: 1, Preferred: true},
		{Provider: models.Provider{ID: "b", VerificationTier: models.TierGold}, MatchedBy: "category", Rank: 2},
	}

	t.Run("ranked list", func(t *testing.T) {
		r := gin.New()
		r.GET("/eligible", NewProviderHandler(stubMatching{result: ranked}, nil, nil).Eligible)
		w := doJSON(t, r, http.MethodGet, "/eligible?pooja_id=p1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.EqualValues(t, 2, body["count"])
		assert.NotContains(t, body, "message")
		first := body["providers"].([]any)[0].(map[string]any)
		assert.Equal(t, "a", first["id"])
		assert.Equal(t, true, first["preferred"])
	})

	t.Run("empty suggests auto-assign", func(t *testing.T) {
		r := gin.New()
		r.GET("/eligible", NewProviderHandler(stubMatching{}, nil, nil).Eligible)
		w := doJSON(t, r, http.MethodGet, "/eligible?pooja_id=p1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.EqualValues(t, 0, body["count"])
		assert.Equal(t, noProvidersMessage, body["message"])
	})

	t.Run("pooja required", func(t *testing.T) {
		r := gin.New()
		r.GET("/eligible", NewProviderHandler(stubMatching{}, nil, nil).Eligible)
		w := doJSON(t, r, http.MethodGet, "/eligible", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestProviderBookingsAccess(t *testing.T) {
	bookings := &stubBookings{byProv: map[string][]models.Booking{"pr-1": {{ID: "b1"}}}}
	h := NewProviderHandler(nil, nil, bookings)

	tests := []struct {
		name string
		user models.CurrentUser
		want int
	}{
		{"own inbox", models.CurrentUser{ID: "u2", Role: models.RoleProvider, ProviderID: "pr-1"}, http.StatusOK},
		{"other provider", models.CurrentUser{ID: "u3", Role: models.RoleProvider, ProviderID: "pr-2"}, http.StatusForbidden},
		{"admin", models.CurrentUser{ID: "u4", Role: models.RoleAdmin}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/providers/:id/bookings", asUser(tt.user), h.ListBookings)
			w := doJSON(t, r, http.MethodGet, "/providers/pr-1/bookings", nil)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

type stubMedia struct {
	kind     storage.MediaKind
	provider string
	content  string
}

func (s *stubMedia) UploadProviderMedia(ctx context.Context, providerID string, kind storage.MediaKind, file io.Reader) (*storage.Asset, error) {
	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	s.kind, s.provider, s.content = kind, providerID, string(raw)
	return &storage.Asset{URL: "https://cdn.example/a.png", PublicID: "poojaseva/avatars/pr-1/a"}, nil
}

func uploadRequest(t *testing.T, path string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "avatar.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("png-bytes"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadProviderMedia(t *testing.T) {
	provider := models.CurrentUser{ID: "u2", Role: models.RoleProvider, ProviderID: "pr-1"}

	t.Run("stores avatar", func(t *testing.T) {
		media := &stubMedia{}
		r := gin.New()
		r.POST("/uploads/:folder", asUser(provider), NewStorageHandler(media).Upload)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, uploadRequest(t, "/uploads/avatars"))

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "https://cdn.example/a.png", decode(t, w)["url"])
		assert.Equal(t, storage.MediaAvatar, media.kind)
		assert.Equal(t, "pr-1", media.provider)
		assert.Equal(t, "png-bytes", media.content)
	})

	t.Run("unknown folder", func(t *testing.T) {
		r := gin.New()
		r.POST("/uploads/:folder", asUser(provider), NewStorageHandler(&stubMedia{}).Upload)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, uploadRequest(t, "/uploads/selfies"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("devotee rejected", func(t *testing.T) {
		r := gin.New()
		r.POST("/uploads/:folder", asUser(devotee), NewStorageHandler(&stubMedia{}).Upload)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, uploadRequest(t, "/uploads/avatars"))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
