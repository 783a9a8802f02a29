package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finplanner/advisor-booking-service/internal/domain"
	getAvailableSlots "github.com/finplanner/advisor-booking-service/internal/usecase/get_available_slots"
	"github.com/finplanner/advisor-booking-service/pkg/types"
)

type fakeUseCase struct {
	resp    *getAvailableSlots.Response
	err     error
	lastReq *getAvailableSlots.Request
}

func (f *fakeUseCase) Execute(ctx context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

type noopLogger struct{}

func (noopLogger) Info(format string, v ...interface{})  {}
func (noopLogger) Warn(format string, v ...interface{})  {}
func (noopLogger) Error(format string, v ...interface{}) {}

func newRouter(uc *fakeUseCase) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/advisors/{advisorId}/available-slots", NewHandler(uc, noopLogger{}).Handle).Methods(http.MethodGet)
	return router
}

func doRequest(t *testing.T, router *mux.Router, url string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestHandle_Success(t *testing.T) {
	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		AdvisorID: 1,
		Timezone:  "UTC",
		StartDate: monday,
		EndDate:   monday,
		Slots: []domain.CandidateSlot{{
			Date:      monday,
			StartTime: types.TimeString("09:00"),
			EndTime:   types.TimeString("09:30"),
			Start:     monday.Add(9 * time.Hour),
			End:       monday.Add(9*time.Hour + 30*time.Minute),
		}},
	}}

	rec := doRequest(t, newRouter(uc), "/api/v1/advisors/1/available-slots?startDate=2026-03-16&endDate=2026-03-16")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, int64(1), resp.AdvisorID)
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "2026-03-16", resp.Slots[0].Date)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime)
	assert.Equal(t, "2026-03-16T09:00:00Z", resp.Slots[0].Start)

	require.NotNil(t, uc.lastReq)
	assert.Equal(t, int64(1), uc.lastReq.AdvisorID)
	assert.True(t, uc.lastReq.StartDate.Equal(monday))
}

func TestHandle_BadInput(t *testing.T) {
	tests := []struct {
		name string
		url  string
	}{
		{"bad advisor id", "/api/v1/advisors/abc/available-slots?startDate=2026-03-16&endDate=2026-03-16"},
		{"missing dates", "/api/v1/advisors/1/available-slots"},
		{"bad date format", "/api/v1/advisors/1/available-slots?startDate=16.03.2026&endDate=2026-03-16"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newRouter(&fakeUseCase{}), tt.url)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"advisor not found", getAvailableSlots.ErrAdvisorNotFound, http.StatusNotFound},
		{"invalid range", getAvailableSlots.ErrInvalidRange, http.StatusBadRequest},
		{"range too wide", getAvailableSlots.ErrRangeTooWide, http.StatusBadRequest},
		{"internal error", getAvailableSlots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, newRouter(&fakeUseCase{err: tt.err}),
				"/api/v1/advisors/1/available-slots?startDate=2026-03-16&endDate=2026-03-16")
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
