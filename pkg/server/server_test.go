package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/de-tools/instance-atlas/pkg/models/api"
	"github.com/de-tools/instance-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context) (*domain.UtilizationReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UtilizationReport), args.Error(1)
}

func TestWebAPI_Endpoints(t *testing.T) {
	logger := zerolog.New(zerolog.NewTestWriter(t))

	end := time.Date(2024, 3, 8, 6, 0, 0, 0, time.UTC)
	report := &domain.UtilizationReport{
		Region:      "us-west-2",
		Window:      domain.ReportWindow{Start: end.Add(-7 * 24 * time.Hour), End: end},
		GeneratedAt: end,
		Records: []domain.UtilizationRecord{
			{
				InstanceID:     "i-abc",
				InstanceType:   "t3.large",
				Name:           "N/A",
				CPUAvgPct:      5.0,
				MemAvgPct:      0.0,
				Recommendation: domain.RecommendationDownsize,
			},
		},
	}

	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything).Return(report, nil)

	webAPI := NewWebAPI(logger, Config{
		Addr:         ":8080",
		Dependencies: Dependencies{Report: gen},
	})

	t.Run("GET /api/v1/report", func(t *testing.T) {
		rec := httptest.NewRecorder()
		webAPI.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/report", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var got api.UtilizationReport
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got.Records, 1)
		assert.Equal(t, "i-abc", got.Records[0].InstanceID)
	})

	t.Run("GET /api/v1/report.csv", func(t *testing.T) {
		rec := httptest.NewRecorder()
		webAPI.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/report.csv", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Body.String(), "Instance ID,Instance Type")
	})

	t.Run("GET /api/v1/report.html", func(t *testing.T) {
		rec := httptest.NewRecorder()
		webAPI.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/report.html", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "badge-critical")
	})

	t.Run("unknown route", func(t *testing.T) {
		rec := httptest.NewRecorder()
		webAPI.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/nope", nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
