package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anyulbade/payment-scheme-engine/internal/database"
	"github.com/anyulbade/payment-scheme-engine/internal/dto"
	"github.com/anyulbade/payment-scheme-engine/internal/middleware"
	"github.com/anyulbade/payment-scheme-engine/internal/model"
	"github.com/anyulbade/payment-scheme-engine/internal/repository"
	"github.com/anyulbade/payment-scheme-engine/internal/service"
)

func setupSchemeRouter(t *testing.T) *gin.Engine {
	t.Helper()
	pool := getTestPool(t)
	if pool == nil {
		t.Skip("no database available")
	}
	t.Cleanup(pool.Close)

	database.MigrationsDir = "file://../../migrations"
	t.Cleanup(func() { database.MigrationsDir = "file://migrations" })

	dbURL := testDBURL()
	_ = database.RollbackMigrations(dbURL)
	require.NoError(t, database.RunMigrations(dbURL))
	require.NoError(t, database.SeedData(context.Background(), pool))

	schemeRepo := repository.NewSchemeRepository(pool)
	schemeService := service.NewSchemeService(schemeRepo)
	availabilityService := service.NewAvailabilityService(schemeRepo)
	schemeHandler := NewSchemeHandler(schemeService)
	availabilityHandler := NewAvailabilityHandler(availabilityService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.ErrorHandler())

	api := router.Group("/api/v1")
	api.POST("/schemes", schemeHandler.Create)
	api.GET("/schemes", schemeHandler.List)
	api.GET("/schemes/availability", availabilityHandler.Overview)
	api.GET("/schemes/:id", schemeHandler.Get)
	api.PUT("/schemes/:id", schemeHandler.Update)
	api.DELETE("/schemes/:id", schemeHandler.Delete)
	api.GET("/schemes/:id/availability", schemeHandler.Availability)
	api.POST("/schemes/:id/calculate-fees", schemeHandler.CalculateFees)
	api.POST("/schemes/:id/validate-compatibility", schemeHandler.ValidateCompatibility)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	w := httptest.NewRecorder()
	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func createScheme(t *testing.T, router *gin.Engine, req dto.SaveSchemeRequest) model.Scheme {
	t.Helper()

	w := doJSON(t, router, "POST", "/api/v1/schemes", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var scheme model.Scheme
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &scheme))
	return scheme
}

func bref(v bool) *bool       { return &v }
func fref(v float64) *float64 { return &v }

func euroSchemeRequest() dto.SaveSchemeRequest {
	return dto.SaveSchemeRequest{
		Name:          "Test Euro Transfer",
		Kind:          "fiat",
		Currency:      "EUR",
		CountryScope:  "EU",
		AvailableDays: []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		OperatingHours: &dto.OperatingHoursInput{
			Start: "08:00", End: "18:00", Timezone: "UTC",
		},
		Fees:   &dto.FeesInput{FlatFee: fref(0.5), PercentageFee: fref(0.001)},
		Limits: &dto.LimitsInput{MinAmount: fref(0.01), MaxAmount: fref(1000000)},
	}
}

func TestSchemeHandler_Create(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	router := setupSchemeRouter(t)

	t.Run("happy: fiat scheme with explicit window", func(t *testing.T) {
		scheme := createScheme(t, router, euroSchemeRequest())
		assert.NotEmpty(t, scheme.ID)
		assert.Equal(t, model.KindFiat, scheme.Kind)
		assert.Equal(t, "16:00", scheme.CutOffTime, "fiat default cut-off applies")
		assert.Equal(t, "T+1", scheme.SettlementTime)
	})

	t.Run("happy: crypto defaults filled from kind profile", func(t *testing.T) {
		scheme := createScheme(t, router, dto.SaveSchemeRequest{
			Name:     "Test Chain",
			Kind:     "crypto",
			Currency: "BTC",
		})
		assert.Len(t, scheme.AvailableDays, 7)
		assert.Equal(t, "instant", scheme.SettlementTime)
		assert.Equal(t, "00:00", scheme.OperatingHours.Start)
		assert.Equal(t, "23:59", scheme.OperatingHours.End)
		assert.False(t, scheme.SupportsFx)
	})

	t.Run("happy: currency codes normalized to uppercase", func(t *testing.T) {
		req := euroSchemeRequest()
		req.Name = "Lowercase Currency"
		req.Currency = "eur"
		scheme := createScheme(t, router, req)
		assert.Equal(t, "EUR", scheme.Currency)
	})

	t.Run("happy: fx scheme forces supports_fx", func(t *testing.T) {
		scheme := createScheme(t, router, dto.SaveSchemeRequest{
			Name:           "Test FX Desk",
			Kind:           "fx",
			Currency:       "EUR",
			TargetCurrency: "USD",
			Spread:         fref(0.0025),
			SupportsFx:     bref(false),
		})
		assert.True(t, scheme.SupportsFx)
		require.NotNil(t, scheme.Spread)
		assert.Equal(t, 0.0025, *scheme.Spread)
	})

	t.Run("bad: missing required fields", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/schemes", map[string]any{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad: fx without target currency reports violations", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/schemes", dto.SaveSchemeRequest{
			Name:     "Broken FX",
			Kind:     "fx",
			Currency: "EUR",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ValidationErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Violations, "fx scheme requires a target currency")
	})

	t.Run("bad: inverted operating hours", func(t *testing.T) {
		req := euroSchemeRequest()
		req.Name = "Inverted Hours"
		req.OperatingHours = &dto.OperatingHoursInput{Start: "18:00", End: "08:00", Timezone: "UTC"}
		w := doJSON(t, router, "POST", "/api/v1/schemes", req)
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var resp dto.ValidationErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Violations, "operating hours start must be before end")
	})
}

func TestSchemeHandler_CRUD(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	router := setupSchemeRouter(t)

	t.Run("get returns the stored scheme", func(t *testing.T) {
		created := createScheme(t, router, euroSchemeRequest())

		w := doJSON(t, router, "GET", "/api/v1/schemes/"+created.ID, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var fetched model.Scheme
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &fetched))
		assert.Equal(t, created.ID, fetched.ID)
		assert.Equal(t, created.AvailableDays, fetched.AvailableDays)
		assert.Equal(t, created.OperatingHours, fetched.OperatingHours)
	})

	t.Run("get unknown scheme returns 404", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/v1/schemes/"+uuid.NewString(), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("list paginates and filters by kind", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/v1/schemes?kind=crypto&page_size=5", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data       []model.Scheme `json:"data"`
			Pagination dto.Pagination `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Data)
		for _, s := range resp.Data {
			assert.Equal(t, model.KindCrypto, s.Kind)
		}
		assert.Equal(t, 5, resp.Pagination.PageSize)
	})

	t.Run("update is a full replace", func(t *testing.T) {
		created := createScheme(t, router, euroSchemeRequest())

		req := euroSchemeRequest()
		req.Name = "Renamed Euro Transfer"
		req.Limits = &dto.LimitsInput{MinAmount: fref(1), MaxAmount: fref(500)}
		w := doJSON(t, router, "PUT", "/api/v1/schemes/"+created.ID, req)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var updated model.Scheme
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, "Renamed Euro Transfer", updated.Name)
		require.NotNil(t, updated.Limits.MaxAmount)
		assert.Equal(t, 500.0, *updated.Limits.MaxAmount)
	})

	t.Run("update unknown scheme returns 404", func(t *testing.T) {
		w := doJSON(t, router, "PUT", "/api/v1/schemes/"+uuid.NewString(), euroSchemeRequest())
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("delete removes the scheme", func(t *testing.T) {
		created := createScheme(t, router, euroSchemeRequest())

		w := doJSON(t, router, "DELETE", "/api/v1/schemes/"+created.ID, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = doJSON(t, router, "GET", "/api/v1/schemes/"+created.ID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSchemeHandler_Availability(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	router := setupSchemeRouter(t)
	scheme := createScheme(t, router, euroSchemeRequest())

	t.Run("operational on a weekday morning", func(t *testing.T) {
		w := doJSON(t, router, "GET",
			fmt.Sprintf("/api/v1/schemes/%s/availability?check_time=2026-01-06T10:00:00Z", scheme.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.AvailabilityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.IsOperational)
		assert.Empty(t, resp.Restrictions)
		assert.Nil(t, resp.NextAvailability)
	})

	t.Run("closed on saturday with next opening", func(t *testing.T) {
		w := doJSON(t, router, "GET",
			fmt.Sprintf("/api/v1/schemes/%s/availability?check_time=2026-01-03T12:00:00Z", scheme.ID), nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.AvailabilityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.IsOperational)
		assert.Contains(t, resp.Restrictions, "not operational on saturday")
		require.NotNil(t, resp.NextAvailability)
		assert.Equal(t, "2026-01-05T08:00:00Z", resp.NextAvailability.UTC().Format("2006-01-02T15:04:05Z"))
	})

	t.Run("bad check_time is rejected", func(t *testing.T) {
		w := doJSON(t, router, "GET",
			fmt.Sprintf("/api/v1/schemes/%s/availability?check_time=yesterday", scheme.ID), nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("overview reports every scheme", func(t *testing.T) {
		w := doJSON(t, router, "GET", "/api/v1/schemes/availability?check_time=2026-01-06T10:00:00Z", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Total   int                              `json:"total"`
			Open    int                              `json:"open"`
			Schemes []dto.SchemeAvailabilityOverview `json:"schemes"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, resp.Total, len(resp.Schemes))
		assert.Greater(t, resp.Open, 0)
	})
}

func TestSchemeHandler_CalculateFees(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	router := setupSchemeRouter(t)

	t.Run("fiat breakdown", func(t *testing.T) {
		scheme := createScheme(t, router, euroSchemeRequest())

		w := doJSON(t, router, "POST", "/api/v1/schemes/"+scheme.ID+"/calculate-fees",
			dto.FeeQuoteRequest{Amount: 1000})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp dto.FeeQuoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1000.0, resp.BaseAmount)
		assert.Equal(t, 0.5, resp.FeeBreakdown.FlatFee)
		assert.InDelta(t, 1.0, resp.FeeBreakdown.PercentageFee, 1e-9)
		assert.InDelta(t, 1.5, resp.TotalFee, 1e-9)
		assert.InDelta(t, 1001.5, resp.FinalAmount, 1e-9)
		assert.Equal(t, "EUR", resp.Currency)
	})

	t.Run("fx spread included for a currency pair", func(t *testing.T) {
		scheme := createScheme(t, router, dto.SaveSchemeRequest{
			Name:           "Fee Test FX Desk",
			Kind:           "fx",
			Currency:       "EUR",
			TargetCurrency: "USD",
			Spread:         fref(0.0025),
		})

		w := doJSON(t, router, "POST", "/api/v1/schemes/"+scheme.ID+"/calculate-fees",
			dto.FeeQuoteRequest{Amount: 1000, SourceCurrency: "EUR", TargetCurrency: "USD"})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp dto.FeeQuoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.InDelta(t, 2.5, resp.FeeBreakdown.FxSpreadFee, 1e-9)
	})

	t.Run("bad: non-positive amount", func(t *testing.T) {
		scheme := createScheme(t, router, euroSchemeRequest())
		w := doJSON(t, router, "POST", "/api/v1/schemes/"+scheme.ID+"/calculate-fees",
			map[string]any{"amount": 0})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad: amount outside limits", func(t *testing.T) {
		scheme := createScheme(t, router, euroSchemeRequest())
		w := doJSON(t, router, "POST", "/api/v1/schemes/"+scheme.ID+"/calculate-fees",
			dto.FeeQuoteRequest{Amount: 5000000})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad: unknown scheme", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/schemes/"+uuid.NewString()+"/calculate-fees",
			dto.FeeQuoteRequest{Amount: 100})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSchemeHandler_ValidateCompatibility(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	router := setupSchemeRouter(t)

	// Always-open fx scheme so the availability leg cannot flake on the
	// day the suite runs.
	scheme := createScheme(t, router, dto.SaveSchemeRequest{
		Name:           "Always Open FX",
		Kind:           "fx",
		Currency:       "EUR",
		TargetCurrency: "USD",
		AvailableDays:  []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"},
		OperatingHours: &dto.OperatingHoursInput{Start: "00:00", End: "23:59", Timezone: "UTC"},
		Spread:         fref(0.0025),
		Limits:         &dto.LimitsInput{MinAmount: fref(1), MaxAmount: fref(1000000)},
	})

	t.Run("compatible instruction", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/schemes/"+scheme.ID+"/validate-compatibility",
			dto.CompatibilityRequest{SourceCurrency: "EUR", TargetCurrency: "USD", Amount: 1000})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var resp dto.CompatibilityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.IsCompatible)
		assert.Empty(t, resp.IncompatibilityReasons)
	})

	t.Run("incompatible currencies still return 200", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/schemes/"+scheme.ID+"/validate-compatibility",
			dto.CompatibilityRequest{SourceCurrency: "JPY", TargetCurrency: "CHF", Amount: 1000})
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.CompatibilityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.IsCompatible)
		assert.Contains(t, resp.IncompatibilityReasons, "source currency JPY is not supported by this scheme")
	})

	t.Run("amount outside limits is a reason, not an error", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/schemes/"+scheme.ID+"/validate-compatibility",
			dto.CompatibilityRequest{SourceCurrency: "EUR", TargetCurrency: "USD", Amount: 5000000})
		require.Equal(t, http.StatusOK, w.Code)

		var resp dto.CompatibilityResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.False(t, resp.IsCompatible)
		assert.NotEmpty(t, resp.IncompatibilityReasons)
	})

	t.Run("bad: missing currencies", func(t *testing.T) {
		w := doJSON(t, router, "POST", "/api/v1/schemes/"+scheme.ID+"/validate-compatibility",
			map[string]any{"amount": 100})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
