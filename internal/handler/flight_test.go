package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flight-booking-api/internal/amadeus"
	"github.com/iliyamo/flight-booking-api/internal/apperr"
	"github.com/iliyamo/flight-booking-api/internal/model"
)

func optimize(t *testing.T, h *FlightHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(jsonRequest(http.MethodPost, "/api/optimize", body), rec)
	require.NoError(t, h.Optimize(c))
	return rec
}

func TestFlightHandler_Optimize(t *testing.T) {
	f := &MockFlightSearcher{}
	f.On("SearchFlights", mock.Anything, amadeus.SearchRequest{Source: "del", Destination: "bom", Date: "2025-06-17"}).
		Return(amadeus.SearchResult{
			Flights:  []model.FlightOffer{{FlightNumber: "6E2031", Price: 3000}, {FlightNumber: "AI101", Price: 5000}},
			Received: 2,
		}, nil)
	h := NewFlightHandler(f, dirStub)

	rec := optimize(t, h, `{"source":"del","destination":"bom","date":"2025-06-17"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "DEL", body["source"])
	assert.Equal(t, "BOM", body["destination"])
	assert.EqualValues(t, 2, body["total_flights"])
	assert.EqualValues(t, 1137.4, body["distance_km"])
	flights := body["flights"].([]any)
	assert.EqualValues(t, 3000, flights[0].(map[string]any)["price"])
	f.AssertExpectations(t)
}

func TestFlightHandler_NoFlights(t *testing.T) {
	f := &MockFlightSearcher{}
	f.On("SearchFlights", mock.Anything, mock.Anything).Return(amadeus.SearchResult{Flights: []model.FlightOffer{}}, nil)

	rec := optimize(t, NewFlightHandler(f, dirStub), `{"source":"DEL","destination":"BOM","date":"2025-06-17"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "No flights found for the specified route and date", body["message"])
	assert.Empty(t, body["flights"])
	assert.NotContains(t, body, "total_flights")
}

func TestFlightHandler_AllOffersDropped(t *testing.T) {
	f := &MockFlightSearcher{}
	f.On("SearchFlights", mock.Anything, mock.Anything).Return(amadeus.SearchResult{Flights: []model.FlightOffer{}, Received: 3}, nil)

	rec := optimize(t, NewFlightHandler(f, dirStub), `{"source":"DEL","destination":"BOM","date":"2025-06-17"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.NotContains(t, body, "message")
	assert.Equal(t, []any{}, body["flights"])
	assert.Equal(t, "DEL", body["source"])
	assert.Equal(t, "2025-06-17", body["date"])
	assert.EqualValues(t, 0, body["total_flights"])
}

func TestFlightHandler_ErrorMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"missing fields", apperr.Validation("Missing required fields: date"), http.StatusBadRequest, "Missing required fields: date"},
		{"upstream rejected", apperr.UpstreamRequest("API Error: Invalid date format"), http.StatusBadRequest, "API Error: Invalid date format"},
		{"upstream auth", apperr.UpstreamAuth("Failed to authenticate with Amadeus API", errors.New("401")), http.StatusInternalServerError, "Failed to authenticate with Amadeus API"},
		{"transport", apperr.Upstream("Failed to fetch flight data", errors.New("dial tcp")), http.StatusInternalServerError, "Failed to fetch flight data"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := &MockFlightSearcher{}
			f.On("SearchFlights", mock.Anything, mock.Anything).Return(nil, tc.err)

			rec := optimize(t, NewFlightHandler(f, dirStub), `{"source":"DEL","destination":"BOM"}`)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.msg, decodeBody(t, rec)["error"])
		})
	}
}

func TestHTTPErrorHandler(t *testing.T) {
	e := echo.New()
	e.HTTPErrorHandler = HTTPErrorHandler

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not Found"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	HTTPErrorHandler(errors.New("raw driver text"), c)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}
