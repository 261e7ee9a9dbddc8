package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flight-booking-api/internal/model"
)

var dirStub = stubDirectory{airports: []model.Airport{
	{IATA: "DEL", Name: "Indira Gandhi International Airport", City: "New Delhi", Country: "India", Latitude: 28.5562, Longitude: 77.1},
}}

func TestAirportHandler_Search(t *testing.T) {
	h := NewAirportHandler(dirStub)
	e := echo.New()

	cases := []struct {
		query   string
		message string
		count   int
	}{
		{"", "Please provide a search query", 0},
		{"none", "No airports found matching your query", 0},
		{"DEL", `Found 1 airports matching "del"`, 1},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/airports?q="+tc.query, nil), rec)
		require.NoError(t, h.Search(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, tc.message, body["message"])
		assert.Len(t, body["airports"], tc.count)
	}
}

func TestAirportHandler_Lookup(t *testing.T) {
	h := NewAirportHandler(dirStub)
	e := echo.New()

	lookup := func(code string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/airports/"+code, nil), rec)
		c.SetParamNames("code")
		c.SetParamValues(code)
		require.NoError(t, h.Lookup(c))
		return rec
	}

	rec := lookup("DEL")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"iata":"DEL","lat":28.5562,"lng":77.1}`, rec.Body.String())

	rec = lookup("XXX")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
