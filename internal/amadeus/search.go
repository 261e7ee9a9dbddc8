package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/iliyamo/flight-booking-api/internal/apperr"
	"github.com/iliyamo/flight-booking-api/internal/model"
)

const (
	searchPath      = "/v2/shopping/flight-offers"
	maxResponseSize = 10 << 20
)

// SearchRequest is a one-way search for a single adult.
type SearchRequest struct {
	Source      string
	Destination string
	Date        string // YYYY-MM-DD
}

// Missing lists the names of empty fields.
func (r SearchRequest) Missing() []string {
	var missing []string
	if strings.TrimSpace(r.Source) == "" {
		missing = append(missing, "source")
	}
	if strings.TrimSpace(r.Destination) == "" {
		missing = append(missing, "destination")
	}
	if strings.TrimSpace(r.Date) == "" {
		missing = append(missing, "date")
	}
	return missing
}

// SearchResult is the outcome of one search.  Received counts the offers the
// upstream returned, including ones dropped during normalization.
type SearchResult struct {
	Flights  []model.FlightOffer
	Received int
}

// SearchFlights returns the normalized offers for req sorted by ascending
// price.  An unauthorized response invalidates the cached token and the
// search is retried exactly once.  No offers is an empty slice, not an error.
func (c *Client) SearchFlights(ctx context.Context, req SearchRequest) (SearchResult, error) {
	if missing := req.Missing(); len(missing) > 0 {
		return SearchResult{}, apperr.Validation("Missing required fields: " + strings.Join(missing, ", "))
	}
	params := searchParams(req)

	token, err := c.Token(ctx)
	if err != nil {
		return SearchResult{}, apperr.UpstreamAuth("Failed to authenticate with Amadeus API", err)
	}
	status, body, err := c.search(ctx, token, params)
	if err == nil && status == http.StatusUnauthorized {
		log.Printf("amadeus: search unauthorized, refreshing token and retrying once")
		c.Invalidate(token)
		token, err = c.Token(ctx)
		if err != nil {
			return SearchResult{}, apperr.UpstreamAuth("Failed to authenticate with Amadeus API", err)
		}
		status, body, err = c.search(ctx, token, params)
	}
	if err != nil {
		return SearchResult{}, apperr.Upstream("Failed to fetch flight data", err)
	}

	switch {
	case status == http.StatusUnauthorized:
		return SearchResult{}, apperr.UpstreamAuth("Failed to authenticate with Amadeus API", fmt.Errorf("search status %d", status))
	case status >= 400 && status < 500:
		return SearchResult{}, apperr.UpstreamRequest("API Error: " + errorDetail(body))
	case status != http.StatusOK:
		return SearchResult{}, apperr.Upstream("Failed to fetch flight data", fmt.Errorf("search status %d", status))
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return SearchResult{}, apperr.Upstream("Failed to process flight data", err)
	}
	return SearchResult{Flights: normalize(resp), Received: len(resp.Data)}, nil
}

func (c *Client) search(ctx context.Context, token string, params url.Values) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+searchPath+"?"+params.Encode(), nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxResponseSize))
	if err != nil {
		return 0, nil, err
	}
	return res.StatusCode, body, nil
}

func searchParams(req SearchRequest) url.Values {
	return url.Values{
		"originLocationCode":      {strings.ToUpper(strings.TrimSpace(req.Source))},
		"destinationLocationCode": {strings.ToUpper(strings.TrimSpace(req.Destination))},
		"departureDate":           {strings.TrimSpace(req.Date)},
		"adults":                  {"1"},
		"children":                {"0"},
		"infants":                 {"0"},
		"travelClass":             {"ECONOMY"},
		"nonStop":                 {"false"},
		"currencyCode":            {"INR"},
		"max":                     {"25"},
	}
}

// errorDetail extracts errors[0].detail from an upstream error body.
func errorDetail(body []byte) string {
	var e struct {
		Errors []struct {
			Detail string `json:"detail"`
			Title  string `json:"title"`
		} `json:"errors"`
	}
	if json.Unmarshal(body, &e) == nil && len(e.Errors) > 0 {
		if e.Errors[0].Detail != "" {
			return e.Errors[0].Detail
		}
		if e.Errors[0].Title != "" {
			return e.Errors[0].Title
		}
	}
	return "Invalid request"
}

type searchResponse struct {
	Data         []offer `json:"data"`
	Dictionaries struct {
		Carriers map[string]string `json:"carriers"`
		Aircraft map[string]string `json:"aircraft"`
	} `json:"dictionaries"`
}

type offer struct {
	Itineraries []struct {
		Duration string    `json:"duration"`
		Segments []segment `json:"segments"`
	} `json:"itineraries"`
	Price struct {
		Total    string `json:"total"`
		Currency string `json:"currency"`
	} `json:"price"`
	TravelerPricings []struct {
		FareDetailsBySegment []struct {
			Cabin               string         `json:"cabin"`
			IncludedCheckedBags map[string]any `json:"includedCheckedBags"`
			IncludedCabinBags   map[string]any `json:"includedCabinBags"`
		} `json:"fareDetailsBySegment"`
	} `json:"travelerPricings"`
}

type segment struct {
	Departure struct {
		IATACode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"departure"`
	Arrival struct {
		IATACode string `json:"iataCode"`
		At       string `json:"at"`
	} `json:"arrival"`
	CarrierCode string `json:"carrierCode"`
	Number      string `json:"number"`
	Aircraft    struct {
		Code string `json:"code"`
	} `json:"aircraft"`
	NumberOfStops int `json:"numberOfStops"`
}

// normalize flattens each offer to its first itinerary and first segment.
// Offers without a segment or with an unreadable price are skipped.
func normalize(resp searchResponse) []model.FlightOffer {
	out := make([]model.FlightOffer, 0, len(resp.Data))
	for i, o := range resp.Data {
		if len(o.Itineraries) == 0 || len(o.Itineraries[0].Segments) == 0 {
			log.Printf("amadeus: offer %d has no segments, skipped", i)
			continue
		}
		price, err := strconv.ParseFloat(o.Price.Total, 64)
		if err != nil {
			log.Printf("amadeus: offer %d has unreadable price %q, skipped", i, o.Price.Total)
			continue
		}
		itin := o.Itineraries[0]
		seg := itin.Segments[0]

		airline := seg.CarrierCode
		if name, ok := resp.Dictionaries.Carriers[seg.CarrierCode]; ok && name != "" {
			airline = name
		}
		aircraft := "Unknown Aircraft"
		if name, ok := resp.Dictionaries.Aircraft[seg.Aircraft.Code]; ok && name != "" {
			aircraft = name
		}

		f := model.FlightOffer{
			Airline:       airline,
			FlightNumber:  seg.CarrierCode + seg.Number,
			Origin:        seg.Departure.IATACode,
			Destination:   seg.Arrival.IATACode,
			DepartureTime: seg.Departure.At,
			ArrivalTime:   seg.Arrival.At,
			Duration:      itin.Duration,
			Price:         price,
			Currency:      o.Price.Currency,
			NumberOfStops: seg.NumberOfStops,
			Aircraft:      aircraft,
			Baggage:       model.Baggage{Checked: map[string]any{}, Cabin: map[string]any{}},
		}
		if len(o.TravelerPricings) > 0 && len(o.TravelerPricings[0].FareDetailsBySegment) > 0 {
			fd := o.TravelerPricings[0].FareDetailsBySegment[0]
			f.Cabin = fd.Cabin
			if fd.IncludedCheckedBags != nil {
				f.Baggage.Checked = fd.IncludedCheckedBags
			}
			if fd.IncludedCabinBags != nil {
				f.Baggage.Cabin = fd.IncludedCabinBags
			}
		}
		out = append(out, f)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}
