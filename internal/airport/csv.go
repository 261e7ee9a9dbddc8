package airport

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/iliyamo/flight-booking-api/internal/model"
)

// csvColumns are the airportsdata headers read by parseCSV.  subd is
// optional; the others must be present.
var csvColumns = []string{"iata", "name", "city", "country", "lat", "lon"}

// parseCSV reads the airportsdata airports.csv layout (icao, iata, name,
// city, subd, country, elevation, lat, lon, tz, lid) by header name.  Rows
// without an IATA code are ICAO-only fields and are skipped.
func parseCSV(data []byte) ([]model.Airport, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range csvColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("missing column %q", name)
		}
	}
	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []model.Airport
	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		code := field(row, "iata")
		if code == "" {
			continue
		}
		lat, err := strconv.ParseFloat(field(row, "lat"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: lat: %w", line, err)
		}
		lon, err := strconv.ParseFloat(field(row, "lon"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: lon: %w", line, err)
		}
		out = append(out, model.Airport{
			IATA:      code,
			Name:      field(row, "name"),
			City:      field(row, "city"),
			State:     field(row, "subd"),
			Country:   field(row, "country"),
			Latitude:  lat,
			Longitude: lon,
		})
	}
}
