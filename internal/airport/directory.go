// Package airport is the in-memory airport directory.  The table is loaded
// once at startup and is read-only afterwards, so a *Directory is safe for
// concurrent use without locking.
package airport

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iliyamo/flight-booking-api/internal/model"
)

// MaxResults bounds the length of a Search result.
const MaxResults = 10

//go:embed airports.yaml
var embedded []byte

// Directory maps IATA codes to airports.
type Directory struct {
	byCode map[string]model.Airport
	list   []model.Airport // sorted by code; fixes the iteration order of Search
}

// New builds a directory from records.  Records with a malformed code or
// out-of-range coordinates are dropped; a later duplicate replaces an
// earlier one.
func New(records []model.Airport) *Directory {
	d := &Directory{byCode: make(map[string]model.Airport, len(records))}
	for _, a := range records {
		a.IATA = strings.ToUpper(strings.TrimSpace(a.IATA))
		if err := validate(a); err != nil {
			log.Printf("airport: skipping record %q: %v", a.IATA, err)
			continue
		}
		d.byCode[a.IATA] = a
	}
	d.list = make([]model.Airport, 0, len(d.byCode))
	for _, a := range d.byCode {
		d.list = append(d.list, a)
	}
	sort.Slice(d.list, func(i, j int) bool { return d.list[i].IATA < d.list[j].IATA })
	return d
}

// Load reads the dataset at path, or the embedded dataset when path is empty.
// A path ending in .csv is read as the airportsdata airports.csv table;
// anything else is YAML in the embedded layout.
func Load(path string) (*Directory, error) {
	data := embedded
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read airports file: %w", err)
		}
		data = b
	}
	var records []model.Airport
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		var err error
		if records, err = parseCSV(data); err != nil {
			return nil, fmt.Errorf("parse airports csv: %w", err)
		}
		return New(records), nil
	}
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse airports: %w", err)
	}
	return New(records), nil
}

// Len returns the number of airports loaded.
func (d *Directory) Len() int { return len(d.list) }

// Get returns the airport with the given code.
func (d *Directory) Get(code string) (model.Airport, bool) {
	a, ok := d.byCode[strings.ToUpper(strings.TrimSpace(code))]
	return a, ok
}

// Lookup returns the coordinates of code, or false when it is unknown.
func (d *Directory) Lookup(code string) (model.Coordinates, bool) {
	a, ok := d.Get(code)
	if !ok {
		return model.Coordinates{}, false
	}
	return model.Coordinates{IATA: a.IATA, Lat: a.Latitude, Lng: a.Longitude}, true
}

// Search returns up to MaxResults airports whose code, city, name or country
// contains query, case-insensitively.  Matches whose code, city or name
// starts with the query rank first, in that order of precedence.  An empty
// query matches nothing.
func (d *Directory) Search(query string) []model.Airport {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []model.Airport{}
	}

	type hit struct {
		a    model.Airport
		rank [3]bool
	}
	var hits []hit
	for _, a := range d.list {
		code := strings.ToLower(a.IATA)
		city := strings.ToLower(a.City)
		name := strings.ToLower(a.Name)
		country := strings.ToLower(a.Country)
		if !strings.Contains(code, q) && !strings.Contains(city, q) &&
			!strings.Contains(name, q) && !strings.Contains(country, q) {
			continue
		}
		hits = append(hits, hit{a: a, rank: [3]bool{
			strings.HasPrefix(code, q),
			strings.HasPrefix(city, q),
			strings.HasPrefix(name, q),
		}})
	}

	sort.SliceStable(hits, func(i, j int) bool { return rankAbove(hits[i].rank, hits[j].rank) })

	if len(hits) > MaxResults {
		hits = hits[:MaxResults]
	}
	out := make([]model.Airport, len(hits))
	for i, h := range hits {
		out[i] = h.a
	}
	return out
}

// rankAbove compares two prefix tuples lexicographically with true > false.
func rankAbove(a, b [3]bool) bool {
	for k := range a {
		if a[k] != b[k] {
			return a[k]
		}
	}
	return false
}

func validate(a model.Airport) error {
	if len(a.IATA) != 3 {
		return fmt.Errorf("code must be 3 letters")
	}
	for _, r := range a.IATA {
		if r < 'A' || r > 'Z' {
			return fmt.Errorf("code must be 3 letters")
		}
	}
	if a.Latitude < -90 || a.Latitude > 90 {
		return fmt.Errorf("latitude %v out of range", a.Latitude)
	}
	if a.Longitude < -180 || a.Longitude > 180 {
		return fmt.Errorf("longitude %v out of range", a.Longitude)
	}
	return nil
}
