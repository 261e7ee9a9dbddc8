package airport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/flight-booking-api/internal/model"
)

func codes(list []model.Airport) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.IATA
	}
	return out
}

func TestSearch_CityPrefixBeatsMidNameMatch(t *testing.T) {
	d := New([]model.Airport{
		// "new" only appears in the middle of the name
		{IATA: "AAA", Name: "Renewal Field", City: "Springfield", Country: "US"},
		{IATA: "ZZZ", Name: "Liberty Airport", City: "New Haven", Country: "US"},
	})

	got := d.Search("new")
	assert.Equal(t, []string{"ZZZ", "AAA"}, codes(got))
}

func TestSearch_RankOrder(t *testing.T) {
	d := New([]model.Airport{
		{IATA: "AAB", Name: "Some Del Field", City: "Elsewhere", Country: "IN"},
		{IATA: "AAC", Name: "Delta Field", City: "Elsewhere", Country: "IN"},
		{IATA: "AAD", Name: "Field", City: "Delhi Cantt", Country: "IN"},
		{IATA: "DEL", Name: "Indira Gandhi International Airport", City: "New Delhi", Country: "IN"},
	})

	got := d.Search("DEL")
	// code prefix, then city prefix, then name prefix, then plain substring
	assert.Equal(t, []string{"DEL", "AAD", "AAC", "AAB"}, codes(got))
}

func TestSearch_MatchesCountryCaseInsensitive(t *testing.T) {
	d := New([]model.Airport{
		{IATA: "LHR", Name: "Heathrow Airport", City: "London", Country: "GB"},
		{IATA: "JFK", Name: "John F. Kennedy International Airport", City: "New York", Country: "US"},
	})
	assert.Equal(t, []string{"LHR"}, codes(d.Search("gb")))
	assert.Equal(t, []string{"JFK"}, codes(d.Search("KENNEDY")))
}

func TestSearch_EmptyAndNoMatch(t *testing.T) {
	d := New([]model.Airport{{IATA: "DEL", Name: "Indira Gandhi", City: "New Delhi", Country: "IN"}})

	got := d.Search("   ")
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Empty(t, d.Search("zzzz"))
}

func TestSearch_TruncatesToTen(t *testing.T) {
	var recs []model.Airport
	for _, c := range []string{"AAA", "AAB", "AAC", "AAD", "AAE", "AAF", "AAG", "AAH", "AAI", "AAJ", "AAK", "AAL"} {
		recs = append(recs, model.Airport{IATA: c, Name: "International", City: "Somewhere", Country: "XX"})
	}
	d := New(recs)
	assert.Len(t, d.Search("international"), MaxResults)
}

func TestNew_DropsInvalidRecords(t *testing.T) {
	d := New([]model.Airport{
		{IATA: "del", Name: "Lowercase ok", Latitude: 28.5, Longitude: 77.1},
		{IATA: "TOOLONG"},
		{IATA: "B1M"},
		{IATA: "XXX", Latitude: 91},
		{IATA: "YYY", Longitude: -181},
	})
	assert.Equal(t, 1, d.Len())
	_, ok := d.Get("DEL")
	assert.True(t, ok)
}

func TestLookup(t *testing.T) {
	d := New([]model.Airport{{IATA: "BOM", Name: "CSMIA", City: "Mumbai", Latitude: 19.0896, Longitude: 72.8656}})

	c, ok := d.Lookup("bom")
	require.True(t, ok)
	assert.Equal(t, model.Coordinates{IATA: "BOM", Lat: 19.0896, Lng: 72.8656}, c)

	_, ok = d.Lookup("XYZ")
	assert.False(t, ok)
}

func TestLoad_Embedded(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, d.Len(), 600)

	del, ok := d.Get("DEL")
	require.True(t, ok)
	assert.Equal(t, "New Delhi", del.City)

	for _, code := range []string{"BOM", "LHR", "JFK", "SIN", "DXB", "SYD", "GRU", "JNB", "NRT", "IXZ"} {
		_, ok := d.Lookup(code)
		assert.True(t, ok, code)
	}

	// city-prefix hits come before airports that only mention "new" in the name
	got := d.Search("new")
	require.Len(t, got, MaxResults)
	cityHits := 0
	for _, a := range got {
		if !strings.HasPrefix(strings.ToLower(a.City), "new") {
			break
		}
		cityHits++
	}
	assert.GreaterOrEqual(t, cityHits, 5)
	for _, a := range got[cityHits:] {
		assert.False(t, strings.HasPrefix(strings.ToLower(a.City), "new"), a.City)
	}
}

func TestLoad_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.csv")
	data := `"icao","iata","name","city","subd","country","elevation","lat","lon","tz","lid"
"VIDP","DEL","Indira Gandhi International Airport","New Delhi","Delhi","IN",777,28.5665,77.1031,"Asia/Kolkata",""
"00AK","","Lowell Field","Anchor Point","Alaska","US",450,59.9492,-151.6958,"America/Anchorage","00AK"
"VABB","BOM","Chhatrapati Shivaji Maharaj International Airport","Mumbai","Maharashtra","IN",39,19.0887,72.8679,"Asia/Kolkata",""
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())

	bom, ok := d.Get("BOM")
	require.True(t, ok)
	assert.Equal(t, "Mumbai", bom.City)
	assert.Equal(t, "Maharashtra", bom.State)
	assert.Equal(t, "IN", bom.Country)
	assert.Equal(t, 72.8679, bom.Longitude)

	km, ok := d.DistanceKm("DEL", "BOM")
	require.True(t, ok)
	assert.InDelta(t, 1137, km, 5)
}

func TestLoad_CSVMissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.csv")
	require.NoError(t, os.WriteFile(path, []byte("iata,name,city\nDEL,Indira Gandhi,New Delhi\n"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, `missing column "country"`)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "airports.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- iata: ABC\n  name: Test\n  city: Testville\n  country: TS\n  lat: 1.5\n  lon: 2.5\n"), 0o644))

	d, err := Load(path)
	require.NoError(t, err)
	c, ok := d.Lookup("ABC")
	require.True(t, ok)
	assert.Equal(t, 2.5, c.Lng)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDistanceKm(t *testing.T) {
	d, err := Load("")
	require.NoError(t, err)

	km, ok := d.DistanceKm("DEL", "BOM")
	require.True(t, ok)
	assert.InDelta(t, 1140, km, 20)

	_, ok = d.DistanceKm("DEL", "XYZ")
	assert.False(t, ok)
}
