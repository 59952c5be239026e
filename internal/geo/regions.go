// Package geo normalizes country names and summarizes country lists into region labels.
package geo

import (
	"sync"

	"github.com/samber/lo"
)

// Region and continent names.
const (
	RegionSouthernAfrica = "Southern Africa"
	RegionEastAfrica     = "East Africa"
	RegionWestAfrica     = "West Africa"
	RegionCentralAfrica  = "Central Africa"
	RegionNorthAfrica    = "North Africa"
	RegionAfrica         = "Africa"
	RegionEurope         = "Europe"
	RegionMiddleEast     = "Middle East"
	RegionAsia           = "Asia"
	RegionNorthAmerica   = "North America"
	RegionSouthAmerica   = "South America"
	RegionOceania        = "Oceania"

	// Global is returned when countries span too many continents to name.
	Global = "Global"
)

// region is one named country set; order in regionDefs is significant.
type region struct {
	name      string
	countries []string
}

var regionDefs = []region{
	{RegionSouthernAfrica, []string{
		"South Africa", "Botswana", "Namibia", "Zimbabwe", "Zambia", "Mozambique", "Lesotho",
		"Eswatini", "Malawi", "Angola", "Madagascar", "Mauritius", "Comoros", "Seychelles",
	}},
	{RegionEastAfrica, []string{
		"Kenya", "Uganda", "Tanzania", "Rwanda", "Burundi", "Ethiopia", "Somalia",
		"South Sudan", "Eritrea", "Djibouti",
	}},
	{RegionWestAfrica, []string{
		"Nigeria", "Ghana", "Côte d'Ivoire", "Senegal", "Mali", "Burkina Faso", "Niger", "Guinea",
		"Sierra Leone", "Liberia", "Togo", "Benin", "Gambia", "Guinea-Bissau", "Cape Verde", "Mauritania",
	}},
	{RegionCentralAfrica, []string{
		"DR Congo", "Republic of the Congo", "Cameroon", "Gabon", "Central African Republic",
		"Chad", "Equatorial Guinea", "São Tomé and Príncipe",
	}},
	{RegionNorthAfrica, []string{
		"Egypt", "Libya", "Tunisia", "Algeria", "Morocco", "Sudan",
	}},
	{RegionEurope, []string{
		"United Kingdom", "Ireland", "France", "Germany", "Netherlands", "Belgium", "Luxembourg",
		"Switzerland", "Austria", "Italy", "Spain", "Portugal", "Greece", "Sweden", "Norway",
		"Denmark", "Finland", "Iceland", "Poland", "Czechia", "Slovakia", "Hungary", "Romania",
		"Bulgaria", "Croatia", "Slovenia", "Serbia", "Bosnia and Herzegovina", "Montenegro",
		"North Macedonia", "Albania", "Ukraine", "Belarus", "Moldova", "Lithuania", "Latvia",
		"Estonia", "Russia", "Malta", "Cyprus",
	}},
	{RegionMiddleEast, []string{
		"United Arab Emirates", "Saudi Arabia", "Qatar", "Kuwait", "Bahrain", "Oman", "Yemen",
		"Israel", "Palestine", "Jordan", "Lebanon", "Syria", "Iraq", "Iran", "Turkey",
	}},
	{RegionAsia, []string{
		"China", "Japan", "South Korea", "North Korea", "India", "Pakistan", "Bangladesh",
		"Sri Lanka", "Nepal", "Indonesia", "Malaysia", "Singapore", "Thailand", "Vietnam",
		"Philippines", "Myanmar", "Cambodia", "Laos", "Mongolia", "Taiwan", "Hong Kong",
		"Kazakhstan", "Uzbekistan", "Afghanistan",
	}},
	{RegionNorthAmerica, []string{
		"United States", "Canada", "Mexico", "Guatemala", "Honduras", "El Salvador", "Nicaragua",
		"Costa Rica", "Panama", "Cuba", "Jamaica", "Haiti", "Dominican Republic", "Bahamas",
		"Trinidad and Tobago", "Barbados",
	}},
	{RegionSouthAmerica, []string{
		"Brazil", "Argentina", "Chile", "Colombia", "Peru", "Venezuela", "Ecuador", "Bolivia",
		"Paraguay", "Uruguay", "Guyana", "Suriname",
	}},
	{RegionOceania, []string{
		"Australia", "New Zealand", "Papua New Guinea", "Fiji", "Samoa", "Tonga", "Vanuatu",
		"Solomon Islands",
	}},
}

// continentDefs lists continents in classification order with the regions they union.
var continentDefs = []struct {
	name    string
	regions []string
}{
	{RegionAfrica, []string{RegionSouthernAfrica, RegionEastAfrica, RegionWestAfrica, RegionCentralAfrica, RegionNorthAfrica}},
	{RegionEurope, []string{RegionEurope}},
	{RegionAsia, []string{RegionAsia, RegionMiddleEast}},
	{RegionNorthAmerica, []string{RegionNorthAmerica}},
	{RegionSouthAmerica, []string{RegionSouthAmerica}},
	{RegionOceania, []string{RegionOceania}},
}

// countrySet is keyed by folded country name.
type countrySet map[string]struct{}

func (s countrySet) has(country string) bool {
	_, ok := s[foldKey(country)]
	return ok
}

// namedSet pairs a region or continent name with its members.
type namedSet struct {
	name string
	set  countrySet
}

// tableSet holds the immutable classification tables.
type tableSet struct {
	// regions includes the derived "Africa" union, in declaration order.
	regions []namedSet
	// continents in classification order.
	continents []namedSet
}

// tables is built on first use and never mutated afterwards.
var tables = sync.OnceValue(buildTables)

func buildTables() *tableSet {
	byName := make(map[string]countrySet, len(regionDefs))
	t := &tableSet{}

	for _, r := range regionDefs {
		set := lo.SliceToMap(r.countries, func(c string) (string, struct{}) {
			return foldKey(c), struct{}{}
		})
		byName[r.name] = set
		t.regions = append(t.regions, namedSet{name: r.name, set: set})

		// The Africa union sits right after the last African sub-region.
		if r.name == RegionNorthAfrica {
			t.regions = append(t.regions, namedSet{name: RegionAfrica, set: union(byName,
				RegionSouthernAfrica, RegionEastAfrica, RegionWestAfrica, RegionCentralAfrica, RegionNorthAfrica)})
		}
	}

	for _, c := range continentDefs {
		t.continents = append(t.continents, namedSet{name: c.name, set: union(byName, c.regions...)})
	}

	return t
}

func union(byName map[string]countrySet, names ...string) countrySet {
	out := countrySet{}

	for _, n := range names {
		for k := range byName[n] {
			out[k] = struct{}{}
		}
	}

	return out
}

// ContinentOf returns the first continent containing country, or "" if unknown.
func ContinentOf(country string) string {
	for _, c := range tables().continents {
		if c.set.has(country) {
			return c.name
		}
	}

	return ""
}

// RegionsOf returns every region (excluding the Africa union) containing country.
func RegionsOf(country string) []string {
	var out []string

	for _, r := range subRegions() {
		if r.set.has(country) {
			out = append(out, r.name)
		}
	}

	return out
}

// RegionNames returns all region names in declaration order, including "Africa".
func RegionNames() []string {
	return lo.Map(tables().regions, func(r namedSet, _ int) string { return r.name })
}

// subRegions returns every region except the Africa union.
func subRegions() []namedSet {
	return lo.Filter(tables().regions, func(r namedSet, _ int) bool { return r.name != RegionAfrica })
}
