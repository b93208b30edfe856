// Package travel builds the external search URLs attached to
// recommendations. The builders are pure string construction; they never
// validate that the destination or airport actually exist.
package travel

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"
)

const (
	flightsBaseURL  = "https://www.google.com/travel/flights"
	packagesBaseURL = "https://www.expedia.co.uk/Packages-Search"
)

// dateRange normalises a date set into a departure/return pair. Dates are
// sorted first; a single date becomes a one-night trip returning the next
// day.
func dateRange(dates []string) (depart, ret string) {
	sorted := make([]string, len(dates))
	copy(sorted, dates)
	sort.Strings(sorted)

	depart = sorted[0]
	if len(sorted) > 1 {
		ret = sorted[len(sorted)-1]
		return depart, ret
	}

	if d, err := time.Parse("2006-01-02", depart); err == nil {
		ret = d.AddDate(0, 0, 1).Format("2006-01-02")
	} else {
		ret = depart
	}
	return depart, ret
}

// BuildFlightSearchURL constructs a Google Flights search URL for a
// destination and date set. With no dates it links to the bare flight
// search; with no preferred airport the origin defaults to "UK".
func BuildFlightSearchURL(destination string, dates []string, preferredAirport string) string {
	if len(dates) == 0 {
		return flightsBaseURL
	}

	depart, ret := dateRange(dates)

	origin := strings.TrimSpace(preferredAirport)
	if origin == "" {
		origin = "UK"
	}

	query := fmt.Sprintf("Flights from %s to %s departing %s returning %s", origin, destination, depart, ret)
	return flightsBaseURL + "?q=" + url.QueryEscape(query) + "&curr=GBP"
}

// BuildPackageSearchURL constructs an Expedia flight+hotel package search
// URL. The destination is qualified with its region and country so the
// search lands on the right place.
func BuildPackageSearchURL(destination string, dates []string, preferredAirport, region, country string) string {
	if len(dates) == 0 {
		return packagesBaseURL
	}

	depart, ret := dateRange(dates)

	place := destination
	if region != "" {
		place += ", " + region
	}
	if country != "" {
		place += ", " + country
	}

	params := url.Values{}
	params.Add("destination", place)
	params.Add("startDate", depart)
	params.Add("endDate", ret)
	if origin := strings.TrimSpace(preferredAirport); origin != "" {
		params.Add("fromAirport", origin)
	}

	return packagesBaseURL + "?" + params.Encode()
}
