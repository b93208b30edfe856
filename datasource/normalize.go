package datasource

import (
	"strings"
)

// DaytimeProminentCode derives the weather code that best represents the sky
// during daylight hours of one calendar day.
//
// times and codes are the hourly weather-code series for the whole forecast
// horizon (parallel slices of ISO timestamps and WMO codes). Samples are
// filtered to the given day and the inclusive [sunrise, sunset] interval,
// then the most frequent code wins; ties go to the code seen earliest.
// If the series are mismatched or no daylight samples remain, fallback is
// returned.
func DaytimeProminentCode(day, sunrise, sunset string, times []string, codes []int, fallback int) int {
	if len(times) == 0 || len(times) != len(codes) {
		return fallback
	}

	counts := make(map[int]int)
	firstSeen := make([]int, 0, 4) // codes in chronological order of first occurrence

	prefix := day + "T"
	for i, ts := range times {
		if !strings.HasPrefix(ts, prefix) {
			continue
		}
		// ISO timestamps compare chronologically as strings
		if ts < sunrise || ts > sunset {
			continue
		}

		code := codes[i]
		if _, seen := counts[code]; !seen {
			firstSeen = append(firstSeen, code)
		}
		counts[code]++
	}

	if len(firstSeen) == 0 {
		return fallback
	}

	best := firstSeen[0]
	for _, code := range firstSeen[1:] {
		if counts[code] > counts[best] {
			best = code
		}
	}
	return best
}
