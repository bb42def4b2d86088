package utils

import (
	"regexp"
	"strconv"
)

var (
	atCoordPattern  = regexp.MustCompile(`@(-?\d+\.\d+),(-?\d+\.\d+)`)
	pinCoordPattern = regexp.MustCompile(`!3d(-?\d+\.\d+)!4d(-?\d+\.\d+)`)
)

// ExtractLatLng pulls a coordinate pair out of a Google Maps share URL.
// Supports the "@lat,lng" and "!3dlat!4dlng" URL forms.
func ExtractLatLng(url string) (lat, lng float64, ok bool) {
	for _, pattern := range []*regexp.Regexp{atCoordPattern, pinCoordPattern} {
		match := pattern.FindStringSubmatch(url)
		if match == nil {
			continue
		}
		lat, err1 := strconv.ParseFloat(match[1], 64)
		lng, err2 := strconv.ParseFloat(match[2], 64)
		if err1 != nil || err2 != nil {
			continue
		}
		return lat, lng, true
	}
	return 0, 0, false
}
