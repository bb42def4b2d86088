package utils

import "testing"

func TestExtractLatLng(t *testing.T) {
	cases := []struct {
		url     string
		wantLat float64
		wantLng float64
		wantOK  bool
	}{
		{"https://www.google.com/maps/@12.9715987,77.5945627,17z", 12.9715987, 77.5945627, true},
		{"https://www.google.com/maps/place/X/@-33.8688197,151.2092955,15z", -33.8688197, 151.2092955, true},
		{"https://www.google.com/maps/place/X/data=!3d12.9715987!4d77.5945627", 12.9715987, 77.5945627, true},
		{"https://www.google.com/maps/search/office", 0, 0, false},
		{"not a url", 0, 0, false},
	}
	for _, c := range cases {
		lat, lng, ok := ExtractLatLng(c.url)
		if ok != c.wantOK || lat != c.wantLat || lng != c.wantLng {
			t.Errorf("ExtractLatLng(%q) = %f, %f, %v; want %f, %f, %v",
				c.url, lat, lng, ok, c.wantLat, c.wantLng, c.wantOK)
		}
	}
}
