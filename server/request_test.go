package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestFormCoords(t *testing.T) {
	tests := []struct {
		name string
		lat  string
		lon  string
		want bool
	}{
		{"both present", "10.5", "76.2", true},
		{"missing longitude", "10.5", "", false},
		{"malformed latitude", "north", "76.2", false},
		{"absent", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := url.Values{}
			if tt.lat != "" {
				form.Set("latitude", tt.lat)
			}
			if tt.lon != "" {
				form.Set("longitude", tt.lon)
			}
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			lat, lon := formCoords(req)
			if got := lat != nil && lon != nil; got != tt.want {
				t.Fatalf("formCoords() set = %v, want %v", got, tt.want)
			}
			if tt.want && (*lat != 10.5 || *lon != 76.2) {
				t.Errorf("formCoords() = %v/%v, want 10.5/76.2", *lat, *lon)
			}
		})
	}
}

func TestQueryCoords(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?latitude=10.5&longitude=76.2", nil)
		rec := httptest.NewRecorder()

		lat, lon, ok := queryCoords(rec, req)
		if !ok {
			t.Fatalf("queryCoords() rejected valid input: %s", rec.Body.String())
		}
		if lat != 10.5 || lon != 76.2 {
			t.Errorf("queryCoords() = %v/%v, want 10.5/76.2", lat, lon)
		}
	})

	t.Run("missing writes the error", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?latitude=10.5", nil)
		rec := httptest.NewRecorder()

		if _, _, ok := queryCoords(rec, req); ok {
			t.Fatal("queryCoords() accepted a missing longitude")
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})
}
