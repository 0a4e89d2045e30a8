package server

import (
	"encoding/base64"
	"io"
	"net/http"
	"strconv"
)

// maxUploadBytes caps in-memory multipart parsing at 32 MB.
const maxUploadBytes = 32 << 20

// readUpload pulls the uploaded image out of a multipart form and
// returns it base64-encoded. On failure it writes the error response
// and reports false.
func readUpload(w http.ResponseWriter, r *http.Request) (string, bool) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return "", false
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file upload")
		return "", false
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read upload: "+err.Error())
		return "", false
	}
	return base64.StdEncoding.EncodeToString(data), true
}

// queryCoords parses the latitude/longitude query parameters shared
// by the weather and outbreak endpoints.
func queryCoords(w http.ResponseWriter, r *http.Request) (float64, float64, bool) {
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("latitude"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("longitude"), 64)
	if latErr != nil || lonErr != nil {
		writeError(w, http.StatusBadRequest, "latitude and longitude query parameters are required")
		return 0, 0, false
	}
	return lat, lon, true
}

// formCoords reads an optional coordinate pair from a multipart form.
// Both values must be present and numeric to count.
func formCoords(r *http.Request) (*float64, *float64) {
	latStr := r.FormValue("latitude")
	lonStr := r.FormValue("longitude")
	if latStr == "" || lonStr == "" {
		return nil, nil
	}
	lat, latErr := strconv.ParseFloat(latStr, 64)
	lon, lonErr := strconv.ParseFloat(lonStr, 64)
	if latErr != nil || lonErr != nil {
		return nil, nil
	}
	return &lat, &lon
}
