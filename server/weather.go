package server

import (
	"net/http"
	"strconv"

	"agriguard/api"
	"agriguard/weather"
)

func (s *Server) handleCurrentWeather(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := queryCoords(w, r)
	if !ok {
		return
	}
	current, err := s.weather.Current(r.Context(), lat, lon)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, current)
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := queryCoords(w, r)
	if !ok {
		return
	}
	days := 7
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid days parameter")
			return
		}
		days = parsed
	}
	forecast, err := s.weather.Forecast(r.Context(), lat, lon, days)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}

func (s *Server) handleDiseaseRisk(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := queryCoords(w, r)
	if !ok {
		return
	}
	current, err := s.weather.Current(r.Context(), lat, lon)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, weather.AnalyzeDiseaseRisk(current))
}

func (s *Server) handleSprayWindows(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := queryCoords(w, r)
	if !ok {
		return
	}
	forecast, err := s.weather.Forecast(r.Context(), lat, lon, 7)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	windows := weather.OptimalSprayWindows(forecast.Forecast)
	writeJSON(w, http.StatusOK, api.SprayWindows{
		OptimalWindows: windows,
		TotalGoodDays:  len(windows),
	})
}
