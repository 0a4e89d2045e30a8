package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"agriguard/api"
	"agriguard/ipm"
)

func (s *Server) handleIPMStrategy(w http.ResponseWriter, r *http.Request) {
	var req api.IPMRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.Disease == "" {
		writeError(w, http.StatusBadRequest, "disease is required")
		return
	}
	strategy, err := s.ipm.GenerateStrategy(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, strategy)
}

func (s *Server) handleQuickIPM(w http.ResponseWriter, r *http.Request) {
	disease := r.PathValue("disease")
	crop := r.URL.Query().Get("crop")
	if crop == "" {
		crop = "general"
	}
	recommendation, err := s.ipm.QuickRecommendation(r.Context(), disease, crop)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, api.QuickRecommendation{
		Status:         "success",
		Disease:        disease,
		Crop:           crop,
		Recommendation: recommendation,
	})
}

func (s *Server) handlePredictOutbreak(w http.ResponseWriter, r *http.Request) {
	lat, lon, ok := queryCoords(w, r)
	if !ok {
		return
	}
	crop := r.URL.Query().Get("crop")
	if crop == "" {
		crop = "general"
	}
	forecast, err := s.ipm.PredictOutbreak(r.Context(), lat, lon, crop)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, forecast)
}

func (s *Server) handleDiseaseDatabase(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.DiseaseDatabase{
		Status:   "success",
		Diseases: ipm.DiseaseKeys(),
		Data:     ipm.Database(),
	})
}

func (s *Server) handleDiseaseEntry(w http.ResponseWriter, r *http.Request) {
	disease, ok := ipm.LookupDisease(r.PathValue("key"))
	if !ok {
		writeError(w, http.StatusNotFound, "Disease not found. Available: "+strings.Join(ipm.DiseaseKeys(), ", "))
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Status string          `json:"status"`
		Data   api.DiseaseInfo `json:"data"`
	}{Status: "success", Data: disease})
}
