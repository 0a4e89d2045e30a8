package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"agriguard/api"
)

// imageRequest is the JSON body for the non-multipart analysis routes.
type imageRequest struct {
	ImageBase64  string `json:"image_base64"`
	FieldContext string `json:"field_context"`
}

func (s *Server) handleAnalyzeLeaf(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.ImageBase64 == "" {
		writeError(w, http.StatusBadRequest, "image_base64 is required")
		return
	}
	result, err := s.diagnosis.AnalyzeLeaf(r.Context(), req.ImageBase64, req.FieldContext)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalyzeLeafUpload(w http.ResponseWriter, r *http.Request) {
	image, ok := readUpload(w, r)
	if !ok {
		return
	}
	farmerContext := r.FormValue("context")
	if cropType := r.FormValue("crop_type"); cropType != "" {
		farmerContext = fmt.Sprintf("Crop: %s. %s", cropType, farmerContext)
	}
	result, err := s.diagnosis.AnalyzeLeaf(r.Context(), image, farmerContext)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalyzeField(w http.ResponseWriter, r *http.Request) {
	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.ImageBase64 == "" {
		writeError(w, http.StatusBadRequest, "image_base64 is required")
		return
	}
	result, err := s.diagnosis.AnalyzeField(r.Context(), req.ImageBase64, req.FieldContext)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleQuickAnalysis(w http.ResponseWriter, r *http.Request) {
	image, ok := readUpload(w, r)
	if !ok {
		return
	}
	question := r.FormValue("question")
	if question == "" {
		question = "What's wrong with this plant?"
	}
	response, err := s.diagnosis.QuickDiagnosis(r.Context(), image, question)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, api.QuickAnalysis{Status: "success", Response: response})
}
