package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"agriguard/agronomist"
	"agriguard/api"
)

func (s *Server) handleChatMessage(w http.ResponseWriter, r *http.Request) {
	var req api.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	s.chat(w, r, agronomist.ChatParams{
		SessionID: req.SessionID,
		Message:   req.Message,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		CropType:  req.CropType,
		Language:  req.Language,
	})
}

func (s *Server) handleChatUpload(w http.ResponseWriter, r *http.Request) {
	image, ok := readUpload(w, r)
	if !ok {
		return
	}
	lat, lon := formCoords(r)
	s.chat(w, r, agronomist.ChatParams{
		SessionID: r.FormValue("session_id"),
		Message:   r.FormValue("message"),
		ImageB64:  image,
		Latitude:  lat,
		Longitude: lon,
		CropType:  r.FormValue("crop_type"),
		Language:  r.FormValue("language"),
	})
}

// chat runs the advisor and stamps the envelope fields. A missing
// session id is assigned here so the reply always carries one.
func (s *Server) chat(w http.ResponseWriter, r *http.Request, params agronomist.ChatParams) {
	if params.SessionID == "" {
		params.SessionID = uuid.New().String()
	}
	resp, err := s.agronomist.Chat(r.Context(), params)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp.Status = "success"
	resp.SessionID = params.SessionID
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleChatIPMStrategy(w http.ResponseWriter, r *http.Request) {
	var req api.IPMChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	resp, err := s.agronomist.IPMStrategyForChat(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp.Status = "success"
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSessionInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.agronomist.SessionInfo(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	info.Status = "success"
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleSessionClear(w http.ResponseWriter, r *http.Request) {
	if err := s.agronomist.ClearHistory(r.PathValue("id")); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}{Status: "success", Message: "Session cleared"})
}
