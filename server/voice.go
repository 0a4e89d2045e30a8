package server

import (
	"net/http"

	"agriguard/api"
)

func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	groq := s.chain.Groq()
	if groq == nil {
		writeError(w, http.StatusServiceUnavailable, "transcription requires a Groq API key")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	text, err := groq.Transcribe(r.Context(), file, r.FormValue("language"))
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, api.Transcription{Status: "success", Text: text})
}
