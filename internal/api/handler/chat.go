package handler

import (
	"net/http"
)

type chatRequest struct {
	ProjectID string `json:"projectId" validate:"required"`
	Message   string `json:"message" validate:"required"`
}

func (s *Service) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	result, err := s.chat.Send(r.Context(), req.ProjectID, req.Message)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}
