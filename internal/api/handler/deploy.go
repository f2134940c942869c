package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"buildflow/internal/deploy"
)

type deployRequest struct {
	ProjectID   string `json:"projectId" validate:"required"`
	CloudToken  string `json:"cloudToken" validate:"required"`
	ProjectName string `json:"projectName"`
}

func (s *Service) HandleDeploy(w http.ResponseWriter, r *http.Request) {
	var req deployRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	result, err := s.deploy.Deploy(r.Context(), deploy.Request{
		ProjectID:   req.ProjectID,
		CloudToken:  req.CloudToken,
		ProjectName: req.ProjectName,
	})
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Service) HandleDeployStatus(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectID")
	status, err := s.deploy.DeploymentStatus(r.Context(), projectID)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, status)
}
