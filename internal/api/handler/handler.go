// Package handler carries the HTTP surface: request decoding and
// validation, service dispatch, and the fault-kind to status-code mapping.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"buildflow/internal/chat"
	"buildflow/internal/deploy"
	"buildflow/internal/fault"
)

type Service struct {
	chat     *chat.Service
	deploy   *deploy.Service
	validate *validator.Validate
	log      *zap.Logger
}

func New(chatSvc *chat.Service, deploySvc *deploy.Service, log *zap.Logger) *Service {
	return &Service{
		chat:     chatSvc,
		deploy:   deploySvc,
		validate: validator.New(),
		log:      log,
	}
}

func (s *Service) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// errorBody matches the original surface: every failure is {detail: string}.
type errorBody struct {
	Detail string `json:"detail"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) respondError(w http.ResponseWriter, r *http.Request, err error) {
	kind := fault.KindOf(err)
	if kind == fault.Internal {
		s.log.Error("request failed",
			zap.String("path", r.URL.Path), zap.Error(err))
	}
	respondJSON(w, kind.Status(), errorBody{Detail: fault.DetailOf(err)})
}

// decodeBody decodes and validates a JSON request body, answering 400
// itself when the body is unusable.
func (s *Service) decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Detail: "invalid json body"})
		return false
	}
	if err := s.validate.Struct(v); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Detail: err.Error()})
		return false
	}
	return true
}
