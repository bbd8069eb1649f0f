package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// Error codes carried in the envelope's error.code field.
const (
	codeValidation       = "VALIDATION_ERROR"
	codeNotFound         = "NOT_FOUND"
	codeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	codeDatabase         = "DATABASE_ERROR"
	codeServer           = "SERVER_ERROR"
	codePayloadTooLarge  = "PAYLOAD_TOO_LARGE"
)

// envelope is the uniform body of every JSON response.
type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data"`
	Error   *errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// message is the payload of a successful delete.
type message struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // the client has gone if this fails; nothing left to report to.
	json.NewEncoder(w).Encode(body)
}

// writeData writes a success envelope around data.
func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

// writeError writes a failure envelope.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, envelope{Error: &errorBody{Code: code, Message: msg}})
}

// fail maps err onto the envelope:
//   - *domain.ValidationError of kind not-found → 404 NOT_FOUND
//   - any other *domain.ValidationError        → 400 VALIDATION_ERROR
//   - domain.ErrNotFound                       → 404 NOT_FOUND
//   - an oversized body                        → 413 PAYLOAD_TOO_LARGE
//   - domain.ErrStorage                        → 500 DATABASE_ERROR with failure as message
//   - anything else                            → 500 SERVER_ERROR
//
// Internal detail of a 500 is logged, never returned.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, failure string) {
	var ve *domain.ValidationError
	var tooLarge *http.MaxBytesError

	switch {
	case errors.As(err, &ve) && ve.Kind == domain.KindNotFound:
		writeError(w, http.StatusNotFound, codeNotFound, ve.Message)
	case errors.As(err, &ve):
		s.log.WarnContext(r.Context(), "validation error", "error", ve.Message, "request_id", chimiddleware.GetReqID(r.Context()))
		writeError(w, http.StatusBadRequest, codeValidation, ve.Message)
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, codeNotFound, "Resource not found")
	case errors.As(err, &tooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, codePayloadTooLarge,
			fmt.Sprintf("Request body must not exceed %d bytes", tooLarge.Limit))
	case errors.Is(err, domain.ErrStorage):
		s.log.ErrorContext(r.Context(), failure, "error", err, "request_id", chimiddleware.GetReqID(r.Context()))
		writeError(w, http.StatusInternalServerError, codeDatabase, failure)
	default:
		s.log.ErrorContext(r.Context(), "unexpected error", "error", err, "request_id", chimiddleware.GetReqID(r.Context()))
		writeError(w, http.StatusInternalServerError, codeServer, "An unexpected error occurred")
	}
}

// failLookup is fail for a fetch by path id: not-found names the entity and id.
func (s *Server) failLookup(w http.ResponseWriter, r *http.Request, err error, entity string, id uuid.UUID, failure string) {
	var ve *domain.ValidationError
	if errors.Is(err, domain.ErrNotFound) && !errors.As(err, &ve) {
		notFound(w, entity, id.String())
		return
	}
	s.fail(w, r, err, failure)
}

func notFound(w http.ResponseWriter, entity, id string) {
	writeError(w, http.StatusNotFound, codeNotFound, fmt.Sprintf("%s with id %s not found", entity, id))
}

func (s *Server) notFound(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusNotFound, codeNotFound, "Resource not found")
}

func (s *Server) methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, codeMethodNotAllowed, "Method not allowed")
}

// recoverer turns a panic in any handler into a SERVER_ERROR envelope.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rvr := recover()
			if rvr == nil {
				return
			}
			if rvr == http.ErrAbortHandler {
				panic(rvr)
			}
			s.log.ErrorContext(r.Context(), "panic recovered",
				"panic", fmt.Sprint(rvr),
				"stack", string(debug.Stack()),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
			writeError(w, http.StatusInternalServerError, codeServer, "An unexpected error occurred")
		}()
		next.ServeHTTP(w, r)
	})
}
