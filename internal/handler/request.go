package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// optional records whether a JSON key was present and whether it was null,
// which is what a merging PUT needs to tell "leave alone" from "clear".
type optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func (o *optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if string(b) == "null" {
		o.Null = true
		return nil
	}
	return json.Unmarshal(b, &o.Value)
}

// errNotJSON is the rejection for an empty, null or unparsable body.
var errNotJSON = domain.Invalid(domain.KindFormat, "", "Request body must be JSON")

// decodeBody reads the request body into dst. It fails with a
// *domain.ValidationError for bodies that are not a JSON object, and passes
// through *http.MaxBytesError when the size limit was hit.
func decodeBody(r *http.Request, dst any) error {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return errNotJSON
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return errNotJSON
	}

	if err := json.Unmarshal(raw, dst); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			if typeErr.Field == "" {
				return domain.Invalid(domain.KindFormat, "", "Request body must be a JSON object")
			}
			return domain.Invalid(domain.KindFormat, typeErr.Field, "%s has an invalid type", typeErr.Field)
		}
		return errNotJSON
	}
	return nil
}

// pathID parses the {id} URL parameter. A malformed id cannot name a stored
// row, so the caller answers 404.
func pathID(r *http.Request) (uuid.UUID, string, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	return id, raw, err == nil
}

// parseDate turns an optional "YYYY-MM-DD" field into a date. Null or "" clears it.
func parseDate(field string, o optional[string]) (*time.Time, error) {
	if o.Null || o.Value == "" {
		return nil, nil
	}
	var d openapi_types.Date
	if err := d.UnmarshalText([]byte(o.Value)); err != nil {
		return nil, domain.Invalid(domain.KindFormat, field, "%s must be in YYYY-MM-DD format", field)
	}
	return &d.Time, nil
}

// parseTime turns an optional "HH:MM" field into a time of day. Null or "" clears it.
func parseTime(field string, o optional[string]) (*domain.TimeOfDay, error) {
	if o.Null || o.Value == "" {
		return nil, nil
	}
	t, err := domain.ParseTimeOfDay(o.Value)
	if err != nil {
		return nil, domain.Invalid(domain.KindFormat, field, "%s must be in HH:MM format", field)
	}
	return &t, nil
}

// parseRef turns an optional parent id field into a UUID. Null or "" yields
// uuid.Nil, which entity validation reports as missing.
func parseRef(field string, o optional[string]) (uuid.UUID, error) {
	if o.Null || o.Value == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(o.Value)
	if err != nil {
		return uuid.Nil, domain.Invalid(domain.KindFormat, field, "%s must be a valid id", field)
	}
	return id, nil
}

// date renders an optional date for a response body.
func date(t *time.Time) *openapi_types.Date {
	if t == nil {
		return nil
	}
	return &openapi_types.Date{Time: *t}
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func timeOfDay(t *domain.TimeOfDay) *string {
	if t == nil {
		return nil
	}
	s := t.String()
	return &s
}
