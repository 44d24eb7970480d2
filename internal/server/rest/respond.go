package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/dmitrijs2005/cloudstack/internal/common"
	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

// ProblemDetail is an RFC7807 error body.
type ProblemDetail struct {
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func problem(w http.ResponseWriter, status int, title, detail string) {
	writeJSON(w, status, ProblemDetail{Title: title, Status: status, Detail: detail})
}

// respondError maps service errors to status codes. Internal errors are
// logged and returned without detail.
func (s *Server) respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorUnauthorized):
		w.Header().Set("WWW-Authenticate", common.BearerScheme)
		problem(w, http.StatusUnauthorized, "Unauthorized", "invalid credentials")
	case errors.Is(err, common.ErrorValidation):
		problem(w, http.StatusBadRequest, "Validation Failed", strings.TrimPrefix(err.Error(), common.ErrorValidation.Error()+": "))
	case errors.Is(err, common.ErrorNotFound):
		problem(w, http.StatusNotFound, "Not Found", "item not found")
	default:
		s.logger.Error(r.Context(), "request failed", "error", err, "path", r.URL.Path)
		problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}

// decodeJSON reads a single JSON object from the body into target.
func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(target); err != nil {
		return fmt.Errorf("%w: malformed JSON body", common.ErrorValidation)
	}
	return nil
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
			if name != "" && name != "-" {
				return name
			}
		}
		return f.Name
	})
	return v
}

// validateStruct runs struct tag validation and folds failures into a
// common.ErrorValidation with a readable message.
func (s *Server) validateStruct(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", common.ErrorValidation, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", common.ErrorValidation, strings.Join(msgs, "; "))
}
