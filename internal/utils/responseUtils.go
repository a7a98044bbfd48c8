package utils

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"petlove/internal/errs"
)

type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}

// RespondWithJSON writes payload as JSON with the given status code.
func RespondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Msg("Error marshalling JSON response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal Server Error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// RespondWithList writes a JSON array and the total number of matches.
func RespondWithList[T any](w http.ResponseWriter, items []T, total int64) {
	if items == nil {
		items = []T{}
	}
	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	RespondWithJSON(w, http.StatusOK, items)
}

func SendJSONError(w http.ResponseWriter, message string, code int) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

func SendValidationError(w http.ResponseWriter, verr *ValidationError) {
	RespondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "validation failed", Fields: verr.Fields})
}

// SendServiceError maps an error returned by a service onto a response.
func SendServiceError(w http.ResponseWriter, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		SendValidationError(w, verr)
		return
	}
	SendJSONError(w, errs.PublicMessage(err), errs.StatusCode(err))
}
