package utils

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"petlove/internal/models"
)

type contextKey string

const (
	UserIDKey    contextKey = "userID"
	UserRoleKey  contextKey = "userRole"
	RequestIDKey contextKey = "requestID"
)

const maxBodyBytes = 1 << 20

func WithUserID(ctx context.Context, userID models.ID) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (models.ID, bool) {
	id, ok := ctx.Value(UserIDKey).(models.ID)
	return id, ok && !id.IsZero()
}

func WithUserRole(ctx context.Context, role models.UserRole) context.Context {
	return context.WithValue(ctx, UserRoleKey, role)
}

func UserRoleFromContext(ctx context.Context) models.UserRole {
	role, _ := ctx.Value(UserRoleKey).(models.UserRole)
	return role
}

// IsAdmin reports whether the authenticated caller holds the admin role.
func IsAdmin(ctx context.Context) bool {
	return UserRoleFromContext(ctx) == models.RoleAdmin
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// GetUserIDFromContext extracts the authenticated user id set by the auth middleware.
func GetUserIDFromContext(w http.ResponseWriter, r *http.Request) (models.ID, error) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		SendJSONError(w, "Invalid user ID", http.StatusUnauthorized)
		return models.NilID, errors.New("invalid user ID in context")
	}
	return userID, nil
}

// GetObjectIDFromVars extracts and parses an ObjectID from mux.Vars.
func GetObjectIDFromVars(w http.ResponseWriter, r *http.Request, paramName string) (models.ID, error) {
	idStr := mux.Vars(r)[paramName]
	if idStr == "" {
		SendJSONError(w, "Missing ID parameter", http.StatusBadRequest)
		return models.NilID, errors.New("missing ID parameter")
	}

	id, err := models.ParseID(idStr)
	if err != nil {
		SendJSONError(w, "Invalid ID format", http.StatusBadRequest)
		return models.NilID, err
	}
	return id, nil
}

// GetObjectIDFromQuery parses an optional id query parameter. A nil id with
// a nil error means the parameter was absent.
func GetObjectIDFromQuery(w http.ResponseWriter, r *http.Request, paramName string) (*models.ID, error) {
	idStr := r.URL.Query().Get(paramName)
	if idStr == "" {
		return nil, nil
	}

	id, err := models.ParseID(idStr)
	if err != nil {
		SendJSONError(w, "Invalid ID format", http.StatusBadRequest)
		return nil, err
	}
	return &id, nil
}

// GetTimeFromQuery parses an optional RFC 3339 query parameter.
func GetTimeFromQuery(w http.ResponseWriter, r *http.Request, paramName string) (*time.Time, error) {
	raw := r.URL.Query().Get(paramName)
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		SendJSONError(w, "Invalid time format for "+paramName+", expected RFC 3339", http.StatusBadRequest)
		return nil, err
	}
	return &t, nil
}

// GetPagination reads limit and skip, falling back to the defaults.
func GetPagination(w http.ResponseWriter, r *http.Request) (models.Pagination, error) {
	page := models.DefaultPagination()
	query := r.URL.Query()

	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			SendJSONError(w, "Invalid limit", http.StatusBadRequest)
			return page, err
		}
		page.Limit = limit
	}
	if raw := query.Get("skip"); raw != "" {
		skip, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			SendJSONError(w, "Invalid skip", http.StatusBadRequest)
			return page, err
		}
		page.Skip = skip
	}

	if err := ValidateStruct(page); err != nil {
		SendJSONError(w, "limit must be between 1 and 100 and skip must not be negative", http.StatusBadRequest)
		return page, err
	}
	return page, nil
}

// DecodeAndValidate reads a JSON body into dst and validates it. On failure
// the response has already been written.
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("Invalid JSON payload")
		SendJSONError(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return false
	}

	if err := ValidateStruct(dst); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			SendValidationError(w, verr)
		} else {
			SendJSONError(w, err.Error(), http.StatusBadRequest)
		}
		return false
	}
	return true
}
