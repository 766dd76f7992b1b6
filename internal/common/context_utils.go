package common

import (
	"context"
	"strconv"
	"strings"
)

type contextKey string

const (
	UserIDKey contextKey = "user_id"
	RoleKey   contextKey = "role"
)

// adminRole mirrors models.RoleAdmin.
const adminRole = 1

// Paging is a validated take/skip pair.
type Paging struct {
	Limit  int
	Offset int
}

// DefaultMaxPageSize bounds listings whose caller supplied no paging.
const DefaultMaxPageSize = 100

// Clamp bounds Limit to max, treating a missing limit as max.
func (p Paging) Clamp(max int) Paging {
	if p.Limit <= 0 || p.Limit > max {
		p.Limit = max
	}
	return p
}

// ParseID parses a positive numeric path parameter.
func ParseID(raw, fieldName string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, NewValidationError(fieldName, "must be a positive integer")
	}
	return id, nil
}

// ParsePaging validates take/skip query values. When required is false and both
// are empty the first page of maxPageSize rows is returned. take is capped at maxPageSize.
func ParsePaging(take, skip string, maxPageSize int, required bool) (Paging, error) {
	take, skip = strings.TrimSpace(take), strings.TrimSpace(skip)
	if !required && take == "" && skip == "" {
		return Paging{Limit: maxPageSize}, nil
	}

	limit, err := strconv.Atoi(take)
	if err != nil || limit <= 0 {
		return Paging{}, NewValidationError("take", "must be a positive integer")
	}
	offset, err := strconv.Atoi(skip)
	if err != nil || offset < 0 {
		return Paging{}, NewValidationError("skip", "must be a non-negative integer")
	}
	if maxPageSize > 0 && limit > maxPageSize {
		limit = maxPageSize
	}
	return Paging{Limit: limit, Offset: offset}, nil
}

// SafeString safely handles string pointer operations
func SafeString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// SanitizeSearchQuery strips LIKE wildcards and bounds the length of a search term.
func SanitizeSearchQuery(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	query = strings.ReplaceAll(query, "%", "")
	query = strings.ReplaceAll(query, "_", "")

	if len(query) > 100 {
		query = query[:100]
	}

	return strings.TrimSpace(query)
}

// WithUser stores the authenticated user's id and role on ctx.
func WithUser(ctx context.Context, userID int64, role int) context.Context {
	ctx = context.WithValue(ctx, UserIDKey, userID)
	return context.WithValue(ctx, RoleKey, role)
}

// GetUserIDFromContext extracts the user ID from the request context
func GetUserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}

// GetRoleFromContext extracts the user's role from the request context
func GetRoleFromContext(ctx context.Context) (int, bool) {
	role, ok := ctx.Value(RoleKey).(int)
	return role, ok
}

// CanActFor reports whether the authenticated caller may act on userID's data.
func CanActFor(ctx context.Context, userID int64) bool {
	if role, ok := GetRoleFromContext(ctx); ok && role == adminRole {
		return true
	}
	caller, ok := GetUserIDFromContext(ctx)
	return ok && caller == userID
}
