package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	apperrors "github.com/MatiasXp0/forca-tatica/pkg/util/errorutil"
)

const (
	defaultLimit = 20
	maxLimit     = 200
)

// Page bounds a listing.
type Page struct {
	Limit  int
	Offset int
}

func (p Page) normalized() (int, int) {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := p.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// where accumulates positional SQL predicates.
type where struct {
	clauses []string
	args    []any
}

func (w *where) add(format string, vals ...any) {
	placeholders := make([]any, len(vals))
	for i, v := range vals {
		w.args = append(w.args, v)
		placeholders[i] = fmt.Sprintf("$%d", len(w.args))
	}
	w.clauses = append(w.clauses, fmt.Sprintf(format, placeholders...))
}

func (w *where) in(column string, vals []string) {
	if len(vals) == 0 {
		return
	}
	placeholders := make([]string, len(vals))
	for i, v := range vals {
		w.args = append(w.args, v)
		placeholders[i] = fmt.Sprintf("$%d", len(w.args))
	}
	w.clauses = append(w.clauses, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ",")))
}

// search matches term case-insensitively against any of columns.
func (w *where) search(term *string, columns ...string) {
	if term == nil || strings.TrimSpace(*term) == "" {
		return
	}
	w.args = append(w.args, "%"+strings.ToLower(strings.TrimSpace(*term))+"%")
	placeholder := fmt.Sprintf("$%d", len(w.args))
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = fmt.Sprintf("LOWER(%s) LIKE %s", col, placeholder)
	}
	w.clauses = append(w.clauses, "("+strings.Join(parts, " OR ")+")")
}

func (w *where) sql(base, orderBy string, page Page) string {
	clause := "1=1"
	if len(w.clauses) > 0 {
		clause = strings.Join(w.clauses, " AND ")
	}
	limit, offset := page.normalized()
	return fmt.Sprintf("%s WHERE %s ORDER BY %s LIMIT %d OFFSET %d", base, clause, orderBy, limit, offset)
}

func toStrings[T ~string](vals []T) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = string(v)
	}
	return out
}

// mapWriteError turns constraint violations into domain errors.
func mapWriteError(resource string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return apperrors.NewConflict(resource+" already exists", map[string]any{"constraint": pgErr.ConstraintName})
		case "23503":
			return apperrors.NewValidationError(resource+" references a missing record", map[string]any{"constraint": pgErr.ConstraintName})
		case "23514":
			return apperrors.NewValidationError(resource+" violates "+pgErr.ConstraintName, nil)
		}
	}
	return err
}
