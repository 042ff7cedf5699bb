package persistence

import (
	"strings"

	"github.com/tilesgalleria/backoffice/internal/domain/shared"
	"gorm.io/gorm"
)

// paginate applies a whitelisted ORDER BY plus LIMIT/OFFSET
func paginate(query *gorm.DB, filter shared.Filter, allowed map[string]bool) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, "created_at")
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))
	if filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}
	return query
}

// search adds a case-insensitive substring match over columns.
// LOWER ... LIKE keeps the query portable between postgres and sqlite.
func search(query *gorm.DB, term string, columns ...string) *gorm.DB {
	term = strings.TrimSpace(term)
	if term == "" || len(columns) == 0 {
		return query
	}
	pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
	clauses := make([]string, len(columns))
	args := make([]any, len(columns))
	for i, c := range columns {
		clauses[i] = "LOWER(" + c + ") LIKE ? ESCAPE '\\'"
		args[i] = pattern
	}
	return query.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// equals applies the exact-match filters whose keys are whitelisted
func equals(query *gorm.DB, filters map[string]any, columns ...string) *gorm.DB {
	for _, c := range columns {
		if v, ok := filters[c]; ok && v != nil && v != "" {
			query = query.Where(c+" = ?", v)
		}
	}
	return query
}

func recentLimit(limit int) int {
	if limit <= 0 {
		return 5
	}
	if limit > shared.MaxPageSize {
		return shared.MaxPageSize
	}
	return limit
}
