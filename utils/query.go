package utils

import (
	"strconv"
	"strings"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ParsePagination reads 1-indexed page/limit values, falling back to the
// defaults on anything missing or malformed.
func ParsePagination(pageStr, limitStr string) (page, limit int) {
	page = DefaultPage
	limit = DefaultLimit
	if n, err := strconv.Atoi(pageStr); err == nil && n >= 1 {
		page = n
	}
	if n, err := strconv.Atoi(limitStr); err == nil && n >= 1 {
		limit = n
	}
	return page, limit
}

// ParseSortList converts a comma-separated sort list ("-created_at,name",
// a leading '-' meaning descending) into ORDER BY clauses. Only fields in
// the columns whitelist are honored; anything else is dropped so callers
// cannot sort by arbitrary SQL.
func ParseSortList(sort string, columns map[string]string) []string {
	var clauses []string
	for _, field := range strings.Split(sort, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		dir := "ASC"
		if strings.HasPrefix(field, "-") {
			dir = "DESC"
			field = field[1:]
		}
		col, ok := columns[field]
		if !ok {
			continue
		}
		clauses = append(clauses, col+" "+dir)
	}
	return clauses
}
