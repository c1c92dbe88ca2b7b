package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaginationDefaults(t *testing.T) {
	page, limit := ParsePagination("", "")
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)

	page, limit = ParsePagination("abc", "-5")
	assert.Equal(t, 1, page)
	assert.Equal(t, 10, limit)
}

func TestParsePaginationValues(t *testing.T) {
	page, limit := ParsePagination("3", "25")
	assert.Equal(t, 3, page)
	assert.Equal(t, 25, limit)
}

func TestParseSortList(t *testing.T) {
	columns := map[string]string{
		"created_at":   "created_at",
		"total_amount": "total_amount",
	}

	clauses := ParseSortList("-created_at,total_amount", columns)
	assert.Equal(t, []string{"created_at DESC", "total_amount ASC"}, clauses)
}

func TestParseSortListDropsUnknownFields(t *testing.T) {
	columns := map[string]string{"name": "name"}

	clauses := ParseSortList("name,password;drop table users", columns)
	assert.Equal(t, []string{"name ASC"}, clauses)

	assert.Empty(t, ParseSortList("", columns))
	assert.Empty(t, ParseSortList("unknown", columns))
}
