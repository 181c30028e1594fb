package postgres

import (
	"database/sql"
	"errors"
	"testing"
)

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	if !isNotFound(sql.ErrNoRows) {
		t.Fatal("sql.ErrNoRows must classify as not found")
	}
	if isNotFound(errors.New("pq: connection refused")) {
		t.Fatal("unrelated errors must not classify as not found")
	}
	if isNotFound(nil) {
		t.Fatal("nil must not classify as not found")
	}
}
