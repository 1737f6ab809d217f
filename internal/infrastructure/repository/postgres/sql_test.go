package postgres

import (
	"database/sql"
	"testing"
)

func TestNullInt64ToInt64(t *testing.T) {
	t.Run("passes through valid value", func(t *testing.T) {
		got := nullInt64ToInt64(sql.NullInt64{Int64: 341, Valid: true})
		if got != 341 {
			t.Fatalf("expected 341, got %d", got)
		}
	})

	t.Run("returns zero for null", func(t *testing.T) {
		got := nullInt64ToInt64(sql.NullInt64{})
		if got != 0 {
			t.Fatalf("expected 0, got %d", got)
		}
	})
}

func TestNullInt64ToIntPtr(t *testing.T) {
	t.Run("passes through valid value", func(t *testing.T) {
		got := nullInt64ToIntPtr(sql.NullInt64{Int64: 3, Valid: true})
		if got == nil || *got != 3 {
			t.Fatalf("expected 3, got %v", got)
		}
	})

	t.Run("returns nil for null", func(t *testing.T) {
		got := nullInt64ToIntPtr(sql.NullInt64{})
		if got != nil {
			t.Fatalf("expected nil, got %v", got)
		}
	})
}
