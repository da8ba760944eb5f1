package seeder

import (
	"context"
	"fmt"

	"portfolio-api/internal/database"
)

// EnsureTableColumns fails when any of columns is missing from table in the
// public schema.
func EnsureTableColumns(ctx context.Context, db database.Querier, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}
	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("empty column")
		}
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema='public' AND table_name=$1`,
		table,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			return fmt.Errorf("schema mismatch: missing column %s.%s", table, col)
		}
	}
	return nil
}

// EnsureOwnershipSchema checks the columns ownership scoping depends on.
func EnsureOwnershipSchema(ctx context.Context, db database.Querier) error {
	if err := EnsureTableColumns(ctx, db, "profile", "id", "user_id", "name", "email", "education"); err != nil {
		return err
	}
	return EnsureTableColumns(ctx, db, "work_experience", "id", "profile_id", "start_date", "end_date")
}
