package storage

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/Varun5711/taskboard/internal/database"
)

//go:embed schema.sql
var schema string

// Migrate applies the schema against the primary. Statements are all
// IF NOT EXISTS so running it on every startup is safe.
func Migrate(ctx context.Context, db *database.DBManager) error {
	if _, err := db.Write().Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
