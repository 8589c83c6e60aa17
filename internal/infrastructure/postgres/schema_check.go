package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// expectedColumns lists, per table, the columns the stores read and write.
// CheckSchema compares this against information_schema so a half-applied
// migration fails at startup instead of mid-request.
var expectedColumns = map[string][]string{
	"users": {
		"id", "email", "password_hash", "created_at",
		"email_verified", "blocked", "admin_level", "last_login",
	},
	"sessions": {
		"id", "user_id", "token", "created_at", "last_used", "expires_at",
	},
	"codes": {
		"id", "user_id", "purpose", "code", "created_at", "used_at", "expires_at",
	},
	"assets": {
		"id", "file_name", "created_at", "modified_at",
		"asset_type", "colorable", "default_properties", "cover_url",
	},
	"saved_characters": {
		"id", "user_id", "name", "created_at",
	},
	"used_assets": {
		"id", "user_id", "asset_id", "properties", "created_at",
	},
	"saved_character_assets": {
		"id", "saved_character_id", "used_asset_id", "created_at",
	},
}

// CheckSchema verifies that every table and column the stores depend on
// exists in the connected database.
func CheckSchema(ctx context.Context, pool *pgxpool.Pool) error {
	rows, err := pool.Query(ctx, `
		SELECT table_name, column_name
		FROM information_schema.columns
		WHERE table_schema = 'public'`)
	if err != nil {
		return fmt.Errorf("read information_schema: %w", err)
	}
	defer rows.Close()

	present := map[string]map[string]bool{}
	for rows.Next() {
		var table, column string
		if err := rows.Scan(&table, &column); err != nil {
			return err
		}
		if present[table] == nil {
			present[table] = map[string]bool{}
		}
		present[table][column] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	var missing []string
	for table, columns := range expectedColumns {
		got := present[table]
		if got == nil {
			missing = append(missing, table+" (table)")
			continue
		}
		for _, column := range columns {
			if !got[column] {
				missing = append(missing, table+"."+column)
			}
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("schema check failed, missing: %s", strings.Join(missing, ", "))
	}
	return nil
}
