// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Artem Yudin

package cache

import (
	sq "github.com/Masterminds/squirrel"
)

const (
	upsertEntry = `
		INSERT INTO cache_entries (key, value, stored_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			stored_at = excluded.stored_at;`

	getEntry = `
		SELECT value, stored_at
		FROM cache_entries
		WHERE key = $1;`

	getTimestamp = `
		SELECT stored_at
		FROM cache_entries
		WHERE key = $1;`

	deleteEntry = `
		DELETE FROM cache_entries
		WHERE key = $1;`
)

// buildClearNamespaceQuery builds the DELETE that sweeps one namespace:
// the bare namespace key itself plus every "namespace/..." child key.
func buildClearNamespaceQuery(namespace string) (string, []any, error) {
	return sq.Delete("cache_entries").
		Where(sq.Or{
			sq.Eq{"key": namespace},
			sq.Like{"key": namespace + "/%"},
		}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
}
