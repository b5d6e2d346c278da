/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package backend

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"slidesmith/internal/storage"
)

// SearchPG runs a deck-scoped search against the Postgres documents table,
// mirroring the filters and result shape of the local SQLite index.
func SearchPG(ctx context.Context, db *sql.DB, deckID int64, q storage.SearchQuery) ([]storage.SearchResult, error) {
	var (
		where []string
		args  []any
	)
	place := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	where = append(where, "d.deck_id = "+place(deckID))

	text := strings.TrimSpace(q.Text)
	if text != "" {
		where = append(where, "d.search_vector @@ plainto_tsquery('simple', "+place(text)+")")
	}
	if q.SlideID != "" {
		where = append(where, "d.slide_id = "+place(q.SlideID))
	}
	if len(q.Types) > 0 {
		ph := make([]string, 0, len(q.Types))
		for _, t := range q.Types {
			ph = append(ph, place(t))
		}
		where = append(where, "d.doc_type IN ("+strings.Join(ph, ", ")+")")
	}

	snippetExpr := "''"
	if text != "" {
		snippetExpr = "ts_headline('simple', d.raw_text, plainto_tsquery('simple', " + place(text) + "), 'MaxFragments=1, MaxWords=12, MinWords=4')"
	}

	limit := q.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	query := `SELECT d.doc_id, d.doc_type, d.path, d.slide_id, d.element_id, ` + snippetExpr + ` AS snippet
FROM documents d
WHERE ` + strings.Join(where, " AND ") + `
ORDER BY d.doc_id
LIMIT ` + place(limit) + ` OFFSET ` + place(offset)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []storage.SearchResult
	for rows.Next() {
		var r storage.SearchResult
		if err := rows.Scan(&r.DocID, &r.Type, &r.Path, &r.SlideID, &r.ElementID, &r.Snippet); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
