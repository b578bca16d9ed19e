package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/filmoteka/movie-catalog/internal/domain"
	"github.com/jackc/pgx/v5"
)

// Reference entities (countries, genres, actors, languages) are deduplicated
// by natural key and append-only: they are created lazily on first reference
// and never updated or deleted here. Every natural key carries a UNIQUE
// constraint, so a concurrent insert of the same key is resolved by
// re-reading the row the other transaction won with.

func resolveCountry(ctx context.Context, tx pgx.Tx, code string) (domain.Country, error) {
	country := domain.Country{Code: strings.ToUpper(code)}

	query := `SELECT id, name FROM countries WHERE code = $1`

	err := tx.QueryRow(ctx, query, country.Code).Scan(&country.ID, &country.Name)
	if err == nil {
		return country, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Country{}, err
	}

	query = `INSERT INTO countries (code) VALUES ($1) ON CONFLICT (code) DO NOTHING RETURNING id`

	err = tx.QueryRow(ctx, query, country.Code).Scan(&country.ID)
	if err == nil {
		return country, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.Country{}, err
	}

	// Lost the race against a concurrent insert, the row exists now.
	query = `SELECT id, name FROM countries WHERE code = $1`

	err = tx.QueryRow(ctx, query, country.Code).Scan(&country.ID, &country.Name)
	if err != nil {
		return domain.Country{}, err
	}

	return country, nil
}

// resolveByName implements get-or-create for the name-keyed reference tables.
// The table name is always a compile-time constant at the call sites.
func resolveByName(ctx context.Context, tx pgx.Tx, table, name string) (int, error) {
	var id int

	query := fmt.Sprintf(`SELECT id FROM %s WHERE name = $1`, table)

	err := tx.QueryRow(ctx, query, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	query = fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1) ON CONFLICT (name) DO NOTHING RETURNING id`, table)

	err = tx.QueryRow(ctx, query, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	query = fmt.Sprintf(`SELECT id FROM %s WHERE name = $1`, table)

	err = tx.QueryRow(ctx, query, name).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// dedupNames drops repeated names while preserving first-seen order, so a
// payload listing the same genre twice produces a single association row.
func dedupNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	result := make([]string, 0, len(names))

	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}

		seen[name] = struct{}{}
		result = append(result, name)
	}

	return result
}
