package index

import (
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/jumpedia/jumpedia/internal/sqlutil"
)

// Rate stores a user's rating of a jump under a rateable key. The value
// is the internal form (already validated and converted by the caller).
// Returns the previous internal value, or "" on a first rating.
func (d *Database) Rate(jump, userID, key, value string) (previous string, err error) {
	err = d.db.QueryRow(
		"SELECT value FROM ratings WHERE jump = ? AND user_id = ? AND key = ?",
		jump, userID, key).Scan(&previous)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	_, err = d.db.Exec(`
		INSERT INTO ratings (jump, user_id, key, value)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (jump, user_id, key) DO UPDATE SET value = excluded.value
	`, jump, userID, key, value)
	if err != nil {
		return "", fmt.Errorf("store rating: %w", err)
	}
	return previous, nil
}

// RatingSummary is the aggregate for one rateable key of a jump.
type RatingSummary struct {
	Key     string
	Average float64
	Count   int
}

// Ratings aggregates every rating of a jump per key, sorted by key. An
// unrated jump yields an empty slice.
func (d *Database) Ratings(jump string) ([]RatingSummary, error) {
	rows, err := d.db.Query(
		"SELECT key, value FROM ratings WHERE jump = ?", jump)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}

	type rating struct{ key, value string }
	all, err := sqlutil.ScanRows(rows, func(rows *sql.Rows) (rating, error) {
		var r rating
		err := rows.Scan(&r.key, &r.value)
		return r, err
	})
	if err != nil {
		return nil, err
	}

	sums := map[string]float64{}
	counts := map[string]int{}
	for _, r := range all {
		v, err := strconv.ParseFloat(r.value, 64)
		if err != nil {
			// A malformed row should not sink the whole summary.
			continue
		}
		sums[r.key] += v
		counts[r.key]++
	}

	out := make([]RatingSummary, 0, len(sums))
	for key, sum := range sums {
		out = append(out, RatingSummary{
			Key:     key,
			Average: sum / float64(counts[key]),
			Count:   counts[key],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out, nil
}
