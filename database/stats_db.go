package database

import (
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// CategoryStats aggregates gallery usage for one category.
type CategoryStats struct {
	Category   string `json:"category"`
	AssetCount int64  `json:"asset_count"`
	ImageCount int64  `json:"image_count"`
	VideoCount int64  `json:"video_count"`
	TotalBytes int64  `json:"total_bytes"`
}

// CreditTotals aggregates the credits table per guest.
type CreditTotals struct {
	GuestEmail string  `json:"guest_email"`
	Total      float64 `json:"total"`
	Entries    int64   `json:"entries"`
}

// GetGalleryStats returns per-category asset counts and byte totals,
// largest categories first.
func GetGalleryStats(db *sql.DB) ([]CategoryStats, error) {
	queryBuilder := psql.Select(
		"category",
		"COUNT(*)",
		"SUM(CASE WHEN kind = 'image' THEN 1 ELSE 0 END)",
		"SUM(CASE WHEN kind = 'video' THEN 1 ELSE 0 END)",
		"COALESCE(SUM(size_bytes), 0)",
	).From("gallery_assets").
		GroupBy("category").
		OrderBy("COALESCE(SUM(size_bytes), 0) DESC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for GetGalleryStats: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query gallery stats: %w", err)
	}
	defer rows.Close()

	var stats []CategoryStats
	for rows.Next() {
		var s CategoryStats
		if err := rows.Scan(&s.Category, &s.AssetCount, &s.ImageCount, &s.VideoCount, &s.TotalBytes); err != nil {
			return nil, fmt.Errorf("failed to scan gallery stats row: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// GetCreditTotals returns the summed credit balance and entry count per guest,
// highest balance first.
func GetCreditTotals(db *sql.DB) ([]CreditTotals, error) {
	queryBuilder := psql.Select(
		"guest_email",
		"COALESCE(SUM(amount), 0)",
		"COUNT(*)",
	).From("credits").
		GroupBy("guest_email").
		OrderBy("COALESCE(SUM(amount), 0) DESC")

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build SQL query for GetCreditTotals: %w", err)
	}

	rows, err := db.Query(sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit totals: %w", err)
	}
	defer rows.Close()

	var totals []CreditTotals
	for rows.Next() {
		var t CreditTotals
		if err := rows.Scan(&t.GuestEmail, &t.Total, &t.Entries); err != nil {
			return nil, fmt.Errorf("failed to scan credit totals row: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

// GetCreditTotalForGuest returns the summed credit balance for one guest.
func GetCreditTotalForGuest(db *sql.DB, guestEmail string) (float64, error) {
	queryBuilder := psql.Select("COALESCE(SUM(amount), 0)").
		From("credits").
		Where(sq.Eq{"guest_email": guestEmail})

	sqlStr, args, err := queryBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build SQL query for GetCreditTotalForGuest: %w", err)
	}

	var total float64
	err = db.QueryRow(sqlStr, args...).Scan(&total)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to query credit total for %s: %w", guestEmail, err)
	}
	return total, nil
}
