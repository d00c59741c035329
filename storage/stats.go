package storage

import "fmt"

// PromptStats aggregates deliveries per prompt key.
type PromptStats struct {
	PromptKey       string
	TotalPastes     int
	TotalCharacters int
	SuccessCount    int
	FailureCount    int
}

// DailyStats aggregates deliveries per calendar day.
type DailyStats struct {
	Date         string
	TotalPastes  int
	SuccessCount int
	FailureCount int
}

// OverallStats aggregates all deliveries in a window.
type OverallStats struct {
	TotalPastes     int
	TotalCharacters int
	SuccessCount    int
	FailureCount    int
}

// GetOverallStats returns totals for the last N days.
func (db *DB) GetOverallStats(days int) (*OverallStats, error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(character_count), 0),
			COALESCE(SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0)
		FROM pastes
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
	`

	var stats OverallStats
	err := db.conn.QueryRow(query, days).Scan(
		&stats.TotalPastes, &stats.TotalCharacters,
		&stats.SuccessCount, &stats.FailureCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query overall stats: %w", err)
	}
	return &stats, nil
}

// GetPromptStats returns per-prompt totals for the last N days, most used
// first.
func (db *DB) GetPromptStats(days int) ([]PromptStats, error) {
	query := `
		SELECT
			prompt_key,
			COUNT(*) as total_pastes,
			COALESCE(SUM(character_count), 0),
			SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END),
			SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END)
		FROM pastes
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY prompt_key
		ORDER BY total_pastes DESC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query prompt stats: %w", err)
	}
	defer rows.Close()

	var stats []PromptStats
	for rows.Next() {
		var s PromptStats
		if err := rows.Scan(
			&s.PromptKey, &s.TotalPastes, &s.TotalCharacters,
			&s.SuccessCount, &s.FailureCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan prompt stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// GetDailyStats returns per-day totals for the last N days, newest first.
func (db *DB) GetDailyStats(days int) ([]DailyStats, error) {
	query := `
		SELECT
			DATE(timestamp) as date,
			COUNT(*),
			SUM(CASE WHEN success = 1 THEN 1 ELSE 0 END),
			SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END)
		FROM pastes
		WHERE timestamp >= datetime('now', '-' || ? || ' days')
		GROUP BY DATE(timestamp)
		ORDER BY date DESC
	`

	rows, err := db.conn.Query(query, days)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily stats: %w", err)
	}
	defer rows.Close()

	var stats []DailyStats
	for rows.Next() {
		var s DailyStats
		if err := rows.Scan(&s.Date, &s.TotalPastes, &s.SuccessCount, &s.FailureCount); err != nil {
			return nil, fmt.Errorf("failed to scan daily stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
