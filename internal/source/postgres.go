package source

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/XavierBriggs/fortuna/services/omnibet/internal/config"
	"github.com/XavierBriggs/fortuna/services/omnibet/pkg/models"
)

// PostgresSource reads matchups the odds-aggregation service writes to its
// matchups table. Each team is stored as a JSONB document in the same shape
// the HTTP API returns.
type PostgresSource struct {
	db *sql.DB
}

// NewPostgresSource opens and pings the database
func NewPostgresSource(cfg config.PostgresConfig) (*PostgresSource, error) {
	db, err := sql.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Configure connection pool
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresSource{db: db}, nil
}

// NewPostgresSourceFromDB wraps an existing connection pool
func NewPostgresSourceFromDB(db *sql.DB) *PostgresSource {
	return &PostgresSource{db: db}
}

// FetchMatchups returns the sport's matchups ordered by start time
func (s *PostgresSource) FetchMatchups(ctx context.Context, sport string) ([]models.Matchup, error) {
	query := `
		SELECT sport, commence_time, team_1, team_2
		FROM matchups
		WHERE sport = $1
		ORDER BY commence_time ASC, matchup_id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, sport)
	if err != nil {
		return nil, fmt.Errorf("query matchups: %w", err)
	}
	defer rows.Close()

	matchups := []models.Matchup{}
	for rows.Next() {
		var (
			m            models.Matchup
			team1, team2 []byte
		)
		if err := rows.Scan(&m.Sport, &m.Datetime, &team1, &team2); err != nil {
			return nil, fmt.Errorf("scan matchup: %w", err)
		}
		if err := json.Unmarshal(team1, &m.Team1); err != nil {
			return nil, fmt.Errorf("decode team_1: %w", err)
		}
		if err := json.Unmarshal(team2, &m.Team2); err != nil {
			return nil, fmt.Errorf("decode team_2: %w", err)
		}
		matchups = append(matchups, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate matchups: %w", err)
	}

	return matchups, nil
}

// Ping checks the database connection
func (s *PostgresSource) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection
func (s *PostgresSource) Close() error {
	return s.db.Close()
}
