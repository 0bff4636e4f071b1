package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"essaycoach-be/internal/models"

	_ "modernc.org/sqlite" // SQLite driver.
)

// SQLiteRecordStore keeps working records and drafts in a local SQLite
// file. Timestamps are stored as unix nanoseconds so they sort as integers.
type SQLiteRecordStore struct {
	db *sql.DB
}

// OpenSQLiteRecordStore opens or creates the database and applies migrations.
func OpenSQLiteRecordStore(path string) (*SQLiteRecordStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// modernc sqlite serialises writers; one connection avoids SQLITE_BUSY
	db.SetMaxOpenConns(1)

	s := &SQLiteRecordStore{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return s, nil
}

func (s *SQLiteRecordStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteRecordStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLiteRecordStore) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS error_stats (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			section_id TEXT NOT NULL,
			section_type TEXT NOT NULL,
			ts INTEGER NOT NULL,
			total_errors INTEGER NOT NULL,
			errors_by_category TEXT NOT NULL,
			detailed_errors TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS completeness_stats (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL,
			section_id TEXT NOT NULL,
			section_type TEXT NOT NULL,
			ts INTEGER NOT NULL,
			is_complete INTEGER NOT NULL,
			met_requirements INTEGER NOT NULL,
			missing_requirements INTEGER NOT NULL,
			details TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS style_analyses (
			user_id TEXT NOT NULL,
			section_id TEXT NOT NULL,
			analysis TEXT NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (user_id, section_id)
		);`,
		`CREATE TABLE IF NOT EXISTS essay_drafts (
			user_id TEXT PRIMARY KEY,
			sections TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_error_stats_user_section ON error_stats(user_id, section_id, ts);`,
		`CREATE INDEX IF NOT EXISTS idx_completeness_stats_user_section ON completeness_stats(user_id, section_id, ts);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// sectionClause builds the WHERE clause shared by list and clear queries.
func sectionClause(userID string, sectionIDs []string) (string, []any) {
	args := []any{userID}
	if len(sectionIDs) == 0 {
		return "user_id = ?", args
	}
	marks := make([]string, len(sectionIDs))
	for i, id := range sectionIDs {
		marks[i] = "?"
		args = append(args, id)
	}
	return "user_id = ? AND section_id IN (" + strings.Join(marks, ",") + ")", args
}

func (s *SQLiteRecordStore) ListErrorStats(ctx context.Context, userID string, sectionIDs []string) ([]models.ErrorStatRecord, error) {
	where, args := sectionClause(userID, sectionIDs)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, section_id, section_type, ts, total_errors, errors_by_category, detailed_errors
		 FROM error_stats WHERE `+where+` ORDER BY ts, rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("query error stats: %w", err)
	}
	defer rows.Close()

	out := []models.ErrorStatRecord{}
	for rows.Next() {
		var (
			r              models.ErrorStatRecord
			ts             int64
			counts, detail string
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.SectionID, &r.SectionType, &ts, &r.TotalErrors, &counts, &detail); err != nil {
			return nil, err
		}
		r.Timestamp = time.Unix(0, ts).UTC()
		if err := json.Unmarshal([]byte(counts), &r.ErrorsByCategory); err != nil {
			return nil, fmt.Errorf("error stat %s: %w", r.ID, err)
		}
		if err := json.Unmarshal([]byte(detail), &r.DetailedErrors); err != nil {
			return nil, fmt.Errorf("error stat %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteRecordStore) ListCompletenessStats(ctx context.Context, userID string, sectionIDs []string) ([]models.CompletenessStatRecord, error) {
	where, args := sectionClause(userID, sectionIDs)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, section_id, section_type, ts, is_complete, met_requirements, missing_requirements, details
		 FROM completeness_stats WHERE `+where+` ORDER BY ts, rowid`, args...)
	if err != nil {
		return nil, fmt.Errorf("query completeness stats: %w", err)
	}
	defer rows.Close()

	out := []models.CompletenessStatRecord{}
	for rows.Next() {
		var (
			r       models.CompletenessStatRecord
			ts      int64
			details string
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.SectionID, &r.SectionType, &ts, &r.IsComplete, &r.MetRequirements, &r.MissingRequirements, &details); err != nil {
			return nil, err
		}
		r.Timestamp = time.Unix(0, ts).UTC()
		if err := json.Unmarshal([]byte(details), &r.Details); err != nil {
			return nil, fmt.Errorf("completeness stat %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *SQLiteRecordStore) GetLatestStyleAnalysis(ctx context.Context, userID, sectionID string) (*models.WritingStyleAnalysis, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT analysis FROM style_analyses WHERE user_id = ? AND section_id = ?`, userID, sectionID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query style analysis: %w", err)
	}
	var a models.WritingStyleAnalysis
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return nil, fmt.Errorf("style analysis %s/%s: %w", userID, sectionID, err)
	}
	return &a, nil
}

func (s *SQLiteRecordStore) AppendErrorStat(ctx context.Context, rec *models.ErrorStatRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	counts, err := json.Marshal(rec.ErrorsByCategory)
	if err != nil {
		return err
	}
	detail, err := json.Marshal(nonNilDetails(rec.DetailedErrors))
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO error_stats (id, user_id, section_id, section_type, ts, total_errors, errors_by_category, detailed_errors)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.SectionID, string(rec.SectionType), rec.Timestamp.UnixNano(), rec.TotalErrors, string(counts), string(detail))
	if err != nil {
		return fmt.Errorf("insert error stat: %w", err)
	}
	return nil
}

func (s *SQLiteRecordStore) AppendCompletenessStat(ctx context.Context, rec *models.CompletenessStatRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	details, err := json.Marshal(rec.Details)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO completeness_stats (id, user_id, section_id, section_type, ts, is_complete, met_requirements, missing_requirements, details)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.UserID, rec.SectionID, string(rec.SectionType), rec.Timestamp.UnixNano(), rec.IsComplete, rec.MetRequirements, rec.MissingRequirements, string(details))
	if err != nil {
		return fmt.Errorf("insert completeness stat: %w", err)
	}
	return nil
}

func (s *SQLiteRecordStore) PutStyleAnalysis(ctx context.Context, userID, sectionID string, analysis models.WritingStyleAnalysis) error {
	raw, err := json.Marshal(analysis)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO style_analyses (user_id, section_id, analysis, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id, section_id) DO UPDATE SET analysis = excluded.analysis, updated_at = excluded.updated_at`,
		userID, sectionID, string(raw), time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("upsert style analysis: %w", err)
	}
	return nil
}

func (s *SQLiteRecordStore) ClearSections(ctx context.Context, userID string, sectionIDs []string) (err error) {
	where, args := sectionClause(userID, sectionIDs)
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"error_stats", "completeness_stats", "style_analyses"} {
		if _, err = tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE `+where, args...); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteRecordStore) LastRecordedAt(ctx context.Context) (map[string]time.Time, error) {
	return s.latestByUser(ctx,
		`SELECT user_id, MAX(at) FROM (
			SELECT user_id, ts AS at FROM error_stats
			UNION ALL SELECT user_id, ts FROM completeness_stats
			UNION ALL SELECT user_id, updated_at FROM style_analyses
		 ) GROUP BY user_id`)
}

func (s *SQLiteRecordStore) latestByUser(ctx context.Context, query string) (map[string]time.Time, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query activity: %w", err)
	}
	defer rows.Close()

	latest := make(map[string]time.Time)
	for rows.Next() {
		var (
			userID string
			at     int64
		)
		if err := rows.Scan(&userID, &at); err != nil {
			return nil, err
		}
		latest[userID] = time.Unix(0, at).UTC()
	}
	return latest, rows.Err()
}

func (s *SQLiteRecordStore) ListSections(ctx context.Context, userID string) ([]models.EssaySection, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT sections FROM essay_drafts WHERE user_id = ?`, userID).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query draft: %w", err)
	}
	var sections []models.EssaySection
	if err := json.Unmarshal([]byte(raw), &sections); err != nil {
		return nil, fmt.Errorf("draft of %s: %w", userID, err)
	}
	return sections, nil
}

func (s *SQLiteRecordStore) ReplaceSections(ctx context.Context, userID string, sections []models.EssaySection) error {
	raw, err := json.Marshal(sections)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO essay_drafts (user_id, sections, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET sections = excluded.sections, updated_at = excluded.updated_at`,
		userID, string(raw), time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("upsert draft: %w", err)
	}
	return nil
}

func (s *SQLiteRecordStore) DeleteSections(ctx context.Context, userID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM essay_drafts WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete draft: %w", err)
	}
	return nil
}

func (s *SQLiteRecordStore) LastEditedAt(ctx context.Context) (map[string]time.Time, error) {
	return s.latestByUser(ctx, `SELECT user_id, updated_at FROM essay_drafts`)
}

func nonNilDetails(d []models.ErrorDetail) []models.ErrorDetail {
	if d == nil {
		return []models.ErrorDetail{}
	}
	return d
}
