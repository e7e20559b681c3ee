package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pulsohq/pulso/internal/api"
	"github.com/pulsohq/pulso/internal/services"
)

// SQLiteStore persists campaigns, questions, responses and accounts in a
// single SQLite file. Answers are stored as a JSON column keyed by question
// id, mirroring the shape the aggregation core consumes.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("nil db")
	}
	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, stmt := range pragmas {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("apply sqlite pragma %q: %w", stmt, err)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func NewStore(db *sql.DB) (api.Store, error) {
	return NewSQLiteStore(db)
}

func boolToInt64(v bool) int64 {
	if v {
		return 1
	}
	return 0
}

func int64ToBool(v int64) bool { return v != 0 }

func toNullString(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func (s *SQLiteStore) InsertCampaign(c *services.Campaign) (*services.Campaign, error) {
	_, err := s.db.Exec(`INSERT INTO campaigns
		(id, tenant_id, name, main_metric, redirect_enabled, redirect_rule, google_place_id, feedback_enabled, feedback_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.TenantID, c.Name, c.MainMetric,
		boolToInt64(c.RedirectEnabled), string(c.RedirectRule), toNullString(c.GooglePlaceID),
		boolToInt64(c.FeedbackEnabled), toNullString(c.FeedbackText),
		c.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return nil, fmt.Errorf("insert campaign: %w", err)
	}
	return c, nil
}

func (s *SQLiteStore) GetCampaign(id string) (*services.Campaign, error) {
	row := s.db.QueryRow(`SELECT id, tenant_id, name, main_metric, redirect_enabled, redirect_rule,
		google_place_id, feedback_enabled, feedback_text, created_at
		FROM campaigns WHERE id = ?`, id)
	c, err := scanCampaign(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	qs, err := s.listQuestions(c.ID)
	if err != nil {
		return nil, err
	}
	c.Questions = qs
	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCampaign(row rowScanner) (*services.Campaign, error) {
	var c services.Campaign
	var redirectEnabled, feedbackEnabled int64
	var rule, createdAt string
	var placeID, feedbackText sql.NullString
	if err := row.Scan(&c.ID, &c.TenantID, &c.Name, &c.MainMetric, &redirectEnabled, &rule,
		&placeID, &feedbackEnabled, &feedbackText, &createdAt); err != nil {
		return nil, err
	}
	c.RedirectEnabled = int64ToBool(redirectEnabled)
	c.RedirectRule = services.RedirectRule(rule)
	c.GooglePlaceID = placeID.String
	c.FeedbackEnabled = int64ToBool(feedbackEnabled)
	c.FeedbackText = feedbackText.String
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		c.CreatedAt = t
	}
	return &c, nil
}

func (s *SQLiteStore) UpdateCampaign(c *services.Campaign) error {
	res, err := s.db.Exec(`UPDATE campaigns SET name = ?, main_metric = ?, redirect_enabled = ?,
		redirect_rule = ?, google_place_id = ?, feedback_enabled = ?, feedback_text = ?
		WHERE id = ?`,
		c.Name, c.MainMetric, boolToInt64(c.RedirectEnabled), string(c.RedirectRule),
		toNullString(c.GooglePlaceID), boolToInt64(c.FeedbackEnabled), toNullString(c.FeedbackText), c.ID)
	if err != nil {
		return fmt.Errorf("update campaign: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return services.NewNotFoundError("campaign not found")
	}
	return nil
}

func (s *SQLiteStore) DeleteCampaign(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.Exec(`DELETE FROM questions WHERE campaign_id = ?`, id); err != nil {
		return fmt.Errorf("delete questions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM responses WHERE campaign_id = ?`, id); err != nil {
		return fmt.Errorf("delete responses: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM campaigns WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteStore) ListCampaignsByTenant(tenantID string) ([]*services.Campaign, error) {
	rows, err := s.db.Query(`SELECT id, tenant_id, name, main_metric, redirect_enabled, redirect_rule,
		google_place_id, feedback_enabled, feedback_text, created_at
		FROM campaigns WHERE tenant_id = ? ORDER BY id`, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list campaigns: %w", err)
	}
	defer func() { _ = rows.Close() }()
	out := []*services.Campaign{}
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, c := range out {
		qs, err := s.listQuestions(c.ID)
		if err != nil {
			return nil, err
		}
		c.Questions = qs
	}
	return out, nil
}

func (s *SQLiteStore) ReplaceQuestions(campaignID string, questions []*services.Question) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()
	if _, err := tx.Exec(`DELETE FROM questions WHERE campaign_id = ?`, campaignID); err != nil {
		return fmt.Errorf("clear questions: %w", err)
	}
	for _, q := range questions {
		if _, err := tx.Exec(`INSERT INTO questions (id, campaign_id, type, text, position, is_main)
			VALUES (?, ?, ?, ?, ?, ?)`,
			q.ID, campaignID, string(q.Type), q.Text, q.Order, boolToInt64(q.IsMain)); err != nil {
			return fmt.Errorf("insert question: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) listQuestions(campaignID string) ([]*services.Question, error) {
	rows, err := s.db.Query(`SELECT id, campaign_id, type, text, position, is_main
		FROM questions WHERE campaign_id = ? ORDER BY position`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer func() { _ = rows.Close() }()
	out := []*services.Question{}
	for rows.Next() {
		var q services.Question
		var qt string
		var isMain int64
		if err := rows.Scan(&q.ID, &q.CampaignID, &qt, &q.Text, &q.Order, &isMain); err != nil {
			return nil, err
		}
		q.Type = services.QuestionType(qt)
		q.IsMain = int64ToBool(isMain)
		out = append(out, &q)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) AddResponse(r *services.Response) error {
	answers, err := json.Marshal(r.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO responses (id, campaign_id, respondent_name, contact, answers, submitted_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.CampaignID, r.RespondentName, toNullString(r.Contact), string(answers),
		r.SubmittedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert response: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListResponsesByCampaign(campaignID string) ([]*services.Response, error) {
	rows, err := s.db.Query(`SELECT id, campaign_id, respondent_name, contact, answers, submitted_at
		FROM responses WHERE campaign_id = ? ORDER BY submitted_at, rowid`, campaignID)
	if err != nil {
		return nil, fmt.Errorf("list responses: %w", err)
	}
	defer func() { _ = rows.Close() }()
	out := []*services.Response{}
	for rows.Next() {
		var r services.Response
		var contact sql.NullString
		var answers, submittedAt string
		if err := rows.Scan(&r.ID, &r.CampaignID, &r.RespondentName, &contact, &answers, &submittedAt); err != nil {
			return nil, err
		}
		r.Contact = contact.String
		if err := json.Unmarshal([]byte(answers), &r.Answers); err != nil {
			return nil, fmt.Errorf("decode answers for %s: %w", r.ID, err)
		}
		if t, err := time.Parse(time.RFC3339Nano, submittedAt); err == nil {
			r.SubmittedAt = t
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) AddTenant(t *services.Tenant) error {
	if _, err := s.db.Exec(`INSERT INTO tenants (id, name) VALUES (?, ?)`, t.ID, t.Name); err != nil {
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AddUser(u *services.User) error {
	_, err := s.db.Exec(`INSERT INTO users (id, email, pass_hash, tenant_id, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PassHash, u.TenantID, u.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *SQLiteStore) FindUserByEmail(email string) (*services.User, error) {
	row := s.db.QueryRow(`SELECT id, email, pass_hash, tenant_id, created_at FROM users WHERE email = ? COLLATE NOCASE`, email)
	var u services.User
	var createdAt string
	if err := row.Scan(&u.ID, &u.Email, &u.PassHash, &u.TenantID, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
		u.CreatedAt = t
	}
	return &u, nil
}
