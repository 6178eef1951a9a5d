package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"resumeapi/internal/model"
	"resumeapi/internal/repository"
)

// CandidatePostgres is a PostgreSQL implementation of repository.CandidateRepository.
// Ids come from the candidates_id_seq sequence, so they are never reused.
type CandidatePostgres struct {
	db *sql.DB
}

// NewCandidatePostgres creates a new CandidatePostgres repository.
func NewCandidatePostgres(db *sql.DB) *CandidatePostgres {
	return &CandidatePostgres{db: db}
}

var _ repository.CandidateRepository = (*CandidatePostgres)(nil)

const candidateColumns = `id, full_name, dob, contact_email, contact_number, contact_address,
		education, graduation_year, experience, skills, resume_file_path, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCandidate(row rowScanner) (*model.Candidate, error) {
	var (
		c      model.Candidate
		skills []byte
	)
	if err := row.Scan(
		&c.ID,
		&c.FullName,
		&c.DateOfBirth,
		&c.ContactEmail,
		&c.ContactNumber,
		&c.ContactAddress,
		&c.Education,
		&c.GraduationYear,
		&c.Experience,
		&skills,
		&c.ResumeFilePath,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &c.Skills); err != nil {
			return nil, fmt.Errorf("decode skills: %w", err)
		}
	}
	if c.Skills == nil {
		c.Skills = []string{}
	}
	return &c, nil
}

// NextID draws the next value from the id sequence.
func (r *CandidatePostgres) NextID(ctx context.Context) (int64, error) {
	var id int64
	if err := r.db.QueryRowContext(ctx, `SELECT nextval('candidates_id_seq')`).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// Insert writes a candidate row with a previously allocated id.
func (r *CandidatePostgres) Insert(ctx context.Context, c *model.Candidate) error {
	if c == nil {
		return fmt.Errorf("insert: nil candidate")
	}
	skills := c.Skills
	if skills == nil {
		skills = []string{}
	}
	b, err := json.Marshal(skills)
	if err != nil {
		return fmt.Errorf("encode skills: %w", err)
	}
	const q = `
		INSERT INTO candidates (` + candidateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = r.db.ExecContext(ctx, q,
		c.ID,
		c.FullName,
		c.DateOfBirth,
		c.ContactEmail,
		c.ContactNumber,
		c.ContactAddress,
		c.Education,
		c.GraduationYear,
		c.Experience,
		string(b),
		c.ResumeFilePath,
		c.CreatedAt,
	)
	return err
}

// FindByID fetches a single candidate by id.
func (r *CandidatePostgres) FindByID(ctx context.Context, id int64) (*model.Candidate, error) {
	q := `SELECT ` + candidateColumns + ` FROM candidates WHERE id = $1`
	c, err := scanCandidate(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("candidate %d: %w", id, repository.ErrNotFound)
		}
		return nil, err
	}
	return c, nil
}

// DeleteByID removes a candidate row and reports whether one existed.
func (r *CandidatePostgres) DeleteByID(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// All returns every candidate ordered by insertion.
func (r *CandidatePostgres) All(ctx context.Context) ([]model.Candidate, error) {
	q := `SELECT ` + candidateColumns + ` FROM candidates ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Candidate, 0)
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Count returns the number of candidate rows.
func (r *CandidatePostgres) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM candidates`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
