package repository

import (
	"context"
	"time"

	"github.com/horsepowerelectrical/contact-api/internal/model"
	"github.com/jmoiron/sqlx"
)

// SubmissionsRepository is the row store behind the contact_submissions table.
type SubmissionsRepository interface {
	Insert(ctx context.Context, s model.NewSubmission) (*model.Submission, error)
	// List returns every row, newest first.
	List(ctx context.Context) ([]model.Submission, error)
	Count(ctx context.Context) (int64, error)
	// CountCreatedBetween counts rows with from <= created_at < to.
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
	// ServiceHistogram returns one entry per service, ordered by the
	// service's first insertion.
	ServiceHistogram(ctx context.Context) ([]model.ServiceCount, error)
	// UpdateStatus reports how many rows matched id.
	UpdateStatus(ctx context.Context, id int64, status model.SubmissionStatus) (int64, error)
}

const submissionColumns = `id, name, email, phone, service, message, created_at, status`

type SubmissionsRepositoryImpl struct {
	db *sqlx.DB
}

func NewSubmissionsRepository(db *sqlx.DB) *SubmissionsRepositoryImpl {
	return &SubmissionsRepositoryImpl{db: db}
}

func (r *SubmissionsRepositoryImpl) mysql() bool {
	return r.db.DriverName() == "mysql"
}

// Insert stores s and returns the row as persisted, with id and created_at
// filled by the database.
func (r *SubmissionsRepositoryImpl) Insert(ctx context.Context, s model.NewSubmission) (*model.Submission, error) {
	const q = `
		INSERT INTO contact_submissions
		    (name, email, phone, service, message, status)
		VALUES
		    (?,    ?,     ?,     ?,       ?,       ?)
	`
	args := []any{s.Name, s.Email, s.Phone, s.Service, s.Message, s.Status}

	var out model.Submission
	if r.mysql() {
		res, err := r.db.ExecContext(ctx, q, args...)
		if err != nil {
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		if err := r.db.GetContext(ctx, &out,
			`SELECT `+submissionColumns+` FROM contact_submissions WHERE id = ?`, id); err != nil {
			return nil, err
		}
		return &out, nil
	}

	if err := r.db.QueryRowxContext(ctx, r.db.Rebind(q+` RETURNING `+submissionColumns), args...).StructScan(&out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *SubmissionsRepositoryImpl) List(ctx context.Context) ([]model.Submission, error) {
	const q = `SELECT ` + submissionColumns + ` FROM contact_submissions ORDER BY created_at DESC, id DESC`

	out := []model.Submission{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SubmissionsRepositoryImpl) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM contact_submissions`); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *SubmissionsRepositoryImpl) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	q := r.db.Rebind(`SELECT COUNT(*) FROM contact_submissions WHERE created_at >= ? AND created_at < ?`)

	var n int64
	if err := r.db.GetContext(ctx, &n, q, from.UTC(), to.UTC()); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *SubmissionsRepositoryImpl) ServiceHistogram(ctx context.Context) ([]model.ServiceCount, error) {
	const q = `
		SELECT service, COUNT(*) AS count
		FROM contact_submissions
		GROUP BY service
		ORDER BY MIN(id)
	`
	out := []model.ServiceCount{}
	if err := r.db.SelectContext(ctx, &out, q); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *SubmissionsRepositoryImpl) UpdateStatus(ctx context.Context, id int64, status model.SubmissionStatus) (int64, error) {
	q := r.db.Rebind(`UPDATE contact_submissions SET status = ? WHERE id = ?`)

	res, err := r.db.ExecContext(ctx, q, status, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
