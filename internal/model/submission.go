package model

import "time"

type SubmissionStatus string

const (
	StatusNew       SubmissionStatus = "new"
	StatusRead      SubmissionStatus = "read"
	StatusProcessed SubmissionStatus = "processed"
)

func (s SubmissionStatus) String() string {
	return string(s)
}

func (s SubmissionStatus) Valid() bool {
	return s == StatusNew || s == StatusRead || s == StatusProcessed
}

// Submission is the DB entity persisted in the contact_submissions table.
// ID and CreatedAt are assigned by the store; Status is the only mutable field.
type Submission struct {
	ID        int64            `db:"id"         json:"id"`
	Name      string           `db:"name"       json:"name"`
	Email     string           `db:"email"      json:"email"`
	Phone     *string          `db:"phone"      json:"phone"` // nullable
	Service   string           `db:"service"    json:"service"`
	Message   string           `db:"message"    json:"message"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	Status    SubmissionStatus `db:"status"     json:"status"`
}

// SubmissionDraft is the contact form payload before validation.
// An empty Phone means the caller did not supply one.
type SubmissionDraft struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// NewSubmission is the row handed to the store on insert.
type NewSubmission struct {
	Name    string           `json:"name"`
	Email   string           `json:"email"`
	Phone   *string          `json:"phone"`
	Service string           `json:"service"`
	Message string           `json:"message"`
	Status  SubmissionStatus `json:"status"`
}
