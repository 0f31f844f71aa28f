package models

import "time"

// SubmissionStatus tracks a submission through external review.
type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

// Submission is a user-proposed Location awaiting administrative review.
// SubmittedAt and Status are always server-assigned; client-supplied values
// are never persisted.
type Submission struct {
	Location
	SubmitterEmail string           `json:"submitterEmail,omitempty"`
	SubmittedAt    time.Time        `json:"submittedAt"`
	Status         SubmissionStatus `json:"status"`
}
