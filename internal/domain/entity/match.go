package entity

import "time"

type MatchStatus string

const (
	MatchPending  MatchStatus = "PENDING"
	MatchAccepted MatchStatus = "ACCEPTED"
	MatchCanceled MatchStatus = "CANCELED"
)

// Match links a patient to a caregiving engagement. Matches never
// outlive their patient; deleting a patient removes its matches in the
// same transaction.
type Match struct {
	ID          string
	PatientID   string
	CaregiverID string
	Status      MatchStatus
	CreatedAt   time.Time
}
