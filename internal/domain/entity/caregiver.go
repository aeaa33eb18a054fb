package entity

import "time"

// Caregiver is the care-provider profile, one-to-one with a Member.
// Age is never stored; it is derived from ResidentRegistrationNumber at
// response-mapping time. Name, RRN, gender and MemberID are immutable
// identity fields after creation.
type Caregiver struct {
	ID                         string
	MemberID                   string
	Name                       string
	ResidentRegistrationNumber string
	Contact                    string
	Gender                     Gender
	Address                    Address
	Rating                     float32
	ExperienceYears            int
	Specialization             string
	CaregiverSignificant       string
	ProfileImageURL            string
	IsInMatchList              bool
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}
