package entity

import "time"

// Patient is the care-recipient profile, one-to-one with a Member.
// Name, ResidentRegistrationNumber and MemberID are identity fields and
// never change after creation; the remaining detail fields are mutable
// through the update operation only.
type Patient struct {
	ID                         string
	MemberID                   string
	Name                       string
	ResidentRegistrationNumber string
	Address                    Address
	NokName                    string
	NokContact                 string
	PatientSignificant         string
	CareRequirements           string
	IsInMatchList              bool
	CreatedAt                  time.Time
	UpdatedAt                  time.Time
}
