// Package rrn parses Korean resident registration numbers
// (YYMMDD-GNNNNNN). The gender digit G selects the birth century, which
// makes the birth date, and therefore the age, a pure function of the
// number itself.
package rrn

import (
	"errors"
	"strconv"
	"time"
)

var ErrInvalid = errors.New("rrn: invalid resident registration number")

const layoutLen = 14 // YYMMDD-GNNNNNN

// Validate reports whether s is a well-formed resident registration
// number with a real calendar birth date.
func Validate(s string) error {
	_, err := BirthDate(s)
	return err
}

// BirthDate derives the birth date encoded in s.
func BirthDate(s string) (time.Time, error) {
	if len(s) != layoutLen || s[6] != '-' {
		return time.Time{}, ErrInvalid
	}
	for i, r := range s {
		if i == 6 {
			continue
		}
		if r < '0' || r > '9' {
			return time.Time{}, ErrInvalid
		}
	}

	century, err := centuryOf(s[7])
	if err != nil {
		return time.Time{}, err
	}
	yy, _ := strconv.Atoi(s[0:2])
	mm, _ := strconv.Atoi(s[2:4])
	dd, _ := strconv.Atoi(s[4:6])

	d := time.Date(century+yy, time.Month(mm), dd, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (e.g. Feb 30 -> Mar 2), so reject
	// anything that does not round-trip.
	if d.Year() != century+yy || int(d.Month()) != mm || d.Day() != dd {
		return time.Time{}, ErrInvalid
	}
	return d, nil
}

// Age returns the number of completed years between the encoded birth
// date and now.
func Age(s string, now time.Time) (int, error) {
	birth, err := BirthDate(s)
	if err != nil {
		return 0, err
	}
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0, ErrInvalid
	}
	return age, nil
}

// Mask renders s with the trailing serial hidden (YYMMDD-G******),
// which is the only form the API ever returns. Malformed input is
// returned unchanged.
func Mask(s string) string {
	if len(s) != layoutLen || s[6] != '-' {
		return s
	}
	return s[:8] + "******"
}

func centuryOf(genderDigit byte) (int, error) {
	switch genderDigit {
	case '1', '2', '5', '6':
		return 1900, nil
	case '3', '4', '7', '8':
		return 2000, nil
	case '9', '0':
		return 1800, nil
	default:
		return 0, ErrInvalid
	}
}
