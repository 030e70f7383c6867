package crecord

import (
	"strings"
	"time"
)

// Address is a two-line mailing address.
type Address struct {
	LineOne      string `json:"line_one"`
	CityStateZip string `json:"city_state_zip"`
}

func (a Address) String() string {
	return a.LineOne + "\n" + a.CityStateZip
}

// Person is the subject of a criminal record.
type Person struct {
	FirstName   string   `json:"first_name"`
	LastName    string   `json:"last_name"`
	DateOfBirth Date     `json:"date_of_birth"`
	DateOfDeath Date     `json:"date_of_death"`
	Aliases     []string `json:"aliases,omitempty"`
	SSN         string   `json:"ssn,omitempty"`
	Address     *Address `json:"address,omitempty"`
}

// Age returns the person's age in whole years as of the given time, or 0
// when the date of birth is unknown.
func (p Person) Age(asOf time.Time) int {
	if p.DateOfBirth.IsZero() {
		return 0
	}
	return p.DateOfBirth.YearsSince(asOf)
}

// YearsDead returns the whole years since the person's death. The second
// return is false when the person is alive (or we have no date of death).
func (p Person) YearsDead(asOf time.Time) (int, bool) {
	if p.DateOfDeath.IsZero() {
		return 0, false
	}
	return p.DateOfDeath.YearsSince(asOf), true
}

// FullName joins first and last names.
func (p Person) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}
