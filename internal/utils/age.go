package utils

import "time"

// DOBLayout is the wire format for dates of birth, as submitted by HTML date
// inputs.
const DOBLayout = "2006-01-02"

// AgeFromDOB derives an age in whole years from a date of birth, decremented
// by one when the birthday has not yet occurred in the current calendar year.
// Missing or unparseable dates yield the sentinel 0, used consistently by
// listing and detail views.
func AgeFromDOB(dob string, now time.Time) int {
	birth, err := time.Parse(DOBLayout, dob)
	if err != nil {
		return 0
	}

	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() || (now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
