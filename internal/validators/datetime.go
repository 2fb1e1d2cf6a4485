package validators

import "time"

// Dates travel as "2006-01-02" and times as wall-clock "15:04",
// matching what the relational store keeps.

func IsValidDate(s string) bool {
	if s == "" {
		return false
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func IsValidTime(s string) bool {
	if s == "" {
		return false
	}
	_, err := time.Parse("15:04", s)
	return err == nil
}
