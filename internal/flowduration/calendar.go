package flowduration

// IsLeapYear reports whether year has 366 days in the Gregorian calendar.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// TotalDays is the number of days in year.
func TotalDays(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}
