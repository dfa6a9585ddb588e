package pkg

import "time"

// DayFormat is the ISO date layout used for all persistence keys.
const DayFormat = "2006-01-02"

func FormatDay(t time.Time) string {
	return t.Format(DayFormat)
}

// ParseDay parses a YYYY-MM-DD string into a UTC midnight time.
func ParseDay(s string) (time.Time, error) {
	return time.Parse(DayFormat, s)
}

// IsValidDay reports whether s is a well-formed YYYY-MM-DD date. The
// round-trip check rejects inputs time.Parse is lenient about, like
// non-padded months.
func IsValidDay(s string) bool {
	t, err := ParseDay(s)
	return err == nil && FormatDay(t) == s
}
