package timeutil

import "time"

// DateLayout is the wire format for business dates (purchase, sale,
// payment, expense, season boundaries).
const DateLayout = "2006-01-02"

// IST is the Indian Standard Time location (UTC+5:30). All business
// dates are interpreted in it.
var IST *time.Location

func init() {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		loc = time.FixedZone("IST", 5*60*60+30*60)
	}
	IST = loc
}

// Now returns the current time in IST.
func Now() time.Time {
	return time.Now().In(IST)
}

// ParseInIST parses value with the given layout, anchored to IST.
func ParseInIST(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, IST)
}

// FormatIST formats t in IST using the given layout.
func FormatIST(t time.Time, layout string) string {
	return t.In(IST).Format(layout)
}

// StartOfDay returns 00:00:00 IST of the day containing t.
func StartOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 0, 0, 0, 0, IST)
}

// EndOfDay returns the last nanosecond of the IST day containing t.
func EndOfDay(t time.Time) time.Time {
	ist := t.In(IST)
	return time.Date(ist.Year(), ist.Month(), ist.Day(), 23, 59, 59, 999999999, IST)
}
