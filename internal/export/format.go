package export

import "time"

// FormatDate renders a timestamp in the user's preferred pattern. Unknown
// patterns fall back to MM/DD/YYYY.
func FormatDate(t time.Time, format string) string {
	switch format {
	case "MM/DD/YYYY":
		return t.Format("01/02/2006")
	case "DD/MM/YYYY":
		return t.Format("02/01/2006")
	case "YYYY-MM-DD":
		return t.Format("2006-01-02")
	case "DD-MM-YYYY":
		return t.Format("02-01-2006")
	case "MMM DD, YYYY":
		return t.Format("Jan 2, 2006")
	case "DD MMM YYYY":
		return t.Format("2 Jan 2006")
	default:
		return t.Format("01/02/2006")
	}
}
