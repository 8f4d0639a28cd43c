package util

import "time"

// JST is the exchange time zone of the Tokyo market.
var JST = time.FixedZone("JST", 9*60*60)

// StampLayout is how fetch times are shown on the page.
const StampLayout = "2006-01-02 15:04:05 MST"

// FormatStamp renders t in loc, or "" for the zero time.
func FormatStamp(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = JST
	}
	return t.In(loc).Format(StampLayout)
}

// FormatJST renders t in Japan time.
func FormatJST(t time.Time) string { return FormatStamp(t, JST) }
