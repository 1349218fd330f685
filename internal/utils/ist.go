package utils

import "time"

// istZone avoids a tzdata dependency at runtime; IST has no DST.
var istZone = time.FixedZone("IST", 5*3600+30*60)

// ISTNow renders the current time the way the mobile clients display it.
// Display formatting only; canonical timestamps stay UTC in the database.
func ISTNow() string {
	return FormatIST(time.Now())
}

func FormatIST(t time.Time) string {
	return t.In(istZone).Format("02/01/2006, 3:04:05 pm")
}
