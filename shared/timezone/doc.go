// Package timezone pins every timestamp the service produces to the zone named by
// APP_TIMEZONE (an IANA name such as "UTC" or "Asia/Jakarta"), falling back to UTC.
//
//	now := timezone.Now()
//	checkIn, err := timezone.ParseDate("2024-01-15")
//	formatted := timezone.Format(now, time.RFC3339)
package timezone
