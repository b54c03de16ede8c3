// Package timezone provides timezone utilities for the application.
//
// Usage:
//
//	now := timezone.Now()          // current time in app timezone
//	stamp := timezone.NowISO()     // "2022-01-20T09:54:48.139Z" style string for documents
//	loc := timezone.GetLocation()
//
// The timezone is configured via the APP_TIMEZONE environment variable using IANA
// names ("UTC", "Europe/Paris") and is initialized when the package is imported.
package timezone
