// Package calendar provides a client for managing Google Calendar events.
//
// Events can be listed (upcoming or within a time range), created, updated,
// and deleted. All-day events use date-only values; timed events carry an
// explicit time zone defaulting to UTC.
package calendar
