// Package meet manages Google Meet meetings through the Calendar API.
//
// A meeting is a calendar event with conference data of type hangoutsMeet.
// The package supports creating meetings at a time or starting now, listing
// upcoming meetings, updating and deleting them, and managing attendees.
package meet
