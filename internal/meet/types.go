package meet

import (
	"time"

	calendar "google.golang.org/api/calendar/v3"
)

// MeetingInput represents the input for creating or updating a meeting
type MeetingInput struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
	TimeZone    string
	Attendees   []string
}

// MeetingInfo represents a Google Meet meeting backed by a calendar event
type MeetingInfo struct {
	ID          string     `json:"id"`
	Summary     string     `json:"summary"`
	Description string     `json:"description,omitempty"`
	Start       time.Time  `json:"start"`
	End         time.Time  `json:"end"`
	MeetLink    string     `json:"meet_link,omitempty"`
	HTMLLink    string     `json:"html_link,omitempty"`
	Attendees   []Attendee `json:"attendees,omitempty"`
}

// Attendee represents a meeting participant
type Attendee struct {
	Email          string `json:"email"`
	ResponseStatus string `json:"response_status,omitempty"`
}

// toMeetingInfo converts a calendar event to a MeetingInfo
func toMeetingInfo(event *calendar.Event) MeetingInfo {
	info := MeetingInfo{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		HTMLLink:    event.HtmlLink,
	}

	if event.Start != nil && event.Start.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, event.Start.DateTime); err == nil {
			info.Start = t
		}
	}
	if event.End != nil && event.End.DateTime != "" {
		if t, err := time.Parse(time.RFC3339, event.End.DateTime); err == nil {
			info.End = t
		}
	}

	for _, att := range event.Attendees {
		info.Attendees = append(info.Attendees, Attendee{
			Email:          att.Email,
			ResponseStatus: att.ResponseStatus,
		})
	}

	info.MeetLink = meetLink(event)

	return info
}

// meetLink returns the video entry point of an event's conference data
func meetLink(event *calendar.Event) string {
	if event.ConferenceData == nil {
		return ""
	}
	for _, ep := range event.ConferenceData.EntryPoints {
		if ep.EntryPointType == "video" {
			return ep.Uri
		}
	}
	return ""
}
