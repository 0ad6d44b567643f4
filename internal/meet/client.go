package meet

import (
	"context"
	"fmt"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/mfell/workspace-agent/internal/google"
)

// Client manages Google Meet meetings. Meet has no standalone scheduling
// API, so meetings are calendar events carrying conference data.
type Client struct {
	svc     *calendar.Service
	account string // The account this client is associated with
}

// Account returns the account name this client is associated with
func (c *Client) Account() string {
	return c.account
}

// HasTokenForAccount checks if a valid OAuth token exists for the specified account
func HasTokenForAccount(account string) bool {
	return google.HasTokenForAccount(account)
}

// NewClientForAccount creates a new Meet client with OAuth2 authentication for a specific account
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// NewClient creates a new Meet client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// CreateMeeting creates a meeting at the given time by inserting a calendar
// event with a Meet conference attached.
func (c *Client) CreateMeeting(calendarID string, input MeetingInput) (*MeetingInfo, error) {
	if calendarID == "" {
		calendarID = "primary"
	}
	if input.Summary == "" {
		return nil, fmt.Errorf("summary is required")
	}
	if input.Start.IsZero() || input.End.IsZero() {
		return nil, fmt.Errorf("start and end times are required")
	}

	tz := input.TimeZone
	if tz == "" {
		tz = "UTC"
	}

	event := &calendar.Event{
		Summary:     input.Summary,
		Description: input.Description,
		Start: &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: tz,
		},
		End: &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: tz,
		},
		ConferenceData: &calendar.ConferenceData{
			CreateRequest: &calendar.CreateConferenceRequest{
				RequestId:             fmt.Sprintf("meet-%d", time.Now().UnixNano()),
				ConferenceSolutionKey: &calendar.ConferenceSolutionKey{Type: "hangoutsMeet"},
			},
		},
	}

	for _, email := range input.Attendees {
		event.Attendees = append(event.Attendees, &calendar.EventAttendee{Email: email})
	}

	created, err := c.svc.Events.Insert(calendarID, event).ConferenceDataVersion(1).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	info := toMeetingInfo(created)
	return &info, nil
}

// CreateMeetingNow creates a meeting starting immediately with the given
// duration in minutes.
func (c *Client) CreateMeetingNow(calendarID string, input MeetingInput, durationMinutes int64) (*MeetingInfo, error) {
	if durationMinutes <= 0 {
		durationMinutes = 30
	}

	input.Start = time.Now()
	input.End = input.Start.Add(time.Duration(durationMinutes) * time.Minute)

	return c.CreateMeeting(calendarID, input)
}

// GetMeeting retrieves a meeting by its event ID
func (c *Client) GetMeeting(calendarID, eventID string) (*MeetingInfo, error) {
	if calendarID == "" {
		calendarID = "primary"
	}

	event, err := c.svc.Events.Get(calendarID, eventID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	info := toMeetingInfo(event)
	return &info, nil
}

// ListMeetings lists upcoming events that carry a Meet link
func (c *Client) ListMeetings(calendarID string, maxResults int64) ([]MeetingInfo, error) {
	if calendarID == "" {
		calendarID = "primary"
	}
	if maxResults <= 0 {
		maxResults = 10
	}

	// Fetch more events than requested since only those with conference
	// data count as meetings.
	events, err := c.svc.Events.List(calendarID).
		TimeMin(time.Now().Format(time.RFC3339)).
		MaxResults(maxResults * 4).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}

	var meetings []MeetingInfo
	for _, event := range events.Items {
		if meetLink(event) == "" {
			continue
		}
		meetings = append(meetings, toMeetingInfo(event))
		if int64(len(meetings)) >= maxResults {
			break
		}
	}

	return meetings, nil
}

// UpdateMeeting updates a meeting's summary, description, times, or
// attendees. Zero-valued fields are left untouched.
func (c *Client) UpdateMeeting(calendarID, eventID string, input MeetingInput) (*MeetingInfo, error) {
	if calendarID == "" {
		calendarID = "primary"
	}

	existing, err := c.svc.Events.Get(calendarID, eventID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	tz := input.TimeZone
	if tz == "" {
		tz = "UTC"
	}

	if input.Summary != "" {
		existing.Summary = input.Summary
	}
	if input.Description != "" {
		existing.Description = input.Description
	}
	if !input.Start.IsZero() {
		existing.Start = &calendar.EventDateTime{
			DateTime: input.Start.Format(time.RFC3339),
			TimeZone: tz,
		}
	}
	if !input.End.IsZero() {
		existing.End = &calendar.EventDateTime{
			DateTime: input.End.Format(time.RFC3339),
			TimeZone: tz,
		}
	}
	if len(input.Attendees) > 0 {
		existing.Attendees = nil
		for _, email := range input.Attendees {
			existing.Attendees = append(existing.Attendees, &calendar.EventAttendee{Email: email})
		}
	}

	updated, err := c.svc.Events.Update(calendarID, eventID, existing).ConferenceDataVersion(1).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}

	info := toMeetingInfo(updated)
	return &info, nil
}

// DeleteMeeting deletes a meeting by deleting its calendar event
func (c *Client) DeleteMeeting(calendarID, eventID string) error {
	if calendarID == "" {
		calendarID = "primary"
	}

	if err := c.svc.Events.Delete(calendarID, eventID).Do(); err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}
	return nil
}

// AddAttendee adds an attendee to an existing meeting.
// Adding an attendee that is already invited is a no-op.
func (c *Client) AddAttendee(calendarID, eventID, email string) (*MeetingInfo, error) {
	if calendarID == "" {
		calendarID = "primary"
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	existing, err := c.svc.Events.Get(calendarID, eventID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	for _, att := range existing.Attendees {
		if att.Email == email {
			info := toMeetingInfo(existing)
			return &info, nil
		}
	}

	existing.Attendees = append(existing.Attendees, &calendar.EventAttendee{Email: email})

	updated, err := c.svc.Events.Update(calendarID, eventID, existing).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to add attendee: %w", err)
	}

	info := toMeetingInfo(updated)
	return &info, nil
}

// RemoveAttendee removes an attendee from an existing meeting
func (c *Client) RemoveAttendee(calendarID, eventID, email string) (*MeetingInfo, error) {
	if calendarID == "" {
		calendarID = "primary"
	}
	if email == "" {
		return nil, fmt.Errorf("email is required")
	}

	existing, err := c.svc.Events.Get(calendarID, eventID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	var kept []*calendar.EventAttendee
	for _, att := range existing.Attendees {
		if att.Email != email {
			kept = append(kept, att)
		}
	}
	existing.Attendees = kept

	updated, err := c.svc.Events.Update(calendarID, eventID, existing).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to remove attendee: %w", err)
	}

	info := toMeetingInfo(updated)
	return &info, nil
}
