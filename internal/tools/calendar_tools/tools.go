package calendar_tools

import (
	"context"
	"fmt"

	"github.com/mfell/workspace-agent/internal/agent"
	"github.com/mfell/workspace-agent/internal/calendar"
	"github.com/mfell/workspace-agent/internal/server"
	"github.com/mfell/workspace-agent/internal/tools/args"
	"github.com/mfell/workspace-agent/internal/tools/common"
)

const serviceName = "calendar"

func client(sc *server.Context, account string) (*calendar.Client, error) {
	if !calendar.HasTokenForAccount(account) {
		return nil, common.AuthRequiredError(account)
	}
	c, err := sc.CalendarClientForAccount(account)
	if err != nil {
		return nil, server.ErrNoClient(serviceName, account, err)
	}
	return c, nil
}

// RegisterCalendarTools registers the Google Calendar tools. Event mutation
// tools are skipped in read-only mode.
func RegisterCalendarTools(reg *agent.Registry, sc *server.Context, readOnly bool) {
	register := func(desc agent.ToolDescriptor, operation string, handler agent.ToolFunc) {
		reg.MustRegister(desc, common.Instrumented(desc.Name, serviceName, operation, sc, handler))
	}

	register(
		agent.NewTool("calendar_list_calendars", "List the calendars visible to the account").
			WithString("account", "Account name (default: 'default')", false),
		"list",
		func(ctx context.Context, a map[string]any) (string, error) {
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			calendars, err := c.ListCalendars()
			if err != nil {
				return "", err
			}
			return common.JSONResult(calendars)
		})

	register(
		agent.NewTool("calendar_list_events", "List calendar events, either upcoming or within a time window").
			WithString("account", "Account name (default: 'default')", false).
			WithString("calendarId", "Calendar ID (default: 'primary')", false).
			WithString("timeMin", "Window start as RFC 3339 timestamp. Defaults to now.", false).
			WithString("timeMax", "Window end as RFC 3339 timestamp", false).
			WithString("query", "Free-text search over event fields", false).
			WithInteger("maxResults", "Maximum number of events to return (default: 10)", false),
		"list",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleListEvents(sc, a)
		})

	register(
		agent.NewTool("calendar_get_event", "Read a single calendar event").
			WithString("account", "Account name (default: 'default')", false).
			WithString("calendarId", "Calendar ID (default: 'primary')", false).
			WithString("eventId", "The ID of the event to read", true),
		"get",
		func(ctx context.Context, a map[string]any) (string, error) {
			eventID, err := args.String(a, "eventId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			event, err := c.GetEvent(args.OptionalString(a, "calendarId", "primary"), eventID)
			if err != nil {
				return "", err
			}
			return common.JSONResult(event)
		})

	if readOnly {
		return
	}

	register(
		agent.NewTool("calendar_create_event", "Create a calendar event").
			WithString("account", "Account name (default: 'default')", false).
			WithString("calendarId", "Calendar ID (default: 'primary')", false).
			WithString("summary", "Event title", true).
			WithString("description", "Event description", false).
			WithString("location", "Event location", false).
			WithString("start", "Start time as RFC 3339 timestamp, or YYYY-MM-DD for all-day events", true).
			WithString("end", "End time as RFC 3339 timestamp, or YYYY-MM-DD for all-day events", true).
			WithString("timeZone", "IANA time zone for the event (default: UTC)", false).
			WithBoolean("allDay", "Whether this is an all-day event", false).
			WithStringArray("attendees", "Attendee email addresses", false).
			WithStringArray("recurrence", "Recurrence rules in RFC 5545 format (e.g. 'RRULE:FREQ=WEEKLY')", false),
		"create",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleCreateEvent(sc, a)
		})

	register(
		agent.NewTool("calendar_update_event", "Update fields of an existing calendar event. Omitted fields keep their current values.").
			WithString("account", "Account name (default: 'default')", false).
			WithString("calendarId", "Calendar ID (default: 'primary')", false).
			WithString("eventId", "The ID of the event to update", true).
			WithString("summary", "New event title", false).
			WithString("description", "New event description", false).
			WithString("location", "New event location", false).
			WithString("start", "New start time as RFC 3339 timestamp", false).
			WithString("end", "New end time as RFC 3339 timestamp", false).
			WithString("timeZone", "IANA time zone for the event", false).
			WithStringArray("attendees", "Replacement attendee email addresses", false),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleUpdateEvent(sc, a)
		})

	register(
		agent.NewTool("calendar_delete_event", "Delete a calendar event").
			WithString("account", "Account name (default: 'default')", false).
			WithString("calendarId", "Calendar ID (default: 'primary')", false).
			WithString("eventId", "The ID of the event to delete", true),
		"delete",
		func(ctx context.Context, a map[string]any) (string, error) {
			eventID, err := args.String(a, "eventId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			calendarID := args.OptionalString(a, "calendarId", "primary")
			if err := c.DeleteEvent(calendarID, eventID); err != nil {
				return "", err
			}
			return fmt.Sprintf("Event %s deleted from calendar %s", eventID, calendarID), nil
		})
}

func handleListEvents(sc *server.Context, a map[string]any) (string, error) {
	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	calendarID := args.OptionalString(a, "calendarId", "primary")
	maxResults := args.Int64(a, "maxResults", 10)

	timeMin, err := args.OptionalTime(a, "timeMin")
	if err != nil {
		return "", err
	}
	timeMax, err := args.OptionalTime(a, "timeMax")
	if err != nil {
		return "", err
	}
	query := args.OptionalString(a, "query", "")

	var events []calendar.EventSummary
	if timeMin.IsZero() && timeMax.IsZero() && query == "" {
		events, err = c.ListUpcomingEvents(calendarID, maxResults)
	} else {
		events, err = c.ListEvents(calendarID, timeMin, timeMax, query)
	}
	if err != nil {
		return "", err
	}

	return common.JSONResult(map[string]any{
		"count":  len(events),
		"events": events,
	})
}

func handleCreateEvent(sc *server.Context, a map[string]any) (string, error) {
	summary, err := args.String(a, "summary")
	if err != nil {
		return "", err
	}
	start, err := args.Time(a, "start")
	if err != nil {
		return "", err
	}
	end, err := args.Time(a, "end")
	if err != nil {
		return "", err
	}
	attendees, err := args.StringList(a, "attendees")
	if err != nil {
		return "", err
	}
	recurrence, err := args.StringList(a, "recurrence")
	if err != nil {
		return "", err
	}

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	input := calendar.EventInput{
		Summary:     summary,
		Description: args.OptionalString(a, "description", ""),
		Location:    args.OptionalString(a, "location", ""),
		Start:       start,
		End:         end,
		TimeZone:    args.OptionalString(a, "timeZone", ""),
		AllDay:      args.Bool(a, "allDay", false),
		Attendees:   attendees,
		Recurrence:  recurrence,
	}

	event, err := c.CreateEvent(args.OptionalString(a, "calendarId", "primary"), input)
	if err != nil {
		return "", err
	}
	return common.JSONResult(event)
}

func handleUpdateEvent(sc *server.Context, a map[string]any) (string, error) {
	eventID, err := args.String(a, "eventId")
	if err != nil {
		return "", err
	}
	start, err := args.OptionalTime(a, "start")
	if err != nil {
		return "", err
	}
	end, err := args.OptionalTime(a, "end")
	if err != nil {
		return "", err
	}
	attendees, err := args.StringList(a, "attendees")
	if err != nil {
		return "", err
	}

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	input := calendar.EventInput{
		Summary:     args.OptionalString(a, "summary", ""),
		Description: args.OptionalString(a, "description", ""),
		Location:    args.OptionalString(a, "location", ""),
		Start:       start,
		End:         end,
		TimeZone:    args.OptionalString(a, "timeZone", ""),
		Attendees:   attendees,
	}

	event, err := c.UpdateEvent(args.OptionalString(a, "calendarId", "primary"), eventID, input)
	if err != nil {
		return "", err
	}
	return common.JSONResult(event)
}
