package meet_tools

import (
	"context"
	"fmt"

	"github.com/mfell/workspace-agent/internal/agent"
	"github.com/mfell/workspace-agent/internal/meet"
	"github.com/mfell/workspace-agent/internal/server"
	"github.com/mfell/workspace-agent/internal/tools/args"
	"github.com/mfell/workspace-agent/internal/tools/common"
)

const serviceName = "meet"

func client(sc *server.Context, account string) (*meet.Client, error) {
	if !meet.HasTokenForAccount(account) {
		return nil, common.AuthRequiredError(account)
	}
	c, err := sc.MeetClientForAccount(account)
	if err != nil {
		return nil, server.ErrNoClient(serviceName, account, err)
	}
	return c, nil
}

// RegisterMeetTools registers the Google Meet tools. Meetings are calendar
// events carrying a Meet conference; mutation tools are skipped in read-only
// mode.
func RegisterMeetTools(reg *agent.Registry, sc *server.Context, readOnly bool) {
	register := func(desc agent.ToolDescriptor, operation string, handler agent.ToolFunc) {
		reg.MustRegister(desc, common.Instrumented(desc.Name, serviceName, operation, sc, handler))
	}

	register(
		agent.NewTool("meet_list_meetings", "List upcoming meetings that have a Google Meet link").
			WithString("account", "Account name (default: 'default')", false).
			WithString("calendarId", "Calendar ID (default: 'primary')", false).
			WithInteger("maxResults", "Maximum number of meetings to return (default: 10)", false),
		"list",
		func(ctx context.Context, a map[string]any) (string, error) {
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			meetings, err := c.ListMeetings(args.OptionalString(a, "calendarId", "primary"), args.Int64(a, "maxResults", 10))
			if err != nil {
				return "", err
			}
			return common.JSONResult(map[string]any{"count": len(meetings), "meetings": meetings})
		})

	register(
		agent.NewTool("meet_get_meeting", "Read a meeting including its Google Meet link").
			WithString("account", "Account name (default: 'default')", false).
			WithString("calendarId", "Calendar ID (default: 'primary')", false).
			WithString("eventId", "The ID of the meeting event", true),
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
			meeting, err := c.GetMeeting(args.OptionalString(a, "calendarId", "primary"), eventID)
			if err != nil {
				return "", err
			}
			return common.JSONResult(meeting)
		})

	if readOnly {
		return
	}

	register(
		agent.NewTool("meet_create_meeting", "Schedule a meeting with a Google Meet link").
			WithString("account", "Account name (default: 'default')", false).
			WithString("calendarId", "Calendar ID (default: 'primary')", false).
			WithString("summary", "Meeting title", true).
			WithString("description", "Meeting description", false).
			WithString("start", "Start time as RFC 3339 timestamp", true).
			WithString("end", "End time as RFC 3339 timestamp", true).
			WithString("timeZone", "IANA time zone for the meeting (default: UTC)", false).
			WithStringArray("attendees", "Attendee email addresses", false),
		"create",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleCreateMeeting(sc, a)
		})

	register(
		agent.NewTool("meet_create_meeting_now", "Start a meeting with a Google Meet link right now").
			WithString("account", "Account name (default: 'default')", false).
			WithString("calendarId", "Calendar ID (default: 'primary')", false).
			WithString("summary", "Meeting title", true).
			WithInteger("durationMinutes", "Meeting length in minutes (default: 30)", false).
			WithStringArray("attendees", "Attendee email addresses", false),
		"create",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleCreateInstantMeeting(sc, a)
		})

	register(
		agent.NewTool("meet_update_meeting", "Update a meeting's details. Omitted fields keep their current values.").
			WithString("account", "Account name (default: 'default')", false).
			WithString("calendarId", "Calendar ID (default: 'primary')", false).
			WithString("eventId", "The ID of the meeting event to update", true).
			WithString("summary", "New meeting title", false).
			WithString("description", "New meeting description", false).
			WithString("start", "New start time as RFC 3339 timestamp", false).
			WithString("end", "New end time as RFC 3339 timestamp", false).
			WithString("timeZone", "IANA time zone", false).
			WithStringArray("attendees", "Replacement attendee email addresses", false),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleUpdateMeeting(sc, a)
		})

	register(
		agent.NewTool("meet_delete_meeting", "Cancel a meeting").
			WithString("account", "Account name (default: 'default')", false).
			WithString("calendarId", "Calendar ID (default: 'primary')", false).
			WithString("eventId", "The ID of the meeting event to cancel", true),
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
			if err := c.DeleteMeeting(args.OptionalString(a, "calendarId", "primary"), eventID); err != nil {
				return "", err
			}
			return fmt.Sprintf("Meeting %s cancelled", eventID), nil
		})

	register(
		agent.NewTool("meet_add_attendee", "Invite an attendee to a meeting").
			WithString("account", "Account name (default: 'default')", false).
			WithString("calendarId", "Calendar ID (default: 'primary')", false).
			WithString("eventId", "The ID of the meeting event", true).
			WithString("email", "Email address of the attendee to add", true),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleAttendee(sc, a, true)
		})

	register(
		agent.NewTool("meet_remove_attendee", "Remove an attendee from a meeting").
			WithString("account", "Account name (default: 'default')", false).
			WithString("calendarId", "Calendar ID (default: 'primary')", false).
			WithString("eventId", "The ID of the meeting event", true).
			WithString("email", "Email address of the attendee to remove", true),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleAttendee(sc, a, false)
		})
}

func handleCreateMeeting(sc *server.Context, a map[string]any) (string, error) {
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

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	meeting, err := c.CreateMeeting(args.OptionalString(a, "calendarId", "primary"), meet.MeetingInput{
		Summary:     summary,
		Description: args.OptionalString(a, "description", ""),
		Start:       start,
		End:         end,
		TimeZone:    args.OptionalString(a, "timeZone", ""),
		Attendees:   attendees,
	})
	if err != nil {
		return "", err
	}
	return common.JSONResult(meeting)
}

func handleCreateInstantMeeting(sc *server.Context, a map[string]any) (string, error) {
	summary, err := args.String(a, "summary")
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

	meeting, err := c.CreateMeetingNow(
		args.OptionalString(a, "calendarId", "primary"),
		meet.MeetingInput{Summary: summary, Attendees: attendees},
		args.Int64(a, "durationMinutes", 0),
	)
	if err != nil {
		return "", err
	}
	return common.JSONResult(meeting)
}

func handleUpdateMeeting(sc *server.Context, a map[string]any) (string, error) {
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

	meeting, err := c.UpdateMeeting(args.OptionalString(a, "calendarId", "primary"), eventID, meet.MeetingInput{
		Summary:     args.OptionalString(a, "summary", ""),
		Description: args.OptionalString(a, "description", ""),
		Start:       start,
		End:         end,
		TimeZone:    args.OptionalString(a, "timeZone", ""),
		Attendees:   attendees,
	})
	if err != nil {
		return "", err
	}
	return common.JSONResult(meeting)
}

func handleAttendee(sc *server.Context, a map[string]any, add bool) (string, error) {
	eventID, err := args.String(a, "eventId")
	if err != nil {
		return "", err
	}
	email, err := args.String(a, "email")
	if err != nil {
		return "", err
	}

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	calendarID := args.OptionalString(a, "calendarId", "primary")
	var meeting *meet.MeetingInfo
	if add {
		meeting, err = c.AddAttendee(calendarID, eventID, email)
	} else {
		meeting, err = c.RemoveAttendee(calendarID, eventID, email)
	}
	if err != nil {
		return "", err
	}
	return common.JSONResult(meeting)
}
