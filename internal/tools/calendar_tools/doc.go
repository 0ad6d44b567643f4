// Package calendar_tools exposes Google Calendar operations as
// model-callable tools: listing calendars, querying events, and creating,
// updating, and deleting events.
package calendar_tools
