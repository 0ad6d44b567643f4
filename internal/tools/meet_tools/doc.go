// Package meet_tools exposes Google Meet operations as model-callable
// tools. Meetings are calendar events carrying a Meet conference link;
// the tools cover scheduling, instant meetings, and attendee management.
package meet_tools
