// Package tasks provides a client for Google Tasks.
//
// It manages task lists and the tasks within them, including reordering,
// completion, and clearing completed tasks. Due dates use RFC 3339; note
// that the Tasks API only stores the date portion.
package tasks
