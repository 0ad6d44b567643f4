// Package tasks_tools exposes Google Tasks operations as model-callable
// tools: task list management and task creation, updates, ordering, and
// cleanup.
package tasks_tools
