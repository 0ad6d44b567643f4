package tasks

import (
	"testing"
	"time"

	tasks "google.golang.org/api/tasks/v1"
)

func TestToTask(t *testing.T) {
	completed := "2025-10-02T15:04:05Z"
	in := &tasks.Task{
		Id:        "t1",
		Title:     "Write report",
		Notes:     "due friday",
		Status:    "completed",
		Due:       "2025-10-03T00:00:00Z",
		Completed: &completed,
		Position:  "00000000001",
	}

	got := toTask(in)
	if got.ID != "t1" || got.Title != "Write report" || got.Status != "completed" {
		t.Errorf("unexpected task: %+v", got)
	}
	if got.Due != time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC) {
		t.Errorf("due = %v", got.Due)
	}
	if got.Completed.IsZero() {
		t.Error("completed time not parsed")
	}
}

func TestToTaskNil(t *testing.T) {
	got := toTask(nil)
	if got.ID != "" {
		t.Errorf("expected zero task, got %+v", got)
	}
}

func TestToTaskBadDue(t *testing.T) {
	got := toTask(&tasks.Task{Id: "t2", Due: "tomorrow"})
	if !got.Due.IsZero() {
		t.Errorf("due = %v, want zero", got.Due)
	}
}

func TestToTaskList(t *testing.T) {
	got := toTaskList(&tasks.TaskList{Id: "l1", Title: "Inbox", Updated: "2025-10-01T00:00:00Z"})
	if got.ID != "l1" || got.Title != "Inbox" || got.Updated.IsZero() {
		t.Errorf("unexpected task list: %+v", got)
	}
}
