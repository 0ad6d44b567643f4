package tasks

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"github.com/mfell/workspace-agent/internal/google"
)

// DefaultTaskList is the alias the Tasks API accepts for the user's
// primary task list.
const DefaultTaskList = "@default"

// Client wraps the Google Tasks service
type Client struct {
	svc     *tasks.Service
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

// NewClientForAccount creates a new Tasks client with OAuth2 authentication for a specific account
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create Tasks service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// NewClient creates a new Tasks client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// ListTaskLists lists all task lists for the authenticated user
func (c *Client) ListTaskLists(maxResults int64) ([]TaskList, error) {
	call := c.svc.Tasklists.List()
	if maxResults > 0 {
		call = call.MaxResults(maxResults)
	}

	result, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list task lists: %w", err)
	}

	var taskLists []TaskList
	for _, tl := range result.Items {
		taskLists = append(taskLists, toTaskList(tl))
	}

	return taskLists, nil
}

// GetTaskList retrieves a specific task list by ID
func (c *Client) GetTaskList(taskListID string) (*TaskList, error) {
	tl, err := c.svc.Tasklists.Get(taskListID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get task list: %w", err)
	}

	result := toTaskList(tl)
	return &result, nil
}

// CreateTaskList creates a new task list
func (c *Client) CreateTaskList(title string) (*TaskList, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required")
	}

	created, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: title}).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create task list: %w", err)
	}

	result := toTaskList(created)
	return &result, nil
}

// DeleteTaskList deletes a task list along with all its tasks
func (c *Client) DeleteTaskList(taskListID string) error {
	if err := c.svc.Tasklists.Delete(taskListID).Do(); err != nil {
		return fmt.Errorf("failed to delete task list: %w", err)
	}
	return nil
}

// ListTasks lists tasks in a task list
func (c *Client) ListTasks(taskListID string, options ListOptions) ([]Task, error) {
	if taskListID == "" {
		taskListID = DefaultTaskList
	}

	call := c.svc.Tasks.List(taskListID).
		ShowCompleted(options.ShowCompleted).
		ShowDeleted(options.ShowDeleted)

	if options.MaxResults > 0 {
		call = call.MaxResults(options.MaxResults)
	}

	result, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	var taskList []Task
	for _, t := range result.Items {
		taskList = append(taskList, toTask(t))
	}

	return taskList, nil
}

// GetTask retrieves a specific task by ID
func (c *Client) GetTask(taskListID, taskID string) (*Task, error) {
	if taskListID == "" {
		taskListID = DefaultTaskList
	}

	t, err := c.svc.Tasks.Get(taskListID, taskID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	result := toTask(t)
	return &result, nil
}

// CreateTask creates a new task
func (c *Client) CreateTask(taskListID string, input TaskInput) (*Task, error) {
	if taskListID == "" {
		taskListID = DefaultTaskList
	}
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}

	t := &tasks.Task{
		Title:  input.Title,
		Notes:  input.Notes,
		Status: input.Status,
	}
	if t.Status == "" {
		t.Status = "needsAction"
	}
	if !input.Due.IsZero() {
		t.Due = input.Due.Format(time.RFC3339)
	}

	created, err := c.svc.Tasks.Insert(taskListID, t).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	result := toTask(created)
	return &result, nil
}

// UpdateTask updates an existing task. Zero-valued input fields are left
// untouched. Setting status to "completed" stamps the completion time.
func (c *Client) UpdateTask(taskListID, taskID string, input TaskInput) (*Task, error) {
	if taskListID == "" {
		taskListID = DefaultTaskList
	}

	existing, err := c.svc.Tasks.Get(taskListID, taskID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get existing task: %w", err)
	}

	if input.Title != "" {
		existing.Title = input.Title
	}
	if input.Notes != "" {
		existing.Notes = input.Notes
	}
	if input.Status != "" {
		existing.Status = input.Status
		if input.Status == "completed" && (existing.Completed == nil || *existing.Completed == "") {
			completedTime := time.Now().Format(time.RFC3339)
			existing.Completed = &completedTime
		}
	}
	if !input.Due.IsZero() {
		existing.Due = input.Due.Format(time.RFC3339)
	}

	updated, err := c.svc.Tasks.Update(taskListID, taskID, existing).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	result := toTask(updated)
	return &result, nil
}

// DeleteTask deletes a task
func (c *Client) DeleteTask(taskListID, taskID string) error {
	if taskListID == "" {
		taskListID = DefaultTaskList
	}

	if err := c.svc.Tasks.Delete(taskListID, taskID).Do(); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// MoveTask moves a task after the given previous sibling, or to the top of
// the list when previous is empty.
func (c *Client) MoveTask(taskListID, taskID, previous string) (*Task, error) {
	if taskListID == "" {
		taskListID = DefaultTaskList
	}

	call := c.svc.Tasks.Move(taskListID, taskID)
	if previous != "" {
		call = call.Previous(previous)
	}

	moved, err := call.Do()
	if err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}

	result := toTask(moved)
	return &result, nil
}

// ClearCompletedTasks removes all completed tasks from a task list
func (c *Client) ClearCompletedTasks(taskListID string) error {
	if taskListID == "" {
		taskListID = DefaultTaskList
	}

	if err := c.svc.Tasks.Clear(taskListID).Do(); err != nil {
		return fmt.Errorf("failed to clear completed tasks: %w", err)
	}
	return nil
}
