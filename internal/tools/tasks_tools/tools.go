package tasks_tools

import (
	"context"
	"fmt"

	"github.com/mfell/workspace-agent/internal/agent"
	"github.com/mfell/workspace-agent/internal/server"
	"github.com/mfell/workspace-agent/internal/tasks"
	"github.com/mfell/workspace-agent/internal/tools/args"
	"github.com/mfell/workspace-agent/internal/tools/common"
)

const serviceName = "tasks"

func client(sc *server.Context, account string) (*tasks.Client, error) {
	if !tasks.HasTokenForAccount(account) {
		return nil, common.AuthRequiredError(account)
	}
	c, err := sc.TasksClientForAccount(account)
	if err != nil {
		return nil, server.ErrNoClient(serviceName, account, err)
	}
	return c, nil
}

// RegisterTasksTools registers the Google Tasks tools. Task and list
// mutation tools are skipped in read-only mode.
func RegisterTasksTools(reg *agent.Registry, sc *server.Context, readOnly bool) {
	register := func(desc agent.ToolDescriptor, operation string, handler agent.ToolFunc) {
		reg.MustRegister(desc, common.Instrumented(desc.Name, serviceName, operation, sc, handler))
	}

	register(
		agent.NewTool("tasks_list_task_lists", "List the account's task lists").
			WithString("account", "Account name (default: 'default')", false).
			WithInteger("maxResults", "Maximum number of task lists to return (default: 20)", false),
		"list",
		func(ctx context.Context, a map[string]any) (string, error) {
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			lists, err := c.ListTaskLists(args.Int64(a, "maxResults", 20))
			if err != nil {
				return "", err
			}
			return common.JSONResult(map[string]any{"count": len(lists), "task_lists": lists})
		})

	register(
		agent.NewTool("tasks_list_tasks", "List tasks in a task list").
			WithString("account", "Account name (default: 'default')", false).
			WithString("taskListId", "Task list ID (default: the account's default list)", false).
			WithBoolean("showCompleted", "Include completed tasks (default: false)", false).
			WithInteger("maxResults", "Maximum number of tasks to return (default: 20)", false),
		"list",
		func(ctx context.Context, a map[string]any) (string, error) {
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			taskList, err := c.ListTasks(args.OptionalString(a, "taskListId", tasks.DefaultTaskList), tasks.ListOptions{
				ShowCompleted: args.Bool(a, "showCompleted", false),
				MaxResults:    args.Int64(a, "maxResults", 20),
			})
			if err != nil {
				return "", err
			}
			return common.JSONResult(map[string]any{"count": len(taskList), "tasks": taskList})
		})

	register(
		agent.NewTool("tasks_get_task", "Read a single task").
			WithString("account", "Account name (default: 'default')", false).
			WithString("taskListId", "Task list ID (default: the account's default list)", false).
			WithString("taskId", "The ID of the task", true),
		"get",
		func(ctx context.Context, a map[string]any) (string, error) {
			taskID, err := args.String(a, "taskId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			task, err := c.GetTask(args.OptionalString(a, "taskListId", tasks.DefaultTaskList), taskID)
			if err != nil {
				return "", err
			}
			return common.JSONResult(task)
		})

	if readOnly {
		return
	}

	register(
		agent.NewTool("tasks_create_task_list", "Create a new task list").
			WithString("account", "Account name (default: 'default')", false).
			WithString("title", "Title for the new task list", true),
		"create",
		func(ctx context.Context, a map[string]any) (string, error) {
			title, err := args.String(a, "title")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			list, err := c.CreateTaskList(title)
			if err != nil {
				return "", err
			}
			return common.JSONResult(list)
		})

	register(
		agent.NewTool("tasks_delete_task_list", "Delete a task list and all tasks in it").
			WithString("account", "Account name (default: 'default')", false).
			WithString("taskListId", "The ID of the task list to delete", true),
		"delete",
		func(ctx context.Context, a map[string]any) (string, error) {
			taskListID, err := args.String(a, "taskListId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			if err := c.DeleteTaskList(taskListID); err != nil {
				return "", err
			}
			return fmt.Sprintf("Task list %s deleted", taskListID), nil
		})

	register(
		agent.NewTool("tasks_create_task", "Create a task").
			WithString("account", "Account name (default: 'default')", false).
			WithString("taskListId", "Task list ID (default: the account's default list)", false).
			WithString("title", "Task title", true).
			WithString("notes", "Task notes", false).
			WithString("due", "Due date as RFC 3339 timestamp or YYYY-MM-DD", false),
		"create",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleCreateTask(sc, a)
		})

	register(
		agent.NewTool("tasks_update_task", "Update a task's fields. Omitted fields keep their current values.").
			WithString("account", "Account name (default: 'default')", false).
			WithString("taskListId", "Task list ID (default: the account's default list)", false).
			WithString("taskId", "The ID of the task to update", true).
			WithString("title", "New task title", false).
			WithString("notes", "New task notes", false).
			WithEnum("status", "New task status", false, "needsAction", "completed").
			WithString("due", "New due date as RFC 3339 timestamp or YYYY-MM-DD", false),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleUpdateTask(sc, a)
		})

	register(
		agent.NewTool("tasks_delete_task", "Delete a task").
			WithString("account", "Account name (default: 'default')", false).
			WithString("taskListId", "Task list ID (default: the account's default list)", false).
			WithString("taskId", "The ID of the task to delete", true),
		"delete",
		func(ctx context.Context, a map[string]any) (string, error) {
			taskID, err := args.String(a, "taskId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			if err := c.DeleteTask(args.OptionalString(a, "taskListId", tasks.DefaultTaskList), taskID); err != nil {
				return "", err
			}
			return fmt.Sprintf("Task %s deleted", taskID), nil
		})

	register(
		agent.NewTool("tasks_move_task", "Reorder a task within its list").
			WithString("account", "Account name (default: 'default')", false).
			WithString("taskListId", "Task list ID (default: the account's default list)", false).
			WithString("taskId", "The ID of the task to move", true).
			WithString("previousTaskId", "Task to place this one after; omit to move to the top", false),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			taskID, err := args.String(a, "taskId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			task, err := c.MoveTask(
				args.OptionalString(a, "taskListId", tasks.DefaultTaskList),
				taskID,
				args.OptionalString(a, "previousTaskId", ""))
			if err != nil {
				return "", err
			}
			return common.JSONResult(task)
		})

	register(
		agent.NewTool("tasks_clear_completed", "Remove all completed tasks from a task list").
			WithString("account", "Account name (default: 'default')", false).
			WithString("taskListId", "Task list ID (default: the account's default list)", false),
		"delete",
		func(ctx context.Context, a map[string]any) (string, error) {
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			taskListID := args.OptionalString(a, "taskListId", tasks.DefaultTaskList)
			if err := c.ClearCompletedTasks(taskListID); err != nil {
				return "", err
			}
			return fmt.Sprintf("Completed tasks cleared from list %s", taskListID), nil
		})
}

func handleCreateTask(sc *server.Context, a map[string]any) (string, error) {
	title, err := args.String(a, "title")
	if err != nil {
		return "", err
	}
	due, err := args.OptionalTime(a, "due")
	if err != nil {
		return "", err
	}

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	task, err := c.CreateTask(args.OptionalString(a, "taskListId", tasks.DefaultTaskList), tasks.TaskInput{
		Title: title,
		Notes: args.OptionalString(a, "notes", ""),
		Due:   due,
	})
	if err != nil {
		return "", err
	}
	return common.JSONResult(task)
}

func handleUpdateTask(sc *server.Context, a map[string]any) (string, error) {
	taskID, err := args.String(a, "taskId")
	if err != nil {
		return "", err
	}
	due, err := args.OptionalTime(a, "due")
	if err != nil {
		return "", err
	}

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	task, err := c.UpdateTask(args.OptionalString(a, "taskListId", tasks.DefaultTaskList), taskID, tasks.TaskInput{
		Title:  args.OptionalString(a, "title", ""),
		Notes:  args.OptionalString(a, "notes", ""),
		Status: args.OptionalString(a, "status", ""),
		Due:    due,
	})
	if err != nil {
		return "", err
	}
	return common.JSONResult(task)
}
