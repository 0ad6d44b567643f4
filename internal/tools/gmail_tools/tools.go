package gmail_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mfell/workspace-agent/internal/agent"
	"github.com/mfell/workspace-agent/internal/gmail"
	"github.com/mfell/workspace-agent/internal/server"
	"github.com/mfell/workspace-agent/internal/tools/args"
	"github.com/mfell/workspace-agent/internal/tools/common"
)

const serviceName = "gmail"

func client(sc *server.Context, account string) (*gmail.Client, error) {
	if !gmail.HasTokenForAccount(account) {
		return nil, common.AuthRequiredError(account)
	}
	c, err := sc.GmailClientForAccount(account)
	if err != nil {
		return nil, server.ErrNoClient(serviceName, account, err)
	}
	return c, nil
}

// RegisterGmailTools registers the Gmail tools. Tools that modify the
// mailbox are skipped in read-only mode.
func RegisterGmailTools(reg *agent.Registry, sc *server.Context, readOnly bool) {
	register := func(desc agent.ToolDescriptor, operation string, handler agent.ToolFunc) {
		reg.MustRegister(desc, common.Instrumented(desc.Name, serviceName, operation, sc, handler))
	}

	register(
		agent.NewTool("gmail_list_messages", "List Gmail messages matching a search query").
			WithString("account", "Account name (default: 'default'). Used to manage multiple Google accounts.", false).
			WithString("query", "Gmail search query (e.g. 'in:inbox', 'from:user@example.com is:unread')", false).
			WithInteger("maxResults", "Maximum number of messages to return (default: 10)", false),
		"list",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleListMessages(sc, a)
		})

	register(
		agent.NewTool("gmail_get_message", "Read a Gmail message including headers and body text").
			WithString("account", "Account name (default: 'default')", false).
			WithString("messageId", "The ID of the message to read", true),
		"get",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleGetMessage(sc, a)
		})

	if readOnly {
		return
	}

	register(
		agent.NewTool("gmail_send_email", "Send an email through Gmail, optionally with a file attachment").
			WithString("account", "Account name (default: 'default')", false).
			WithString("to", "Recipient email address(es), comma-separated for multiple recipients", true).
			WithString("subject", "Email subject", true).
			WithString("body", "Email body content", true).
			WithString("cc", "CC email address(es), comma-separated", false).
			WithString("bcc", "BCC email address(es), comma-separated", false).
			WithBoolean("isHTML", "Whether the body is HTML (default: plain text)", false).
			WithString("attachmentPath", "Local path of a file to attach", false),
		"send",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleSendEmail(sc, a)
		})

	register(
		agent.NewTool("gmail_mark_as_read", "Mark one or more Gmail messages as read").
			WithString("account", "Account name (default: 'default')", false).
			WithString("messageIds", "Message ID (string) or array of message IDs", true),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleMarkMessages(sc, a, true)
		})

	register(
		agent.NewTool("gmail_mark_as_unread", "Mark one or more Gmail messages as unread").
			WithString("account", "Account name (default: 'default')", false).
			WithString("messageIds", "Message ID (string) or array of message IDs", true),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleMarkMessages(sc, a, false)
		})

	register(
		agent.NewTool("gmail_delete_message", "Permanently delete one or more Gmail messages").
			WithString("account", "Account name (default: 'default')", false).
			WithString("messageIds", "Message ID (string) or array of message IDs", true),
		"delete",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleDeleteMessages(sc, a)
		})
}

func handleListMessages(sc *server.Context, a map[string]any) (string, error) {
	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	query := args.OptionalString(a, "query", "")
	maxResults := args.Int64(a, "maxResults", 10)

	summaries, err := c.ListMessages(query, maxResults)
	if err != nil {
		return "", err
	}

	return common.JSONResult(map[string]any{
		"count":    len(summaries),
		"messages": summaries,
	})
}

func handleGetMessage(sc *server.Context, a map[string]any) (string, error) {
	messageID, err := args.String(a, "messageId")
	if err != nil {
		return "", err
	}

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	msg, err := c.GetMessage(messageID)
	if err != nil {
		return "", err
	}

	return common.JSONResult(gmail.ExtractContent(msg))
}

func handleSendEmail(sc *server.Context, a map[string]any) (string, error) {
	to, err := args.String(a, "to")
	if err != nil {
		return "", err
	}
	subject, err := args.String(a, "subject")
	if err != nil {
		return "", err
	}
	body, err := args.String(a, "body")
	if err != nil {
		return "", err
	}

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	msg := &gmail.EmailMessage{
		To:             splitAddresses(to),
		Cc:             splitAddresses(args.OptionalString(a, "cc", "")),
		Bcc:            splitAddresses(args.OptionalString(a, "bcc", "")),
		Subject:        subject,
		Body:           body,
		IsHTML:         args.Bool(a, "isHTML", false),
		AttachmentPath: args.OptionalString(a, "attachmentPath", ""),
	}

	messageID, err := c.SendEmail(msg)
	if err != nil {
		return "", err
	}

	return common.JSONResult(map[string]any{
		"message_id": messageID,
		"to":         msg.To,
		"subject":    subject,
	})
}

func handleMarkMessages(sc *server.Context, a map[string]any, read bool) (string, error) {
	ids, err := args.StringOrList(a, "messageIds")
	if err != nil {
		return "", err
	}

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	results := args.ProcessBatch(ids, func(id string) (string, error) {
		if read {
			if err := c.MarkAsRead(id); err != nil {
				return "", err
			}
			return fmt.Sprintf("message %s marked as read", id), nil
		}
		if err := c.MarkAsUnread(id); err != nil {
			return "", err
		}
		return fmt.Sprintf("message %s marked as unread", id), nil
	})

	return args.FormatResults(results), nil
}

func handleDeleteMessages(sc *server.Context, a map[string]any) (string, error) {
	ids, err := args.StringOrList(a, "messageIds")
	if err != nil {
		return "", err
	}

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	results := args.ProcessBatch(ids, func(id string) (string, error) {
		if err := c.DeleteMessage(id); err != nil {
			return "", err
		}
		return fmt.Sprintf("message %s deleted", id), nil
	})

	return args.FormatResults(results), nil
}

// splitAddresses splits a comma-separated recipient list, dropping blanks
func splitAddresses(addresses string) []string {
	if addresses == "" {
		return nil
	}

	parts := strings.Split(addresses, ",")
	result := make([]string, 0, len(parts))
	for _, addr := range parts {
		if trimmed := strings.TrimSpace(addr); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
