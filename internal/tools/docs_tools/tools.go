package docs_tools

import (
	"context"
	"fmt"

	"github.com/mfell/workspace-agent/internal/agent"
	"github.com/mfell/workspace-agent/internal/docs"
	"github.com/mfell/workspace-agent/internal/server"
	"github.com/mfell/workspace-agent/internal/tools/args"
	"github.com/mfell/workspace-agent/internal/tools/common"
)

const serviceName = "docs"

func client(sc *server.Context, account string) (*docs.Client, error) {
	if !docs.HasTokenForAccount(account) {
		return nil, common.AuthRequiredError(account)
	}
	c, err := sc.DocsClientForAccount(account)
	if err != nil {
		return nil, server.ErrNoClient(serviceName, account, err)
	}
	return c, nil
}

// RegisterDocsTools registers the Google Docs tools. Document mutation tools
// are skipped in read-only mode.
func RegisterDocsTools(reg *agent.Registry, sc *server.Context, readOnly bool) {
	register := func(desc agent.ToolDescriptor, operation string, handler agent.ToolFunc) {
		reg.MustRegister(desc, common.Instrumented(desc.Name, serviceName, operation, sc, handler))
	}

	register(
		agent.NewTool("docs_list_documents", "List Google Docs documents, most recently modified first").
			WithString("account", "Account name (default: 'default')", false).
			WithInteger("maxResults", "Maximum number of documents to return (default: 10)", false),
		"list",
		func(ctx context.Context, a map[string]any) (string, error) {
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			documents, err := c.ListDocuments(args.Int64(a, "maxResults", 10))
			if err != nil {
				return "", err
			}
			return common.JSONResult(map[string]any{
				"count":     len(documents),
				"documents": documents,
			})
		})

	register(
		agent.NewTool("docs_get_document", "Read the plain text content of a Google Docs document").
			WithString("account", "Account name (default: 'default')", false).
			WithString("documentId", "The ID of the document to read", true),
		"get",
		func(ctx context.Context, a map[string]any) (string, error) {
			documentID, err := args.String(a, "documentId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			doc, err := c.GetDocument(documentID)
			if err != nil {
				return "", err
			}
			text, err := c.GetDocumentText(documentID)
			if err != nil {
				return "", err
			}
			return common.JSONResult(map[string]any{
				"document_id": doc.DocumentId,
				"title":       doc.Title,
				"content":     text,
			})
		})

	if readOnly {
		return
	}

	register(
		agent.NewTool("docs_create_document", "Create a new Google Docs document").
			WithString("account", "Account name (default: 'default')", false).
			WithString("title", "Title of the new document", true),
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
			doc, err := c.CreateDocument(title)
			if err != nil {
				return "", err
			}
			return common.JSONResult(map[string]any{
				"document_id": doc.DocumentId,
				"title":       doc.Title,
				"url":         fmt.Sprintf("https://docs.google.com/document/d/%s/edit", doc.DocumentId),
			})
		})

	register(
		agent.NewTool("docs_insert_text", "Insert text into a document at a given index").
			WithString("account", "Account name (default: 'default')", false).
			WithString("documentId", "The ID of the document", true).
			WithString("text", "Text to insert", true).
			WithInteger("index", "Character index to insert at (default: 1, the document start)", false),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			documentID, err := args.String(a, "documentId")
			if err != nil {
				return "", err
			}
			text, err := args.String(a, "text")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			if err := c.InsertText(documentID, text, args.Int64(a, "index", 1)); err != nil {
				return "", err
			}
			return fmt.Sprintf("Inserted %d characters into document %s", len(text), documentID), nil
		})

	register(
		agent.NewTool("docs_replace_text", "Replace every occurrence of a string in a document").
			WithString("account", "Account name (default: 'default')", false).
			WithString("documentId", "The ID of the document", true).
			WithString("searchText", "Text to search for (case sensitive)", true).
			WithString("replacement", "Replacement text", false),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			documentID, err := args.String(a, "documentId")
			if err != nil {
				return "", err
			}
			searchText, err := args.String(a, "searchText")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			replacement := args.OptionalString(a, "replacement", "")
			if err := c.ReplaceText(documentID, searchText, replacement); err != nil {
				return "", err
			}
			return fmt.Sprintf("Replaced %q with %q in document %s", searchText, replacement, documentID), nil
		})

	register(
		agent.NewTool("docs_delete_text", "Delete a character range from a document").
			WithString("account", "Account name (default: 'default')", false).
			WithString("documentId", "The ID of the document", true).
			WithInteger("startIndex", "Start of the range to delete (inclusive)", true).
			WithInteger("endIndex", "End of the range to delete (exclusive)", true),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			documentID, err := args.String(a, "documentId")
			if err != nil {
				return "", err
			}
			startIndex, err := args.RequiredInt64(a, "startIndex")
			if err != nil {
				return "", err
			}
			endIndex, err := args.RequiredInt64(a, "endIndex")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			if err := c.DeleteText(documentID, startIndex, endIndex); err != nil {
				return "", err
			}
			return fmt.Sprintf("Deleted range [%d, %d) from document %s", startIndex, endIndex, documentID), nil
		})

	register(
		agent.NewTool("docs_format_text", "Apply character formatting to a text range").
			WithString("account", "Account name (default: 'default')", false).
			WithString("documentId", "The ID of the document", true).
			WithInteger("startIndex", "Start of the range to format (inclusive)", true).
			WithInteger("endIndex", "End of the range to format (exclusive)", true).
			WithBoolean("bold", "Set or clear bold", false).
			WithBoolean("italic", "Set or clear italic", false).
			WithBoolean("underline", "Set or clear underline", false).
			WithNumber("fontSize", "Font size in points", false),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleFormatText(sc, a)
		})

	register(
		agent.NewTool("docs_share_document", "Share a document with another user").
			WithString("account", "Account name (default: 'default')", false).
			WithString("documentId", "The ID of the document to share", true).
			WithString("email", "Email address of the user to share with", true).
			WithEnum("role", "Access role to grant (default: reader)", false, "reader", "commenter", "writer"),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			documentID, err := args.String(a, "documentId")
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
			role := args.OptionalString(a, "role", "reader")
			if err := c.ShareDocument(documentID, email, role); err != nil {
				return "", err
			}
			return fmt.Sprintf("Document %s shared with %s as %s", documentID, email, role), nil
		})

	register(
		agent.NewTool("docs_delete_document", "Move a document to the trash").
			WithString("account", "Account name (default: 'default')", false).
			WithString("documentId", "The ID of the document to delete", true),
		"delete",
		func(ctx context.Context, a map[string]any) (string, error) {
			documentID, err := args.String(a, "documentId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			if err := c.DeleteDocument(documentID); err != nil {
				return "", err
			}
			return fmt.Sprintf("Document %s moved to trash", documentID), nil
		})
}

func handleFormatText(sc *server.Context, a map[string]any) (string, error) {
	documentID, err := args.String(a, "documentId")
	if err != nil {
		return "", err
	}
	startIndex, err := args.RequiredInt64(a, "startIndex")
	if err != nil {
		return "", err
	}
	endIndex, err := args.RequiredInt64(a, "endIndex")
	if err != nil {
		return "", err
	}

	// Absent flags must leave the corresponding style untouched, so presence
	// is checked before coercion.
	var format docs.TextFormat
	if v, ok := a["bold"].(bool); ok {
		format.Bold = &v
	}
	if v, ok := a["italic"].(bool); ok {
		format.Italic = &v
	}
	if v, ok := a["underline"].(bool); ok {
		format.Underline = &v
	}
	if v, ok := a["fontSize"].(float64); ok {
		format.FontSize = &v
	}

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}
	if err := c.FormatText(documentID, startIndex, endIndex, format); err != nil {
		return "", err
	}
	return fmt.Sprintf("Formatted range [%d, %d) in document %s", startIndex, endIndex, documentID), nil
}
