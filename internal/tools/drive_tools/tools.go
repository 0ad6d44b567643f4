package drive_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mfell/workspace-agent/internal/agent"
	"github.com/mfell/workspace-agent/internal/drive"
	"github.com/mfell/workspace-agent/internal/server"
	"github.com/mfell/workspace-agent/internal/tools/args"
	"github.com/mfell/workspace-agent/internal/tools/common"
)

const serviceName = "drive"

func client(sc *server.Context, account string) (*drive.Client, error) {
	if !drive.HasTokenForAccount(account) {
		return nil, common.AuthRequiredError(account)
	}
	c, err := sc.DriveClientForAccount(account)
	if err != nil {
		return nil, server.ErrNoClient(serviceName, account, err)
	}
	return c, nil
}

// RegisterDriveTools registers the Google Drive tools. File mutation and
// sharing tools are skipped in read-only mode.
func RegisterDriveTools(reg *agent.Registry, sc *server.Context, readOnly bool) {
	register := func(desc agent.ToolDescriptor, operation string, handler agent.ToolFunc) {
		reg.MustRegister(desc, common.Instrumented(desc.Name, serviceName, operation, sc, handler))
	}

	register(
		agent.NewTool("drive_list_files", "List Drive files, optionally filtered by a Drive query").
			WithString("account", "Account name (default: 'default')", false).
			WithString("query", "Drive query (e.g. \"mimeType='application/pdf'\", \"'folderId' in parents\")", false).
			WithInteger("maxResults", "Maximum number of files to return (default: 10)", false),
		"list",
		func(ctx context.Context, a map[string]any) (string, error) {
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			files, err := c.ListFiles(ctx, args.OptionalString(a, "query", ""), args.Int64(a, "maxResults", 10))
			if err != nil {
				return "", err
			}
			return common.JSONResult(map[string]any{"count": len(files), "files": files})
		})

	register(
		agent.NewTool("drive_search_files", "Search Drive files by name").
			WithString("account", "Account name (default: 'default')", false).
			WithString("term", "Text to match against file names", true).
			WithInteger("maxResults", "Maximum number of files to return (default: 10)", false),
		"search",
		func(ctx context.Context, a map[string]any) (string, error) {
			term, err := args.String(a, "term")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			files, err := c.SearchFiles(ctx, term, args.Int64(a, "maxResults", 10))
			if err != nil {
				return "", err
			}
			return common.JSONResult(map[string]any{"count": len(files), "files": files})
		})

	register(
		agent.NewTool("drive_list_folders", "List Drive folders").
			WithString("account", "Account name (default: 'default')", false).
			WithInteger("maxResults", "Maximum number of folders to return (default: 10)", false),
		"list",
		func(ctx context.Context, a map[string]any) (string, error) {
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			folders, err := c.ListFolders(ctx, args.Int64(a, "maxResults", 10))
			if err != nil {
				return "", err
			}
			return common.JSONResult(map[string]any{"count": len(folders), "folders": folders})
		})

	register(
		agent.NewTool("drive_get_file", "Read a Drive file's metadata").
			WithString("account", "Account name (default: 'default')", false).
			WithString("fileId", "The ID of the file", true),
		"get",
		func(ctx context.Context, a map[string]any) (string, error) {
			fileID, err := args.String(a, "fileId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			file, err := c.GetFile(ctx, fileID)
			if err != nil {
				return "", err
			}
			return common.JSONResult(file)
		})

	register(
		agent.NewTool("drive_download_file", "Download a Drive file's content as text. Google Workspace files are exported (Docs as plain text, Sheets as CSV).").
			WithString("account", "Account name (default: 'default')", false).
			WithString("fileId", "The ID of the file to download", true),
		"get",
		func(ctx context.Context, a map[string]any) (string, error) {
			fileID, err := args.String(a, "fileId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			return c.DownloadContent(ctx, fileID)
		})

	register(
		agent.NewTool("drive_list_permissions", "List who has access to a Drive file").
			WithString("account", "Account name (default: 'default')", false).
			WithString("fileId", "The ID of the file", true),
		"list",
		func(ctx context.Context, a map[string]any) (string, error) {
			fileID, err := args.String(a, "fileId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			permissions, err := c.ListPermissions(ctx, fileID)
			if err != nil {
				return "", err
			}
			return common.JSONResult(permissions)
		})

	if readOnly {
		return
	}

	register(
		agent.NewTool("drive_upload_file", "Create a Drive file from text content").
			WithString("account", "Account name (default: 'default')", false).
			WithString("name", "Name for the new file", true).
			WithString("content", "File content", true).
			WithString("mimeType", "MIME type of the content (default: text/plain)", false).
			WithString("parentFolderId", "Folder to create the file in (default: Drive root)", false),
		"create",
		func(ctx context.Context, a map[string]any) (string, error) {
			name, err := args.String(a, "name")
			if err != nil {
				return "", err
			}
			content, err := args.String(a, "content")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			file, err := c.UploadContent(ctx, name, strings.NewReader(content),
				args.OptionalString(a, "mimeType", ""),
				args.OptionalString(a, "parentFolderId", ""))
			if err != nil {
				return "", err
			}
			return common.JSONResult(file)
		})

	register(
		agent.NewTool("drive_create_folder", "Create a Drive folder").
			WithString("account", "Account name (default: 'default')", false).
			WithString("name", "Name for the new folder", true).
			WithString("parentFolderId", "Parent folder (default: Drive root)", false),
		"create",
		func(ctx context.Context, a map[string]any) (string, error) {
			name, err := args.String(a, "name")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			folder, err := c.CreateFolder(ctx, name, args.OptionalString(a, "parentFolderId", ""))
			if err != nil {
				return "", err
			}
			return common.JSONResult(folder)
		})

	register(
		agent.NewTool("drive_update_file", "Rename, describe, or move a Drive file. Omitted fields keep their current values.").
			WithString("account", "Account name (default: 'default')", false).
			WithString("fileId", "The ID of the file to update", true).
			WithString("name", "New file name", false).
			WithString("description", "New file description", false).
			WithStringArray("addParents", "Folder IDs to add the file to", false).
			WithStringArray("removeParents", "Folder IDs to remove the file from", false),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleUpdateFile(ctx, sc, a)
		})

	register(
		agent.NewTool("drive_copy_file", "Copy a Drive file").
			WithString("account", "Account name (default: 'default')", false).
			WithString("fileId", "The ID of the file to copy", true).
			WithString("newName", "Name for the copy (default: 'Copy of <name>')", false).
			WithString("parentFolderId", "Folder to place the copy in", false),
		"create",
		func(ctx context.Context, a map[string]any) (string, error) {
			fileID, err := args.String(a, "fileId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			file, err := c.CopyFile(ctx, fileID,
				args.OptionalString(a, "newName", ""),
				args.OptionalString(a, "parentFolderId", ""))
			if err != nil {
				return "", err
			}
			return common.JSONResult(file)
		})

	register(
		agent.NewTool("drive_delete_file", "Move a Drive file to the trash").
			WithString("account", "Account name (default: 'default')", false).
			WithString("fileId", "The ID of the file to delete", true),
		"delete",
		func(ctx context.Context, a map[string]any) (string, error) {
			fileID, err := args.String(a, "fileId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			if err := c.DeleteFile(ctx, fileID); err != nil {
				return "", err
			}
			return fmt.Sprintf("File %s moved to trash", fileID), nil
		})

	register(
		agent.NewTool("drive_share_file", "Share a Drive file with a user, group, or domain").
			WithString("account", "Account name (default: 'default')", false).
			WithString("fileId", "The ID of the file to share", true).
			WithEnum("type", "Grantee type (default: user)", false, "user", "group", "domain", "anyone").
			WithEnum("role", "Access role to grant (default: reader)", false, "reader", "commenter", "writer").
			WithString("email", "Email address, required when type is user or group", false).
			WithString("domain", "Domain name, required when type is domain", false).
			WithBoolean("sendNotification", "Email the grantee about the share (default: false)", false),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			return handleShareFile(ctx, sc, a)
		})

	register(
		agent.NewTool("drive_share_file_public", "Make a Drive file readable by anyone with the link").
			WithString("account", "Account name (default: 'default')", false).
			WithString("fileId", "The ID of the file to share", true).
			WithEnum("role", "Access role to grant (default: reader)", false, "reader", "commenter", "writer"),
		"update",
		func(ctx context.Context, a map[string]any) (string, error) {
			fileID, err := args.String(a, "fileId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			permission, err := c.ShareFilePublic(ctx, fileID, args.OptionalString(a, "role", ""))
			if err != nil {
				return "", err
			}
			return common.JSONResult(permission)
		})

	register(
		agent.NewTool("drive_remove_permission", "Revoke a permission on a Drive file").
			WithString("account", "Account name (default: 'default')", false).
			WithString("fileId", "The ID of the file", true).
			WithString("permissionId", "The ID of the permission to remove, from drive_list_permissions", true),
		"delete",
		func(ctx context.Context, a map[string]any) (string, error) {
			fileID, err := args.String(a, "fileId")
			if err != nil {
				return "", err
			}
			permissionID, err := args.String(a, "permissionId")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			if err := c.RemovePermission(ctx, fileID, permissionID); err != nil {
				return "", err
			}
			return fmt.Sprintf("Permission %s removed from file %s", permissionID, fileID), nil
		})
}

func handleUpdateFile(ctx context.Context, sc *server.Context, a map[string]any) (string, error) {
	fileID, err := args.String(a, "fileId")
	if err != nil {
		return "", err
	}
	addParents, err := args.StringList(a, "addParents")
	if err != nil {
		return "", err
	}
	removeParents, err := args.StringList(a, "removeParents")
	if err != nil {
		return "", err
	}

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	file, err := c.UpdateFile(ctx, fileID, drive.UpdateOptions{
		Name:          args.OptionalString(a, "name", ""),
		Description:   args.OptionalString(a, "description", ""),
		AddParents:    addParents,
		RemoveParents: removeParents,
	})
	if err != nil {
		return "", err
	}
	return common.JSONResult(file)
}

func handleShareFile(ctx context.Context, sc *server.Context, a map[string]any) (string, error) {
	fileID, err := args.String(a, "fileId")
	if err != nil {
		return "", err
	}

	options := drive.ShareOptions{
		Type:                  args.OptionalString(a, "type", "user"),
		Role:                  args.OptionalString(a, "role", "reader"),
		EmailAddress:          args.OptionalString(a, "email", ""),
		Domain:                args.OptionalString(a, "domain", ""),
		SendNotificationEmail: args.Bool(a, "sendNotification", false),
	}

	switch options.Type {
	case "user", "group":
		if options.EmailAddress == "" {
			return "", fmt.Errorf("email is required when type is %q", options.Type)
		}
	case "domain":
		if options.Domain == "" {
			return "", fmt.Errorf("domain is required when type is \"domain\"")
		}
	}

	c, err := client(sc, args.Account(a))
	if err != nil {
		return "", err
	}

	permission, err := c.ShareFile(ctx, fileID, options)
	if err != nil {
		return "", err
	}
	return common.JSONResult(permission)
}
