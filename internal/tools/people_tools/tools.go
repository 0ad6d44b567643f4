package people_tools

import (
	"context"

	"github.com/mfell/workspace-agent/internal/agent"
	"github.com/mfell/workspace-agent/internal/people"
	"github.com/mfell/workspace-agent/internal/server"
	"github.com/mfell/workspace-agent/internal/tools/args"
	"github.com/mfell/workspace-agent/internal/tools/common"
)

const serviceName = "people"

func client(sc *server.Context, account string) (*people.Client, error) {
	if !people.HasTokenForAccount(account) {
		return nil, common.AuthRequiredError(account)
	}
	c, err := sc.PeopleClientForAccount(account)
	if err != nil {
		return nil, server.ErrNoClient(serviceName, account, err)
	}
	return c, nil
}

// RegisterPeopleTools registers the contact tools. The local contact list is
// a plain text file managed by the server context; contact search goes
// through the Google People API.
func RegisterPeopleTools(reg *agent.Registry, sc *server.Context, readOnly bool) {
	register := func(desc agent.ToolDescriptor, service, operation string, handler agent.ToolFunc) {
		reg.MustRegister(desc, common.Instrumented(desc.Name, service, operation, sc, handler))
	}

	register(
		agent.NewTool("people_list_contacts", "List the contacts saved in the local contact list"),
		"", "",
		func(ctx context.Context, a map[string]any) (string, error) {
			persons, err := sc.ContactStore().List()
			if err != nil {
				return "", err
			}
			return common.JSONResult(map[string]any{"count": len(persons), "contacts": persons})
		})

	register(
		agent.NewTool("people_search_contacts", "Search the account's Google contacts and directory by name or email").
			WithString("account", "Account name (default: 'default')", false).
			WithString("query", "Name or email fragment to search for", true).
			WithInteger("maxResults", "Maximum number of contacts to return (default: 10)", false),
		serviceName, "search",
		func(ctx context.Context, a map[string]any) (string, error) {
			query, err := args.String(a, "query")
			if err != nil {
				return "", err
			}
			c, err := client(sc, args.Account(a))
			if err != nil {
				return "", err
			}
			contacts, err := c.SearchContacts(query, int(args.Int64(a, "maxResults", 10)))
			if err != nil {
				return "", err
			}
			return common.JSONResult(map[string]any{"count": len(contacts), "contacts": contacts})
		})

	if readOnly {
		return
	}

	register(
		agent.NewTool("people_add_contact", "Add a person to the local contact list").
			WithString("name", "The person's name", true).
			WithString("email", "The person's email address", true).
			WithString("phoneNumber", "The person's phone number; '-' is recorded when omitted", false),
		"", "",
		func(ctx context.Context, a map[string]any) (string, error) {
			name, err := args.String(a, "name")
			if err != nil {
				return "", err
			}
			email, err := args.String(a, "email")
			if err != nil {
				return "", err
			}
			person, err := sc.ContactStore().Add(name, email, args.OptionalString(a, "phoneNumber", ""))
			if err != nil {
				return "", err
			}
			return common.JSONResult(person)
		})
}
