package people

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	people "google.golang.org/api/people/v1"

	"github.com/mfell/workspace-agent/internal/google"
)

const contactReadMask = "names,emailAddresses,phoneNumbers"

// Contact represents a simplified contact entry from the People API
type Contact struct {
	ResourceName string `json:"resource_name,omitempty"`
	DisplayName  string `json:"display_name"`
	EmailAddress string `json:"email_address,omitempty"`
	PhoneNumber  string `json:"phone_number,omitempty"`
}

// Client wraps the Google People service
type Client struct {
	svc     *people.Service
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

// NewClientForAccount creates a new People client with OAuth2 authentication for a specific account
func NewClientForAccount(ctx context.Context, account string) (*Client, error) {
	client, err := google.GetHTTPClientForAccount(ctx, account)
	if err != nil {
		return nil, fmt.Errorf("no valid Google OAuth token found for account %s: %w", account, err)
	}

	svc, err := people.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("failed to create People service: %w", err)
	}

	return &Client{
		svc:     svc,
		account: account,
	}, nil
}

// NewClient creates a new People client for the default account
func NewClient(ctx context.Context) (*Client, error) {
	return NewClientForAccount(ctx, "default")
}

// SearchContacts searches for contacts across personal contacts, other
// contacts, and the Workspace directory. Results are deduplicated by email
// address and limited to pageSize entries. A failing source is skipped so
// consumer accounts without a directory still get results.
func (c *Client) SearchContacts(query string, pageSize int) ([]*Contact, error) {
	if pageSize <= 0 {
		pageSize = 10
	}

	var contacts []*Contact
	seen := make(map[string]bool)
	queryLower := strings.ToLower(query)

	add := func(contact *Contact) {
		if contact == nil || contact.EmailAddress == "" || seen[contact.EmailAddress] {
			return
		}
		seen[contact.EmailAddress] = true
		contacts = append(contacts, contact)
	}

	// Personal contacts support server-side search
	resp, err := c.svc.People.SearchContacts().
		Query(query).
		ReadMask(contactReadMask).
		PageSize(int64(pageSize)).
		Do()
	if err == nil {
		for _, result := range resp.Results {
			add(extractContact(result.Person))
		}
	}

	// Other contacts have no search parameter, so pages are filtered locally
	pageToken := ""
	for page := 0; page < 10 && len(contacts) < pageSize; page++ {
		call := c.svc.OtherContacts.List().
			ReadMask(contactReadMask).
			PageSize(100)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		otherResp, err := call.Do()
		if err != nil {
			break
		}

		for _, person := range otherResp.OtherContacts {
			if contact := extractContact(person); matchesQuery(contact, queryLower) {
				add(contact)
			}
		}

		pageToken = otherResp.NextPageToken
		if pageToken == "" {
			break
		}
	}

	// Directory search only works for Workspace accounts
	dirResp, err := c.svc.People.SearchDirectoryPeople().
		Query(query).
		ReadMask(contactReadMask).
		Sources("DIRECTORY_SOURCE_TYPE_DOMAIN_PROFILE", "DIRECTORY_SOURCE_TYPE_DOMAIN_CONTACT").
		PageSize(int64(pageSize)).
		Do()
	if err == nil {
		for _, person := range dirResp.People {
			add(extractContact(person))
		}
	}

	if len(contacts) > pageSize {
		contacts = contacts[:pageSize]
	}

	return contacts, nil
}

// extractContact extracts contact information from a Person object
func extractContact(person *people.Person) *Contact {
	if person == nil {
		return nil
	}

	contact := &Contact{
		ResourceName: person.ResourceName,
	}

	if len(person.Names) > 0 {
		contact.DisplayName = person.Names[0].DisplayName
	}
	if len(person.EmailAddresses) > 0 {
		contact.EmailAddress = person.EmailAddresses[0].Value
	}
	if len(person.PhoneNumbers) > 0 {
		contact.PhoneNumber = person.PhoneNumbers[0].Value
	}

	if contact.DisplayName == "" && contact.EmailAddress == "" && contact.PhoneNumber == "" {
		return nil
	}

	return contact
}

// matchesQuery checks if a contact matches the search query
func matchesQuery(contact *Contact, queryLower string) bool {
	if contact == nil {
		return false
	}
	if queryLower == "" {
		return true
	}

	return strings.Contains(strings.ToLower(contact.DisplayName), queryLower) ||
		strings.Contains(strings.ToLower(contact.EmailAddress), queryLower) ||
		strings.Contains(contact.PhoneNumber, queryLower)
}
