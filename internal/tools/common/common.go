package common

import (
	"encoding/json"
	"fmt"
)

// JSONResult renders a tool result as indented JSON for the model.
func JSONResult(v any) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(b), nil
}

// AuthRequiredError is returned when a tool needs a Google client but no
// OAuth token exists for the account. The message walks the model through
// the authorization tools.
func AuthRequiredError(account string) error {
	return fmt.Errorf(`no Google OAuth token found for account %q. To authorize access:
1. Call google_get_auth_url with account=%q and give the URL to the user
2. The user signs in with their Google account and copies the authorization code
3. Call google_save_auth_code with account=%q and the code
Authorization is needed once per account; tokens are refreshed automatically`, account, account, account)
}
