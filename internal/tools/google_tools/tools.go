package google_tools

import (
	"context"
	"fmt"

	"github.com/mfell/workspace-agent/internal/agent"
	"github.com/mfell/workspace-agent/internal/google"
	"github.com/mfell/workspace-agent/internal/instrumentation"
	"github.com/mfell/workspace-agent/internal/server"
	"github.com/mfell/workspace-agent/internal/tools/args"
	"github.com/mfell/workspace-agent/internal/tools/common"
)

// RegisterGoogleTools registers the OAuth bootstrap tools. These stay
// available in read-only mode since authorization is a prerequisite for
// every Google tool.
func RegisterGoogleTools(reg *agent.Registry, sc *server.Context, readOnly bool) {
	register := func(desc agent.ToolDescriptor, operation string, handler agent.ToolFunc) {
		reg.MustRegister(desc, common.Instrumented(desc.Name, "", operation, sc, handler))
	}

	register(
		agent.NewTool("google_get_auth_url", "Get the Google OAuth authorization URL for an account. Give the URL to the user; they sign in and receive an authorization code.").
			WithString("account", "Account name to authorize (default: 'default')", false),
		"",
		func(ctx context.Context, a map[string]any) (string, error) {
			account := args.Account(a)
			if google.HasTokenForAccount(account) {
				return fmt.Sprintf("Account %q is already authorized. Re-authorizing will replace the stored token.\n\nAuthorization URL:\n%s",
					account, google.GetAuthURLForAccount(account)), nil
			}
			return fmt.Sprintf(`Authorization URL for account %q:

%s

1. Open the URL in a browser and sign in with the Google account
2. Grant access to the requested Google services
3. Copy the authorization code shown afterwards
4. Call google_save_auth_code with account=%q and the code`,
				account, google.GetAuthURLForAccount(account), account), nil
		})

	register(
		agent.NewTool("google_save_auth_code", "Exchange a Google OAuth authorization code and store the resulting token for an account").
			WithString("account", "Account name being authorized (default: 'default')", false).
			WithString("code", "The authorization code the user copied from the browser", true),
		"",
		func(ctx context.Context, a map[string]any) (string, error) {
			code, err := args.String(a, "code")
			if err != nil {
				return "", err
			}
			account := args.Account(a)

			if err := google.SaveTokenForAccount(ctx, account, code); err != nil {
				if m := sc.Metrics(); m != nil {
					m.RecordOAuthAuth(ctx, instrumentation.OAuthResultFailure)
				}
				return "", fmt.Errorf("failed to exchange authorization code for account %s: %w", account, err)
			}

			if m := sc.Metrics(); m != nil {
				m.RecordOAuthAuth(ctx, instrumentation.OAuthResultSuccess)
			}
			return fmt.Sprintf("Authorization complete. Google tokens for account %q are stored and will refresh automatically.", account), nil
		})
}
