// Package gmail_tools exposes Gmail operations as model-callable tools:
// listing and reading messages, sending email with optional attachments,
// toggling read state, and deleting messages.
package gmail_tools
