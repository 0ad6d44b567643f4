// Package gmail provides a client for reading, sending, and managing Gmail
// messages via the Gmail API.
//
// The client supports listing and fetching messages, extracting readable
// content from MIME payloads, sending plain, HTML, and attachment-carrying
// emails, deleting messages, and toggling the UNREAD label.
package gmail
