package gmail

// MessageSummary identifies one message in a listing
type MessageSummary struct {
	ID       string `json:"id"`
	ThreadID string `json:"thread_id"`
}

// MessageContent is the readable content extracted from a message
type MessageContent struct {
	ID      string `json:"id"`
	Subject string `json:"subject"`
	From    string `json:"from"`
	To      string `json:"to"`
	Date    string `json:"date"`
	Body    string `json:"body"`
	Snippet string `json:"snippet"`
}

// EmailMessage represents an email to be sent
type EmailMessage struct {
	To             []string
	Cc             []string
	Bcc            []string
	Subject        string
	Body           string
	IsHTML         bool
	AttachmentPath string
}
