package gmail

import (
	"encoding/base64"

	gmail "google.golang.org/api/gmail/v1"
)

// HeaderValue returns the value of a named header from a message payload,
// or the empty string when the header is absent.
func HeaderValue(m *gmail.Message, header string) string {
	if m == nil || m.Payload == nil {
		return ""
	}
	for _, h := range m.Payload.Headers {
		if h.Name == header {
			return h.Value
		}
	}
	return ""
}

// ExtractContent pulls the readable content out of a full message: the
// common headers plus the first decodable text body. Plain text is
// preferred; HTML is used when no plain part exists.
func ExtractContent(m *gmail.Message) *MessageContent {
	content := &MessageContent{
		ID:      m.Id,
		Subject: HeaderValue(m, "Subject"),
		From:    HeaderValue(m, "From"),
		To:      HeaderValue(m, "To"),
		Date:    HeaderValue(m, "Date"),
		Snippet: m.Snippet,
	}

	if m.Payload == nil {
		return content
	}

	var plain, html string
	walkParts(m.Payload, func(part *gmail.MessagePart) {
		if part.Body == nil || part.Body.Data == "" {
			return
		}
		switch part.MimeType {
		case "text/plain":
			if plain == "" {
				plain = decodeBody(part.Body.Data)
			}
		case "text/html":
			if html == "" {
				html = decodeBody(part.Body.Data)
			}
		}
	})

	if plain != "" {
		content.Body = plain
	} else {
		content.Body = html
	}

	return content
}

// decodeBody decodes the base64url body data the Gmail API returns.
// Some providers pad with standard base64, so that is tried as a fallback.
func decodeBody(data string) string {
	decoded, err := base64.URLEncoding.DecodeString(data)
	if err != nil {
		decoded, err = base64.StdEncoding.DecodeString(data)
		if err != nil {
			return ""
		}
	}
	return string(decoded)
}

// walkParts recursively walks through message parts
func walkParts(part *gmail.MessagePart, fn func(*gmail.MessagePart)) {
	if part == nil {
		return
	}

	fn(part)

	for _, subpart := range part.Parts {
		walkParts(subpart, fn)
	}
}
