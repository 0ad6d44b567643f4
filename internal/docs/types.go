package docs

// DocumentInfo identifies a document in a listing
type DocumentInfo struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	CreatedTime  string `json:"created_time,omitempty"`
	ModifiedTime string `json:"modified_time,omitempty"`
	WebViewLink  string `json:"web_view_link,omitempty"`
}

// TextFormat describes character formatting to apply to a text range.
// Nil fields leave the corresponding style untouched.
type TextFormat struct {
	Bold      *bool
	Italic    *bool
	Underline *bool
	FontSize  *float64 // points
}
