package models

// ImportResult reports a bulk spreadsheet import.
type ImportResult struct {
	TotalRows int `json:"total_rows"` // non-blank data rows in the file
	ValidRows int `json:"valid_rows"` // rows carrying both code and name
	Upserted  int `json:"upserted"`   // distinct client codes written
	Failed    int `json:"failed"`     // distinct client codes whose write failed
}

// ClearResult reports a bulk clear of scheduled follow-up dates.
type ClearResult struct {
	Requested int `json:"requested"`
	Cleared   int `json:"cleared"`
}

// ContactLink is the outcome of an email or WhatsApp contact action.
type ContactLink struct {
	Channel string `json:"channel"`
	URL     string `json:"url"`
	Body    string `json:"body,omitempty"`
	Logged  bool   `json:"logged"`
	Warning string `json:"warning,omitempty"`
}

// SendEmailRequest is the payload of the outbound email relay.
type SendEmailRequest struct {
	To      string `json:"to" binding:"required,email"`
	CC      string `json:"cc" binding:"omitempty,email"`
	Subject string `json:"subject" binding:"required"`
	Body    string `json:"body" binding:"required"`
}

// RunResult reports one pass of the scheduled follow-up mailer.
type RunResult struct {
	Sent  int `json:"sent"`
	Total int `json:"total"`
}

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}
