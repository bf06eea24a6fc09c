package models

// ParseRequest is the input to the readability parser.
type ParseRequest struct {
	URL  string
	HTML string
}
