package models

// NoTitle is shown when a ticket line carries no text after the identifier
const NoTitle = "(no title)"

// Ticket is a tracker item referenced from release notes or returned by the tracker
type Ticket struct {
	// Key is the upper-cased identifier (e.g., "WOR-1234")
	Key string
	// Title is the summary text, NoTitle when unknown
	Title string
}

// NewTicket creates a Ticket, substituting NoTitle for an empty title
func NewTicket(key, title string) Ticket {
	if title == "" {
		title = NoTitle
	}
	return Ticket{Key: key, Title: title}
}
