package core

// Article is a single normalized feed entry handed to the prompt builder
type Article struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Source  string `json:"source"`
	Summary string `json:"summary"`
}

// FeedSource maps a feed URL to the label shown to the model and the reader
type FeedSource struct {
	URL  string
	Name string
}

// Email represents an outgoing briefing message
type Email struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Envelope carries the addressing details of the briefing
type Envelope struct {
	From          string
	Recipient     string
	SubjectPrefix string
}
