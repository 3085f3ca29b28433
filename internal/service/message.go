package service

// Illustration selects which artwork the message view renders alongside
// the text. The presentation layer owns the actual art.
type Illustration int

const (
	// IllustrationError is the generic failure artwork
	IllustrationError Illustration = iota

	// IllustrationSelect prompts the user to pick a movie first
	IllustrationSelect
)

// MessageState describes the full-screen message view of the details
// screen: hidden, or showing a message with an optional retry
// affordance.
type MessageState struct {
	Show         bool
	Text         string
	CanRetry     bool
	Illustration Illustration
}
