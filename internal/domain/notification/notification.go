package notification

// Kind classifies a notification by severity for display purposes.
type Kind string

const (
	KindSuccess Kind = "SUCCESS"
	KindError   Kind = "ERROR"
	KindInfo    Kind = "INFO"
	KindWarning Kind = "WARNING"
)

// Notification is a transient message shown to the end user.
// It is replaced wholesale on every change, never merged.
type Notification struct {
	Message string // Message is the human-readable text to display
	Kind    Kind   // Kind is the severity of the message
}

// New creates a notification with the given message and kind.
func New(message string, kind Kind) *Notification {
	return &Notification{Message: message, Kind: kind}
}
