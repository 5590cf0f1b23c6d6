package state

// NotificationLevel represents the severity of a notification.
type NotificationLevel int

const (
	LevelInfo NotificationLevel = iota
	LevelError
)

// Notification is a single status-bar message.
type Notification struct {
	Level   NotificationLevel
	Message string
}

// NotificationState holds the message shown in the status bar. Only the
// latest message is kept; the next key press clears it.
type NotificationState struct {
	current *Notification
}

// NewNotificationState creates an empty NotificationState.
func NewNotificationState() *NotificationState {
	return &NotificationState{}
}

// Info replaces the current message with an informational one.
func (s *NotificationState) Info(message string) {
	s.current = &Notification{Level: LevelInfo, Message: message}
}

// Error replaces the current message with an error.
func (s *NotificationState) Error(message string) {
	s.current = &Notification{Level: LevelError, Message: message}
}

// Clear removes the current message.
func (s *NotificationState) Clear() {
	s.current = nil
}

// Current returns the message to display, if any.
func (s *NotificationState) Current() (Notification, bool) {
	if s.current == nil {
		return Notification{}, false
	}
	return *s.current, true
}
