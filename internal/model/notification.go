package model

type NotificationType string

const (
	NotificationBusiness NotificationType = "business"
	NotificationSystem   NotificationType = "system"
	NotificationSecurity NotificationType = "security"
)

// Notification is an immutable admin notification. Read state is
// process-local and resets on restart.
type Notification struct {
	ID      string           `json:"id"`
	Message string           `json:"message"`
	Time    string           `json:"time"`
	Read    bool             `json:"read"`
	Type    NotificationType `json:"type,omitempty"`
}
