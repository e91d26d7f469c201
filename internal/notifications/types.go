package notifications

// NotificationType represents the type of push being sent.
type NotificationType string

const (
	TypeRenewalReminder NotificationType = "renewal_reminder"
)

// PushNotification represents a notification payload for delivery.
type PushNotification struct {
	Title string
	Body  string
	Data  map[string]string
}

// TokenInfo represents a push notification token stored in Firestore.
type TokenInfo struct {
	Token         string `firestore:"token"`
	DeviceID      string `firestore:"deviceId"`
	LastUpdatedAt string `firestore:"lastUpdatedAt"`
}

// SendResult represents the result of sending a notification to a device.
type SendResult struct {
	Token    string
	Success  bool
	Response string
	Error    string
}
