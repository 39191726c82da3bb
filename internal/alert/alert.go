package alert

import (
	"time"

	"github.com/google/uuid"
)

// Alert is an in-app message shown to a user: OTP deliveries, confirmations,
// account changes and due-date reminders all land here.
type Alert struct {
	ID        uuid.UUID
	Username  string
	Date      time.Time
	Timestamp time.Time
	Message   string
	Read      bool
}
