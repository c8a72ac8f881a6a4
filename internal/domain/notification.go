package domain

// NotificationKind вид исходящего уведомления
type NotificationKind string

const (
	NotificationConfirmation NotificationKind = "confirmation"
	NotificationCancellation NotificationKind = "cancellation"
	NotificationReschedule   NotificationKind = "reschedule"
	NotificationThankYou     NotificationKind = "thank_you"
	NotificationReminder     NotificationKind = "reminder"
)
