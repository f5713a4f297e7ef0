package entity

import "time"

// NotificationKind tipo de aviso.
type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification aviso efímero que desaparece al vencer ExpiresAt.
type Notification struct {
	Message   string
	Kind      NotificationKind
	ExpiresAt time.Time
}

// Expired informa si el aviso ya no debe mostrarse.
func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt)
}

// Remaining tiempo de vida restante (cero si ya venció).
func (n Notification) Remaining(now time.Time) time.Duration {
	if n.Expired(now) {
		return 0
	}
	return n.ExpiresAt.Sub(now)
}
