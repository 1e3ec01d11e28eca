package services

import "time"

// SetClock pins the clock of services built by this package's constructors.
func SetClock(svc any, now func() time.Time) {
	switch s := svc.(type) {
	case *checkoutServiceImpl:
		s.now = now
	case *addressBookServiceImpl:
		s.now = now
	case *NotificationHub:
		s.now = now
	}
}

// HubSize reports how many notifiers the hub is holding.
func HubSize(h *NotificationHub) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.byKey)
}
