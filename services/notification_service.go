package services

import (
	"fmt"
	"sync"
	"time"

	"github.com/tebele-dev/tailor-made-couture/apperrors"
	"github.com/tebele-dev/tailor-made-couture/models"
	"go.uber.org/zap"
)

const (
	MaxNotifications = 10

	DefaultNotificationDuration = 5 * time.Second
	ErrorNotificationDuration   = 8 * time.Second
	SuccessNotificationDuration = 3 * time.Second

	FallbackErrorMessage = "An unexpected error occurred. Please try again."
)

// Notifier records user-facing messages for one session.
type Notifier interface {
	Show(t models.NotificationType, message string, duration time.Duration) string
	Success(message string) string
	Error(message string) string
	Warning(message string) string
	Info(message string) string
	HandleError(err any, userMessage string) string
	Remove(id string)
	Clear()
	List() []models.Notification
	Count() int
	ByType(t models.NotificationType) []models.Notification
	HasErrors() bool
}

// NotificationService is a bounded, newest-last log of notifications. Each
// entry with a non-zero duration owns a timer keyed by its id.
type NotificationService struct {
	mu     sync.Mutex
	items  []models.Notification
	timers map[string]*time.Timer
	seq    uint64
	max    int
	now    func() time.Time
	logger *zap.Logger
}

func NewNotificationService(logger *zap.Logger) *NotificationService {
	return &NotificationService{
		timers: make(map[string]*time.Timer),
		max:    MaxNotifications,
		now:    time.Now,
		logger: logger,
	}
}

func defaultDuration(t models.NotificationType) time.Duration {
	switch t {
	case models.NotificationError:
		return ErrorNotificationDuration
	case models.NotificationSuccess:
		return SuccessNotificationDuration
	default:
		return DefaultNotificationDuration
	}
}

// Show appends a notification and returns its id. A zero duration makes it persistent.
func (s *NotificationService) Show(t models.NotificationType, message string, duration time.Duration) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.seq++
	n := models.Notification{
		ID:         fmt.Sprintf("%s_%d_%d", t, now.UnixMilli(), s.seq),
		Type:       t,
		Message:    message,
		DurationMS: duration.Milliseconds(),
		CreatedAt:  now,
	}
	s.items = append(s.items, n)

	if overflow := len(s.items) - s.max; overflow > 0 {
		for _, dropped := range s.items[:overflow] {
			s.stopTimer(dropped.ID)
		}
		s.items = append([]models.Notification(nil), s.items[overflow:]...)
	}

	if duration > 0 {
		id := n.ID
		s.timers[id] = time.AfterFunc(duration, func() { s.expire(id) })
	}
	return n.ID
}

func (s *NotificationService) Success(message string) string {
	return s.Show(models.NotificationSuccess, message, defaultDuration(models.NotificationSuccess))
}

func (s *NotificationService) Error(message string) string {
	return s.Show(models.NotificationError, message, defaultDuration(models.NotificationError))
}

func (s *NotificationService) Warning(message string) string {
	return s.Show(models.NotificationWarning, message, defaultDuration(models.NotificationWarning))
}

func (s *NotificationService) Info(message string) string {
	return s.Show(models.NotificationInfo, message, defaultDuration(models.NotificationInfo))
}

// HandleError logs err and surfaces an error notification. The message is the
// first non-empty of userMessage, the error's message, the value as a string,
// and the generic fallback.
func (s *NotificationService) HandleError(err any, userMessage string) string {
	s.logger.Error("Application error", zap.Any("error", err), zap.String("user_message", userMessage))
	return s.Error(resolveErrorMessage(err, userMessage))
}

func resolveErrorMessage(err any, userMessage string) string {
	if userMessage != "" {
		return userMessage
	}
	switch v := err.(type) {
	case error:
		if msg := v.Error(); msg != "" {
			return msg
		}
	case string:
		if v != "" {
			return v
		}
	case fmt.Stringer:
		if msg := v.String(); msg != "" {
			return msg
		}
	}
	return FallbackErrorMessage
}

// Remove drops the notification and cancels its timer. Unknown ids are ignored.
func (s *NotificationService) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimer(id)
	s.removeLocked(id)
}

func (s *NotificationService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.timers {
		s.stopTimer(id)
	}
	s.items = nil
}

func (s *NotificationService) List() []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Notification{}, s.items...)
}

func (s *NotificationService) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

func (s *NotificationService) ByType(t models.NotificationType) []models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.Notification{}
	for _, n := range s.items {
		if n.Type == t {
			out = append(out, n)
		}
	}
	return out
}

func (s *NotificationService) HasErrors() bool {
	return len(s.ByType(models.NotificationError)) > 0
}

func (s *NotificationService) expire(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.timers, id)
	s.removeLocked(id)
}

func (s *NotificationService) stopTimer(id string) {
	if t, ok := s.timers[id]; ok {
		t.Stop()
		delete(s.timers, id)
	}
}

func (s *NotificationService) removeLocked(id string) {
	for i, n := range s.items {
		if n.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// notifierIdle is how long an empty notifier survives without a For call
// before the hub forgets it.
const notifierIdle = 10 * time.Minute

type hubEntry struct {
	notifier *NotificationService
	used     time.Time
}

// NotificationHub hands out one Notifier per session.
type NotificationHub struct {
	mu        sync.Mutex
	byKey     map[string]*hubEntry
	now       func() time.Time
	lastSweep time.Time
	logger    *zap.Logger
}

func NewNotificationHub(logger *zap.Logger) *NotificationHub {
	return &NotificationHub{byKey: make(map[string]*hubEntry), now: time.Now, logger: logger}
}

// For returns the notifier for key, creating it on first use.
func (h *NotificationHub) For(key string) Notifier {
	h.mu.Lock()
	defer h.mu.Unlock()
	now := h.now()
	h.sweepLocked(now)
	e, ok := h.byKey[key]
	if !ok {
		e = &hubEntry{notifier: NewNotificationService(h.logger.With(zap.String("session", key)))}
		h.byKey[key] = e
	}
	e.used = now
	return e.notifier
}

// Drop clears and forgets the notifier for key.
func (h *NotificationHub) Drop(key string) {
	h.mu.Lock()
	e, ok := h.byKey[key]
	delete(h.byKey, key)
	h.mu.Unlock()
	if ok {
		e.notifier.Clear()
	}
}

// sweepLocked forgets notifiers that hold nothing and have been idle for
// notifierIdle. It runs at most once per notifierIdle.
func (h *NotificationHub) sweepLocked(now time.Time) {
	if now.Sub(h.lastSweep) < notifierIdle {
		return
	}
	h.lastSweep = now
	for key, e := range h.byKey {
		if now.Sub(e.used) >= notifierIdle && e.notifier.Count() == 0 {
			delete(h.byKey, key)
		}
	}
}

// reportError raises err as an error notification for key and returns it as
// an *apperrors.Error.
func reportError(notifications NotifierProvider, key string, err error) error {
	appErr := apperrors.From(err)
	notifications.For(key).Error(appErr.Message)
	return appErr
}
