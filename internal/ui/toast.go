package ui

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ToastKind selects the icon and color of a notification.
type ToastKind string

const (
	ToastSuccess ToastKind = "success"
	ToastError   ToastKind = "error"
)

// DefaultToastTTL is how long a notification stays visible.
const DefaultToastTTL = 5 * time.Second

// Toast is one transient notification.
type Toast struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Kind      ToastKind `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Icon returns the glyph shown next to the message.
func (t Toast) Icon() string {
	if t.Kind == ToastSuccess {
		return "✓"
	}
	return "✕"
}

// Notifier shows notifications to the user.
type Notifier interface {
	Notify(ctx context.Context, message string, kind ToastKind)
}

// Board keeps notifications until they expire or are dismissed.
type Board struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	toasts []Toast // oldest first
}

// NewBoard creates a board. A non-positive ttl uses DefaultToastTTL.
func NewBoard(ttl time.Duration) *Board {
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &Board{ttl: ttl, now: time.Now}
}

// Notify adds a toast.
func (b *Board) Notify(_ context.Context, message string, kind ToastKind) {
	b.Add(message, kind)
}

// Add adds a toast and returns it.
func (b *Board) Add(message string, kind ToastKind) Toast {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	t := Toast{
		ID:        uuid.NewString(),
		Message:   message,
		Kind:      kind,
		CreatedAt: now,
		ExpiresAt: now.Add(b.ttl),
	}
	b.toasts = append(b.toasts, t)
	return t
}

// Active returns the toasts that have not expired, oldest first.
// Expired toasts are dropped.
func (b *Board) Active() []Toast {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	kept := b.toasts[:0]
	for _, t := range b.toasts {
		if now.Before(t.ExpiresAt) {
			kept = append(kept, t)
		}
	}
	b.toasts = kept

	active := make([]Toast, len(kept))
	copy(active, kept)
	return active
}

// Dismiss removes a toast before it expires. It reports whether it existed.
func (b *Board) Dismiss(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, t := range b.toasts {
		if t.ID == id {
			b.toasts = append(b.toasts[:i], b.toasts[i+1:]...)
			return true
		}
	}
	return false
}

// LogNotifier writes notifications to a logger. Used by the CLI.
type LogNotifier struct {
	Logger *slog.Logger
}

// Notify logs success at info and errors at error level.
func (n LogNotifier) Notify(ctx context.Context, message string, kind ToastKind) {
	level := slog.LevelInfo
	if kind == ToastError {
		level = slog.LevelError
	}
	n.Logger.Log(ctx, level, message, slog.String("toast", string(kind)))
}
