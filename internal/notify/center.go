package notify

import "time"

const (
	DefaultTTL = 3 * time.Second
	MaxActive  = 5
)

// Toast is an active notification and the time it has left on screen.
type Toast struct {
	Notification
	Remaining time.Duration
}

// Center manages the stack of active toasts. New toasts are appended at the
// bottom; when more than MaxActive are alive the oldest is evicted. Center is
// not safe for concurrent use; it lives inside the Bubble Tea update loop.
type Center struct {
	toasts  []Toast
	ttl     time.Duration
	now     func() time.Time
	ticking bool
}

func NewCenter(ttl time.Duration) *Center {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Center{ttl: ttl, now: time.Now}
}

func (c *Center) Notify(level Level, message string) {
	c.Push(Notification{Level: level, Message: message})
}

func (c *Center) Push(n Notification) {
	if n.CreatedAt.IsZero() {
		n.CreatedAt = c.now()
	}
	c.toasts = append(c.toasts, Toast{Notification: n, Remaining: c.ttl})
	if len(c.toasts) > MaxActive {
		c.toasts = c.toasts[len(c.toasts)-MaxActive:]
	}
}

// Tick ages every toast by d and drops the expired ones.
func (c *Center) Tick(d time.Duration) {
	alive := c.toasts[:0]
	for _, t := range c.toasts {
		t.Remaining -= d
		if t.Remaining > 0 {
			alive = append(alive, t)
		}
	}
	c.toasts = alive
}

// Dismiss removes the newest toast.
func (c *Center) Dismiss() {
	if len(c.toasts) > 0 {
		c.toasts = c.toasts[:len(c.toasts)-1]
	}
}

func (c *Center) DismissAll() {
	c.toasts = c.toasts[:0]
}

func (c *Center) HasActive() bool {
	return len(c.toasts) > 0
}

// Active returns the live toasts, oldest first.
func (c *Center) Active() []Toast {
	return c.toasts
}

// Ticking reports whether a tick timer is already scheduled.
func (c *Center) Ticking() bool {
	return c.ticking
}

func (c *Center) SetTicking(v bool) {
	c.ticking = v
}
