package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultTTL is how long a transient notice stays visible.
const DefaultTTL = 5 * time.Second

type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	// KindError notices persist until replaced or dismissed.
	KindError Kind = "error"
)

// Transient reports whether notices of this kind clear themselves.
func (k Kind) Transient() bool { return k != KindError }

type Notice struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Notifier holds at most one notice. Arming a new notice stops the previous
// timer, and a timer that fires for a notice that is no longer current does
// nothing.
type Notifier struct {
	mu       sync.Mutex
	ttl      time.Duration
	current  *Notice
	timer    *time.Timer
	onChange func()
}

func New(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Notifier{ttl: ttl}
}

// OnChange registers fn to run after the current notice changes, including
// when a timer clears it.
func (n *Notifier) OnChange(fn func()) {
	n.mu.Lock()
	n.onChange = fn
	n.mu.Unlock()
}

func (n *Notifier) Success(msg string) Notice { return n.Notify(KindSuccess, msg) }

func (n *Notifier) Info(msg string) Notice { return n.Notify(KindInfo, msg) }

func (n *Notifier) Error(msg string) Notice { return n.Notify(KindError, msg) }

// Notify replaces the current notice.
func (n *Notifier) Notify(kind Kind, msg string) Notice {
	notice := Notice{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   msg,
		CreatedAt: time.Now(),
	}

	n.mu.Lock()
	n.stopTimerLocked()
	n.current = &notice
	if kind.Transient() {
		id := notice.ID
		n.timer = time.AfterFunc(n.ttl, func() { n.expire(id) })
	}
	fn := n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn()
	}
	return notice
}

// Current returns the visible notice, if any.
func (n *Notifier) Current() (Notice, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.current == nil {
		return Notice{}, false
	}
	return *n.current, true
}

// Dismiss clears the current notice and its timer.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	n.stopTimerLocked()
	changed := n.current != nil
	n.current = nil
	fn := n.onChange
	n.mu.Unlock()

	if changed && fn != nil {
		fn()
	}
}

// Stop cancels any pending timer without clearing the notice.
func (n *Notifier) Stop() {
	n.mu.Lock()
	n.stopTimerLocked()
	n.mu.Unlock()
}

func (n *Notifier) expire(id string) {
	n.mu.Lock()
	if n.current == nil || n.current.ID != id {
		n.mu.Unlock()
		return
	}
	n.current = nil
	n.timer = nil
	fn := n.onChange
	n.mu.Unlock()

	if fn != nil {
		fn()
	}
}

func (n *Notifier) stopTimerLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
