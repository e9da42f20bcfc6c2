// Package monthtab derives the selectable month window and tracks the
// active month key driving the expense query.
package monthtab

import (
	"sync"
	"time"
)

// KeyLayout is the canonical month key format: zero-padded YYYY-MM.
// The same key is used for querying and for tab comparison.
const KeyLayout = "2006-01"

// Key returns the canonical month key for t.
func Key(t time.Time) string {
	return t.Format(KeyLayout)
}

// KeyFromDate derives the month key from a YYYY-MM-DD pay date.
func KeyFromDate(payDate string) (string, error) {
	t, err := time.Parse("2006-01-02", payDate)
	if err != nil {
		return "", err
	}
	return Key(t), nil
}

// Month is one selectable tab.
type Month struct {
	Key   string
	Label string
}

// Window returns the most recent n calendar months ending at now,
// newest first, each with a stable key and display label.
func Window(now time.Time, n int) []Month {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	months := make([]Month, 0, n)
	for i := 0; i < n; i++ {
		d := first.AddDate(0, -i, 0)
		months = append(months, Month{
			Key:   Key(d),
			Label: d.Format("January 2006"),
		})
	}
	return months
}

// Controller exposes the active month key and a setter. Re-selecting
// the active month is a no-op.
type Controller struct {
	mu     sync.Mutex
	active string
	window []Month
}

// NewController starts with the current month active.
func NewController(now time.Time, size int) *Controller {
	return &Controller{
		active: Key(now),
		window: Window(now, size),
	}
}

// Active returns the currently active month key.
func (c *Controller) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Window returns the selectable months.
func (c *Controller) Window() []Month {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.window
}

// SetActive switches the active month. It reports whether the active
// key changed; re-selecting the same month returns false so callers
// skip the redundant fetch.
func (c *Controller) SetActive(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if key == "" || key == c.active {
		return false
	}
	c.active = key
	return true
}
