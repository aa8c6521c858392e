// Package notify holds the seeded admin notifications. Read flags live in
// memory only and reset when the process restarts.
package notify

import (
	"sync"

	"github.com/waypartner/adminpanel/internal/model"
)

type Center struct {
	mu    sync.Mutex
	items []model.Notification
}

// NewCenter returns a center over a copy of the seed list.
func NewCenter(seed []model.Notification) *Center {
	items := make([]model.Notification, len(seed))
	copy(items, seed)
	return &Center{items: items}
}

// Seed is the fixed admin notification list the panel ships with.
func Seed() []model.Notification {
	return []model.Notification{
		{ID: "1", Message: "New Service Center Registration - Premium Motors", Time: "5 mins ago", Read: false, Type: model.NotificationBusiness},
		{ID: "2", Message: "System Health Check: All services operational", Time: "15 mins ago", Read: false, Type: model.NotificationSystem},
		{ID: "3", Message: "Monthly Revenue Report Generated", Time: "1 hour ago", Read: true, Type: model.NotificationBusiness},
		{ID: "4", Message: "Database Backup Completed Successfully", Time: "2 hours ago", Read: true, Type: model.NotificationSystem},
		{ID: "5", Message: "Security Alert: Multiple login attempts detected", Time: "3 hours ago", Read: true, Type: model.NotificationSecurity},
	}
}

// List returns a copy of the notifications.
func (c *Center) List() []model.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Notification, len(c.items))
	copy(out, c.items)
	return out
}

// UnreadCount returns how many notifications are unread.
func (c *Center) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, item := range c.items {
		if !item.Read {
			n++
		}
	}
	return n
}

// MarkRead flags a notification as read. Reports whether the ID was known.
// The flag is never written back to any store.
func (c *Center) MarkRead(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].ID == id {
			c.items[i].Read = true
			return true
		}
	}
	return false
}
