// Package settings holds the settings screen.
package settings

import "github.com/mr1hm/go-wildfire-watch/internal/notify"

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(title, body string) bool
}

type ConfirmerFunc func(title, body string) bool

func (f ConfirmerFunc) Confirm(title, body string) bool {
	return f(title, body)
}

type Screen struct {
	DarkMode             bool `json:"dark_mode"`
	NotificationsEnabled bool `json:"notifications_enabled"`
	RegionAlerts         bool `json:"region_alerts"`
}

type Link struct {
	Section string `json:"section"`
	Title   string `json:"title"`
}

// Links are the static entries at the bottom of the screen.
var Links = []Link{
	{Section: "About", Title: "Privacy Policy"},
	{Section: "About", Title: "Terms and Conditions"},
	{Section: "About", Title: "About the App"},
}

func NewScreen() *Screen {
	return &Screen{
		NotificationsEnabled: true,
	}
}

func (s *Screen) ToggleDarkMode()      { s.DarkMode = !s.DarkMode }
func (s *Screen) ToggleNotifications() { s.NotificationsEnabled = !s.NotificationsEnabled }
func (s *Screen) ToggleRegionAlerts()  { s.RegionAlerts = !s.RegionAlerts }

// ClearCache asks for confirmation and reports whether the user agreed.
func (s *Screen) ClearCache(c Confirmer, n notify.Notifier) bool {
	if !c.Confirm("Clear Cache", "Are you sure you want to clear all cached data?") {
		return false
	}
	n.Notify("Cache Cleared", "")
	return true
}

func (s *Screen) SendFeedback(n notify.Notifier) {
	n.Notify("Send Feedback", "Redirecting to feedback form...")
}
