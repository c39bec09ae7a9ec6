package settings

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mr1hm/go-wildfire-watch/internal/notify"
)

func TestNewScreen_Defaults(t *testing.T) {
	s := NewScreen()
	want := &Screen{DarkMode: false, NotificationsEnabled: true, RegionAlerts: false}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestToggles(t *testing.T) {
	s := NewScreen()

	s.ToggleDarkMode()
	s.ToggleNotifications()
	s.ToggleRegionAlerts()

	want := &Screen{DarkMode: true, NotificationsEnabled: false, RegionAlerts: true}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Errorf("after toggles (-want +got):\n%s", diff)
	}

	s.ToggleDarkMode()
	if s.DarkMode {
		t.Error("second toggle should turn dark mode off")
	}
}

func TestClearCache(t *testing.T) {
	tests := []struct {
		name    string
		confirm bool
		want    []notify.Message
	}{
		{"confirmed", true, []notify.Message{{Title: "Cache Cleared", Body: ""}}},
		{"cancelled", false, []notify.Message{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rec notify.Recorder
			var asked string
			c := ConfirmerFunc(func(title, body string) bool {
				asked = title
				return tt.confirm
			})

			got := NewScreen().ClearCache(c, &rec)
			if got != tt.confirm {
				t.Errorf("expected %v, got %v", tt.confirm, got)
			}
			if asked != "Clear Cache" {
				t.Errorf("expected confirmation titled 'Clear Cache', got %q", asked)
			}
			if diff := cmp.Diff(tt.want, rec.Messages()); diff != "" {
				t.Errorf("notifications mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSendFeedback(t *testing.T) {
	var rec notify.Recorder
	NewScreen().SendFeedback(&rec)

	want := []notify.Message{{Title: "Send Feedback", Body: "Redirecting to feedback form..."}}
	if diff := cmp.Diff(want, rec.Messages()); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}
