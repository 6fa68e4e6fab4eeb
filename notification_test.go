//go:build !libretro

package lrscript

import (
	"testing"
	"time"
)

func TestNotificationExpiry(t *testing.T) {
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	n := NewNotification()
	n.now = func() time.Time { return now }

	if n.IsVisible() {
		t.Fatal("new notification should not be visible")
	}

	n.ShowDefault("Searching...")

	tests := []struct {
		elapsed time.Duration
		want    string
	}{
		{0, "Searching..."},
		{2900 * time.Millisecond, "Searching..."},
		{DefaultNotificationDuration, ""},
		{5 * time.Second, ""},
	}
	for _, tc := range tests {
		now = start.Add(tc.elapsed)
		if got := n.Message(); got != tc.want {
			t.Errorf("after %v: Message() = %q, want %q", tc.elapsed, got, tc.want)
		}
	}
}

func TestNotificationReplaceAndClear(t *testing.T) {
	n := NewNotification()
	n.Show("first", time.Hour)
	n.Show("second", time.Hour)
	if got := n.Message(); got != "second" {
		t.Errorf("Message() = %q, want %q", got, "second")
	}

	n.Clear()
	if n.IsVisible() {
		t.Error("cleared notification should not be visible")
	}
}
