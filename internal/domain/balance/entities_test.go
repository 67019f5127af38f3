package balance

import (
	"testing"
	"time"
)

func TestFresh(t *testing.T) {
	now := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	ttl := 30 * time.Second

	tests := []struct {
		name string
		b    *Balance
		want bool
	}{
		{"nil", nil, false},
		{"just synced", &Balance{UpdatedAt: now.Add(-time.Second)}, true},
		{"at ttl", &Balance{UpdatedAt: now.Add(-ttl)}, false},
		{"stale", &Balance{UpdatedAt: now.Add(-time.Minute)}, false},
	}
	for _, tt := range tests {
		if got := tt.b.Fresh(now, ttl); got != tt.want {
			t.Errorf("%s: Fresh = %v, want %v", tt.name, got, tt.want)
		}
	}
}
