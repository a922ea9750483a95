package notification

import (
	"strings"
	"testing"
	"time"

	"restaurant-storefront/internal/models"
)

func TestFormatNotification(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		msg  models.StatusUpdateMessage
		want []string
	}{
		{
			name: "completed",
			msg: models.StatusUpdateMessage{
				OrderID:   42,
				OldStatus: models.StatusPending,
				NewStatus: models.StatusCompleted,
				ChangedBy: "admin",
				Timestamp: ts,
			},
			want: []string{"Order #42", "completed", "admin", "2024-05-01 12:30:00"},
		},
		{
			name: "back to pending",
			msg: models.StatusUpdateMessage{
				OrderID:   7,
				OldStatus: models.StatusCompleted,
				NewStatus: models.StatusPending,
				ChangedBy: "admin",
				Timestamp: ts,
			},
			want: []string{"Order #7", "pending", "admin"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatNotification(&tt.msg)
			for _, fragment := range tt.want {
				if !strings.Contains(got, fragment) {
					t.Errorf("notification %q missing %q", got, fragment)
				}
			}
		})
	}
}
