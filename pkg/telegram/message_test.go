package telegram

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/leadflowhq/leadflow-backend/pkg/db/models"
	"github.com/leadflowhq/leadflow-backend/pkg/enums"
)

func strPtr(s string) *string { return &s }

func TestFormatApplicationMessage(t *testing.T) {
	created := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

	t.Run("full application", func(t *testing.T) {
		app := &models.Application{
			ID:          42,
			Name:        "Jane Doe",
			Phone:       "+1 (555) 123-4567",
			Email:       strPtr("jane@example.com"),
			Comment:     strPtr("call after 6pm"),
			Status:      enums.ApplicationStatusNew,
			UTMSource:   strPtr("google"),
			UTMMedium:   strPtr("cpc"),
			UTMCampaign: strPtr("spring"),
			CreatedAt:   created,
		}

		msg := FormatApplicationMessage(app)

		assert.Contains(t, msg, "<b>New application</b>")
		assert.Contains(t, msg, "<b>Name:</b> Jane Doe")
		assert.Contains(t, msg, "<b>Phone:</b> +1 (555) 123-4567")
		assert.Contains(t, msg, "<b>Email:</b> jane@example.com")
		assert.Contains(t, msg, "<b>Comment:</b> call after 6pm")
		assert.Contains(t, msg, "🆕 New")
		assert.Contains(t, msg, "• Source: google")
		assert.Contains(t, msg, "• Medium: cpc")
		assert.Contains(t, msg, "• Campaign: spring")
		assert.Contains(t, msg, "<b>Application ID:</b> 42")
		assert.Contains(t, msg, "15.03.2024 10:30:00")
	})

	t.Run("escapes html in user input", func(t *testing.T) {
		app := &models.Application{
			ID:        7,
			Name:      "<script>alert(1)</script>",
			Phone:     "+700",
			Comment:   strPtr(`say "hi" & <b>bye</b>`),
			Status:    enums.ApplicationStatusRejected,
			CreatedAt: created,
		}

		msg := FormatApplicationMessage(app)

		assert.NotContains(t, msg, "<script>")
		assert.Contains(t, msg, "&lt;script&gt;alert(1)&lt;/script&gt;")
		assert.Contains(t, msg, "&amp; &lt;b&gt;bye&lt;/b&gt;")
		assert.Contains(t, msg, "❌ Rejected")
	})

	t.Run("omits optional sections", func(t *testing.T) {
		app := &models.Application{
			ID:        1,
			Name:      "Minimal",
			Phone:     "+1",
			Status:    enums.ApplicationStatusInProgress,
			CreatedAt: created,
		}

		msg := FormatApplicationMessage(app)

		assert.NotContains(t, msg, "Email:")
		assert.NotContains(t, msg, "Comment:")
		assert.NotContains(t, msg, "UTM tags")
		assert.Contains(t, msg, "🔄 In progress")
	})
}

func TestNilClientIsNoop(t *testing.T) {
	var c *Client
	assert.NotPanics(t, func() {
		c.NotifyApplication(context.Background(), &models.Application{ID: 1})
	})
}
