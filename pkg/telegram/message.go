package telegram

import (
	"fmt"
	"html"
	"strings"

	"github.com/leadflowhq/leadflow-backend/pkg/db/models"
	"github.com/leadflowhq/leadflow-backend/pkg/enums"
)

var statusLabels = map[enums.ApplicationStatus]string{
	enums.ApplicationStatusNew:        "🆕 New",
	enums.ApplicationStatusInProgress: "🔄 In progress",
	enums.ApplicationStatusCompleted:  "✅ Completed",
	enums.ApplicationStatusRejected:   "❌ Rejected",
}

// FormatApplicationMessage renders a lead as a Telegram HTML message.
// All user-supplied values are escaped before interpolation.
func FormatApplicationMessage(app *models.Application) string {
	var b strings.Builder

	b.WriteString("📋 <b>New application</b>\n\n")
	fmt.Fprintf(&b, "👤 <b>Name:</b> %s\n", html.EscapeString(app.Name))
	fmt.Fprintf(&b, "📞 <b>Phone:</b> %s\n", html.EscapeString(app.Phone))

	if app.Email != nil && *app.Email != "" {
		fmt.Fprintf(&b, "📧 <b>Email:</b> %s\n", html.EscapeString(*app.Email))
	}
	if app.Comment != nil && *app.Comment != "" {
		fmt.Fprintf(&b, "💬 <b>Comment:</b> %s\n", html.EscapeString(*app.Comment))
	}

	label, ok := statusLabels[app.Status]
	if !ok {
		label = string(app.Status)
	}
	fmt.Fprintf(&b, "📊 <b>Status:</b> %s\n", label)

	writeUTM(&b, app)

	fmt.Fprintf(&b, "\n🆔 <b>Application ID:</b> %d\n", app.ID)
	fmt.Fprintf(&b, "🕐 <b>Date:</b> %s", app.CreatedAt.Format("02.01.2006 15:04:05"))

	return b.String()
}

func writeUTM(b *strings.Builder, app *models.Application) {
	source := deref(app.UTMSource)
	medium := deref(app.UTMMedium)
	campaign := deref(app.UTMCampaign)
	if source == "" && medium == "" && campaign == "" {
		return
	}

	b.WriteString("\n📈 <b>UTM tags:</b>\n")
	if source != "" {
		fmt.Fprintf(b, "   • Source: %s\n", html.EscapeString(source))
	}
	if medium != "" {
		fmt.Fprintf(b, "   • Medium: %s\n", html.EscapeString(medium))
	}
	if campaign != "" {
		fmt.Fprintf(b, "   • Campaign: %s\n", html.EscapeString(campaign))
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
