package notify

import (
	"fmt"
	"html"
	"strings"
	"time"
)

// SignupInfo carries the fields rendered into the admin notification email.
type SignupInfo struct {
	UserID         string
	Email          string
	CreatedAt      string
	TrialGranted   bool
	TrialStartedAt string
}

// SignupEmailSubject returns the subject line for a new-signup notification.
func SignupEmailSubject(info SignupInfo) string {
	return fmt.Sprintf("🎉 New TANGENT Signup: %s", info.Email)
}

// SignupEmailHTML renders the admin notification body.
func SignupEmailHTML(info SignupInfo) string {
	trial := "Not yet"
	if info.TrialGranted {
		trial = "Yes"
	}

	var b strings.Builder
	b.WriteString(`<div style="font-family: system-ui, -apple-system, sans-serif; max-width: 600px; margin: 0 auto;">`)
	b.WriteString(`<h2 style="color: #4F46E5;">🎉 New User Signup</h2>`)
	b.WriteString(`<div style="background: #F3F4F6; padding: 20px; border-radius: 8px; margin: 20px 0;">`)
	fmt.Fprintf(&b, `<p style="margin: 8px 0;"><strong>Email:</strong> %s</p>`, html.EscapeString(info.Email))
	fmt.Fprintf(&b, `<p style="margin: 8px 0;"><strong>User ID:</strong> %s</p>`, html.EscapeString(info.UserID))
	fmt.Fprintf(&b, `<p style="margin: 8px 0;"><strong>Signed up:</strong> %s</p>`, html.EscapeString(formatTimestamp(info.CreatedAt)))
	fmt.Fprintf(&b, `<p style="margin: 8px 0;"><strong>Trial granted:</strong> %s</p>`, trial)
	if info.TrialStartedAt != "" {
		fmt.Fprintf(&b, `<p style="margin: 8px 0;"><strong>Trial started:</strong> %s</p>`, html.EscapeString(formatTimestamp(info.TrialStartedAt)))
	}
	b.WriteString(`</div>`)
	b.WriteString(`<div style="margin-top: 20px; padding-top: 20px; border-top: 1px solid #E5E7EB;">`)
	b.WriteString(`<p style="margin: 8px 0; font-size: 14px; color: #6B7280;">`)
	b.WriteString(`<a href="https://supabase.com/dashboard" style="color: #4F46E5; text-decoration: none;">View in dashboard →</a>`)
	b.WriteString(`</p></div></div>`)
	return b.String()
}

// formatTimestamp renders an RFC3339 timestamp in a readable form, falling
// back to the raw string when it does not parse.
func formatTimestamp(raw string) string {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return t.Format("Jan 2, 2006 3:04 PM MST")
}
