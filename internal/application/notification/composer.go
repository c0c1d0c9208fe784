package notification

import (
	"fmt"

	"quarters/internal/domain/workorder"
)

// message is a composed notification before rendering.
type message struct {
	subject      string
	markdownBody string
	tenantFacing bool
}

// compose maps a lifecycle event to subject, body, and audience. The body is
// markdown; the listener renders and sanitizes it before handing it to the
// sender.
func compose(evt workorder.LifecycleEvent) (message, bool) {
	ref := fmt.Sprintf("Work order #%d", evt.WorkOrderID)

	switch evt.GetEventType() {
	case workorder.EventCreated:
		return message{
			subject: fmt.Sprintf("%s opened: %s", ref, evt.Title),
			markdownBody: fmt.Sprintf(
				"A new work order has been submitted.\n\n**%s**\n\nTriage it from the staff dashboard.", evt.Title),
			tenantFacing: false,
		}, true

	case workorder.EventApproved:
		return message{
			subject: fmt.Sprintf("%s approved", ref),
			markdownBody: fmt.Sprintf(
				"Your request **%s** has been approved. We will let you know when work begins.", evt.Title),
			tenantFacing: true,
		}, true

	case workorder.EventQuoteProvided:
		body := fmt.Sprintf(
			"Your request **%s** needs your approval before work can begin.\n\nQuoted amount: **%s**",
			evt.Title, formatCents(evt.QuotedAmountCents))
		if evt.QuoteNotes != "" {
			body += fmt.Sprintf("\n\n> %s", evt.QuoteNotes)
		}
		body += "\n\nPlease approve or decline the quote from your portal."
		return message{
			subject:      fmt.Sprintf("%s: quote ready for your approval", ref),
			markdownBody: body,
			tenantFacing: true,
		}, true

	case workorder.EventQuoteRejected:
		return message{
			subject: fmt.Sprintf("%s: tenant declined the quote", ref),
			markdownBody: fmt.Sprintf(
				"The tenant declined the quote for **%s**.\n\nReason: %s", evt.Title, orNone(evt.Reason)),
			tenantFacing: false,
		}, true

	case workorder.EventRejected:
		return message{
			subject: fmt.Sprintf("%s declined", ref),
			markdownBody: fmt.Sprintf(
				"Your request **%s** was declined.\n\nReason: %s", evt.Title, orNone(evt.Reason)),
			tenantFacing: true,
		}, true

	case workorder.EventStarted:
		return message{
			subject: fmt.Sprintf("%s: work has started", ref),
			markdownBody: fmt.Sprintf(
				"Work on **%s** is now underway.", evt.Title),
			tenantFacing: true,
		}, true

	case workorder.EventCompleted:
		body := fmt.Sprintf(
			"Work on **%s** is finished.", evt.Title)
		if evt.CompletionNotes != "" {
			body += fmt.Sprintf("\n\n> %s", evt.CompletionNotes)
		}
		body += "\n\nPlease review the result and sign off from your portal."
		return message{
			subject:      fmt.Sprintf("%s completed", ref),
			markdownBody: body,
			tenantFacing: true,
		}, true

	case workorder.EventSignedOff:
		body := fmt.Sprintf("The tenant signed off on **%s**.", evt.Title)
		if evt.Rating > 0 {
			body += fmt.Sprintf("\n\nRating: %d/5", evt.Rating)
		}
		return message{
			subject:      fmt.Sprintf("%s signed off", ref),
			markdownBody: body,
			tenantFacing: false,
		}, true
	}

	return message{}, false
}

func formatCents(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}

func orNone(s string) string {
	if s == "" {
		return "none given"
	}
	return s
}
