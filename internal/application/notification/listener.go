package notification

import (
	"context"
	"fmt"
	"strings"

	"quarters/internal/domain/shared/events"
	"quarters/internal/domain/workorder"
	"quarters/internal/shared/logger"
	"quarters/internal/shared/services/markdown"
)

// WorkOrderListener subscribes to all work order lifecycle events and sends
// the matching notification. Tenant-facing events go to the owning tenant's
// address; staff-facing ones go to the configured staff list.
type WorkOrderListener struct {
	sender         Sender
	directory      Directory
	markdownSvc    markdown.Service
	staffAddresses []string
	logger         logger.Interface
}

func NewWorkOrderListener(
	sender Sender,
	directory Directory,
	markdownSvc markdown.Service,
	staffAddresses []string,
	logger logger.Interface,
) *WorkOrderListener {
	return &WorkOrderListener{
		sender:         sender,
		directory:      directory,
		markdownSvc:    markdownSvc,
		staffAddresses: staffAddresses,
		logger:         logger,
	}
}

func (l *WorkOrderListener) CanHandle(eventType string) bool {
	return strings.HasPrefix(eventType, "workorder.")
}

func (l *WorkOrderListener) Handle(event events.DomainEvent) error {
	evt, ok := event.(workorder.LifecycleEvent)
	if !ok {
		return nil
	}

	msg, ok := compose(evt)
	if !ok {
		l.logger.Warnw("no notification template for event", "event_type", evt.GetEventType())
		return nil
	}

	recipients, err := l.recipients(evt, msg.tenantFacing)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		l.logger.Debugw("no recipients for event", "event_type", evt.GetEventType(), "work_order_id", evt.WorkOrderID)
		return nil
	}

	htmlBody, err := l.markdownSvc.ToHTMLSanitized(msg.markdownBody)
	if err != nil {
		return fmt.Errorf("render notification body: %w", err)
	}

	if err := l.sender.Send(recipients, msg.subject, htmlBody); err != nil {
		return fmt.Errorf("send notification for %s: %w", evt.GetEventType(), err)
	}

	l.logger.Infow("notification sent",
		"event_type", evt.GetEventType(),
		"work_order_id", evt.WorkOrderID,
		"recipient_count", len(recipients))
	return nil
}

func (l *WorkOrderListener) recipients(evt workorder.LifecycleEvent, tenantFacing bool) ([]string, error) {
	if !tenantFacing {
		return l.staffAddresses, nil
	}

	addr, err := l.directory.TenantAddress(context.Background(), evt.TenantID)
	if err != nil {
		return nil, fmt.Errorf("resolve tenant address for %d: %w", evt.TenantID, err)
	}
	if addr == "" {
		return nil, nil
	}
	return []string{addr}, nil
}
