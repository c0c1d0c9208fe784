// Package notification turns work order lifecycle events into messages for
// the right audience. Delivery runs off the async event dispatcher: a failed
// send is logged and dropped, it never affects the transition that caused it.
package notification

import "context"

// Sender delivers a rendered message.
type Sender interface {
	Send(to []string, subject, htmlBody string) error
}

// Directory resolves a tenant's contact address. Identity itself is managed
// outside this service; the portal only ever needs the address.
type Directory interface {
	TenantAddress(ctx context.Context, tenantID uint) (string, error)
}
