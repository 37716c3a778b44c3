package ports

import (
	"context"

	"github.com/cinevault/catalog-api/internal/core/domain"
)

// AuditSink receives denial events from guards. Record must never block and
// never fail: a full queue drops the event, a broken sink is invisible to
// the guard that emitted it.
type AuditSink interface {
	Record(event domain.AuditEvent)
}

// AuditRepository is the durable backend the audit dispatcher drains into.
type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
}
