package services

import (
	"context"

	"github.com/bizledger/bizledger_app/internal/core/domain"
)

// EntryNotifier is informed, after successful persistence, of newly created
// entries for downstream alerting. Implementations only carry the data; they
// do not format or deliver the end-user notification.
type EntryNotifier interface {
	PublishEntriesCreated(ctx context.Context, entries []domain.LedgerEntry) error
}

// DigestSender delivers the periodic due/overdue entry digest for one
// organization.
type DigestSender interface {
	SendDueDigest(ctx context.Context, recipient string, organizationName string, entries []domain.DueEntry) error
}
