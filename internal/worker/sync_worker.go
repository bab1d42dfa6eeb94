// Package worker exports locally stored transactions to an external sheet,
// driven by AMQP messages with a periodic pending-scan as backup.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"fintrack/internal/amqp"
	"fintrack/internal/sheets"
	"fintrack/internal/storage"
)

type SyncWorker struct {
	storage   *storage.SQLiteRepository
	appender  sheets.TransactionAppender
	remover   sheets.TransactionRemover
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, appender sheets.TransactionAppender, remover sheets.TransactionRemover, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		appender:  appender,
		remover:   remover,
		batchSize: batchSize,
	}
}

// HandleMessage dispatches one AMQP message by kind.
func (w *SyncWorker) HandleMessage(ctx context.Context, msg *amqp.Message) error {
	switch msg.Kind {
	case amqp.KindSync:
		return w.handleSync(ctx, msg)
	case amqp.KindDelete:
		return w.handleDelete(ctx, msg)
	default:
		// Unknown kinds are dropped, requeueing them would loop forever
		slog.WarnContext(ctx, "Ignoring message with unknown kind", "kind", msg.Kind, "id", msg.ID)
		return nil
	}
}

func (w *SyncWorker) handleSync(ctx context.Context, msg *amqp.Message) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"version", msg.Version)

	t, err := w.storage.GetTransaction(ctx, msg.ID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// Deleted before the export ran; nothing to do
			slog.WarnContext(ctx, "Transaction gone before export", "id", msg.ID)
			return nil
		}
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	return w.export(ctx, t.ID, func() error {
		_, err := w.appender.Append(ctx, t)
		return err
	})
}

func (w *SyncWorker) handleDelete(ctx context.Context, msg *amqp.Message) error {
	slog.InfoContext(ctx, "Processing delete message", "id", msg.ID)

	if w.remover == nil {
		slog.WarnContext(ctx, "No remover configured, skipping sheet deletion", "id", msg.ID)
		return nil
	}

	if err := w.remover.Remove(ctx, msg.ID); err != nil {
		return fmt.Errorf("remove transaction from sheet: %w", err)
	}

	slog.InfoContext(ctx, "Removed transaction from sheet", "id", msg.ID)
	return nil
}

// ProcessPending exports transactions that never got a sync message.
// This is a backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	return w.processPending(ctx, w.batchSize)
}

// StartupSyncCheck drains the pending backlog at worker startup, using a
// larger batch to recover from downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	return w.processPending(ctx, w.batchSize*5)
}

func (w *SyncWorker) processPending(ctx context.Context, limit int) error {
	pending, err := w.storage.PendingSync(ctx, limit)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	synced := 0
	failed := 0
	for _, p := range pending {
		t, err := w.storage.GetTransaction(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to load pending transaction", "id", p.ID, "error", err)
			if markErr := w.storage.MarkSyncError(ctx, p.ID); markErr != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", markErr)
			}
			failed++
			continue
		}

		if err := w.export(ctx, t.ID, func() error {
			_, err := w.appender.Append(ctx, t)
			return err
		}); err != nil {
			slog.ErrorContext(ctx, "Failed to export pending transaction", "id", p.ID, "error", err)
			failed++
			continue
		}
		synced++
	}

	slog.InfoContext(ctx, "Pending sync pass completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)

	return nil
}

// export runs the sheet write and records the outcome in storage.
func (w *SyncWorker) export(ctx context.Context, id int64, appendRow func() error) error {
	if err := appendRow(); err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", id, "error", markErr)
		}
		return fmt.Errorf("append to sheet: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id); err != nil {
		// The export itself succeeded, only the bookkeeping failed
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", id, "error", err)
	}

	slog.InfoContext(ctx, "Exported transaction", "id", id)
	return nil
}
