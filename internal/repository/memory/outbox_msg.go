package memory

import (
	"context"
	"encoding/json"
	"maps"

	"github.com/google/uuid"

	"github.com/tuanvumaihuynh/product-catalog/internal/repository"
	"github.com/tuanvumaihuynh/product-catalog/internal/storage/db"
)

type outboxMsg struct {
	repository.ListUnprocessedOutboxMsgsResult
	processed bool
	err       *string
}

// OutboxMsg is a snapshot of a stored outbox message.
type OutboxMsg struct {
	ID        uuid.UUID
	Topic     string
	Headers   map[string]string
	Payload   json.RawMessage
	Processed bool
	Error     *string
}

type OutboxMsgRepository struct {
	s *Store
}

func (r *OutboxMsgRepository) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r *OutboxMsgRepository) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}

	r.s.outboxMsgs = append(r.s.outboxMsgs, &outboxMsg{
		ListUnprocessedOutboxMsgsResult: repository.ListUnprocessedOutboxMsgsResult{
			ID:           id,
			Topic:        params.Topic,
			Headers:      maps.Clone(params.Headers),
			Payload:      params.Payload,
			PartitionKey: params.PartitionKey,
		},
	})
	return nil
}

func (r *OutboxMsgRepository) ListUnprocessedOutboxMsgs(_ context.Context, params repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return nil, err
	}

	var out []repository.ListUnprocessedOutboxMsgsResult
	for _, msg := range r.s.outboxMsgs {
		if int32(len(out)) >= params.BatchSize {
			break
		}
		if !msg.processed {
			out = append(out, msg.ListUnprocessedOutboxMsgsResult)
		}
	}
	return out, nil
}

func (r *OutboxMsgRepository) BulkUpdateOutboxMsgs(_ context.Context, params repository.BulkUpdateOutboxMsgsParams) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failErr; err != nil {
		return err
	}

	byID := make(map[uuid.UUID]*string, len(params.Items))
	for _, item := range params.Items {
		byID[item.ID] = item.Error
	}
	for _, msg := range r.s.outboxMsgs {
		if errMsg, ok := byID[msg.ID]; ok {
			msg.processed = true
			msg.err = errMsg
		}
	}
	return nil
}

// OutboxMsgs returns a snapshot of every stored message in insertion order.
func (s *Store) OutboxMsgs() []OutboxMsg {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]OutboxMsg, 0, len(s.outboxMsgs))
	for _, msg := range s.outboxMsgs {
		out = append(out, OutboxMsg{
			ID:        msg.ID,
			Topic:     msg.Topic,
			Headers:   maps.Clone(msg.Headers),
			Payload:   msg.Payload,
			Processed: msg.processed,
			Error:     msg.err,
		})
	}
	return out
}
