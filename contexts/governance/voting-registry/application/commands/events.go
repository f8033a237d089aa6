package commands

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"quorum/contexts/governance/voting-registry/ports"
)

// appendRegistryEvent writes one audit record for a committed mutation.
// Records are partitioned by session so session-scoped consumers observe a
// stable order. A nil outbox is treated as no-op for pure read/test wiring.
func (uc *RegistryUseCase) appendRegistryEvent(
	ctx context.Context,
	eventType string,
	sessionID uint64,
	occurredAt time.Time,
	data map[string]any,
) error {
	if uc.Outbox == nil {
		return nil
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return uc.Outbox.AppendOutbox(ctx, ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "voting-registry",
		TraceID:          eventID,
		SchemaVersion:    1,
		PartitionKeyPath: "session_id",
		PartitionKey:     strconv.FormatUint(sessionID, 10),
		Data:             payload,
	})
}
