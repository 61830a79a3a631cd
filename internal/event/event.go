package event

import (
	"time"

	"github.com/osse101/MawRitual_Go/internal/domain"
)

type Type string

// Metadata carries lookup hints next to the payload
type Metadata map[string]interface{}

// Event is the envelope published on the bus and written to the dead-letter
// file. Payload holds one of the typed V1 payloads until it crosses JSON,
// after which DecodePayload recovers it.
type Event struct {
	Version  string      `json:"version"`
	Type     Type        `json:"type"`
	Payload  interface{} `json:"payload"`
	Metadata Metadata    `json:"metadata,omitempty"`
}

// MetadataValue returns the metadata entry for key, or nil
func (e Event) MetadataValue(key string) interface{} {
	return e.Metadata[key]
}

// Ritual event types
const (
	RitualCompleted Type = domain.EventTypeRitualCompleted
	FallbackMinted  Type = domain.EventTypeFallbackMinted
	ConfigUpdated   Type = domain.EventTypeConfigUpdated
)

// ItemAmountV1 is one (item, amount) pair of a payload
type ItemAmountV1 struct {
	ItemID uint64 `json:"item_id"`
	Amount uint64 `json:"amount"`
}

// RewardV1 describes what an action minted
type RewardV1 struct {
	ItemID       uint64 `json:"item_id"`
	Amount       uint64 `json:"amount"`
	Requested    uint64 `json:"requested"`
	FallbackUsed bool   `json:"fallback_used"`
}

// DrawV1 is one recorded RNG draw. Seed is 0x-prefixed hex.
type DrawV1 struct {
	Nonce   uint64 `json:"nonce"`
	Seed    string `json:"seed"`
	Purpose string `json:"purpose"`
}

// RitualCompletedPayloadV1 is the typed payload for ritual completion events
type RitualCompletedPayloadV1 struct {
	ActionID   string         `json:"action_id"`
	Actor      string         `json:"actor"`
	Kind       string         `json:"kind"`
	Height     int64          `json:"height"`
	Burned     []ItemAmountV1 `json:"burned"`
	Reward     RewardV1       `json:"reward"`
	Success    *bool          `json:"success,omitempty"`
	SuccessBps *uint32        `json:"success_bps,omitempty"`
	Tier       string         `json:"tier,omitempty"`
	Draws      []DrawV1       `json:"draws"`
	Timestamp  int64          `json:"timestamp"`
}

// FallbackMintedPayloadV1 is the typed payload for supply guard substitutions
type FallbackMintedPayloadV1 struct {
	ActionID  string `json:"action_id"`
	Actor     string `json:"actor"`
	Requested uint64 `json:"requested"`
	Minted    uint64 `json:"minted"`
	Amount    uint64 `json:"amount"`
	Reason    string `json:"reason"`
	Timestamp int64  `json:"timestamp"`
}

// ConfigUpdatedPayloadV1 is the typed payload for admin updates
type ConfigUpdatedPayloadV1 struct {
	Operation string      `json:"operation"`
	Revision  uint64      `json:"revision"`
	Detail    interface{} `json:"detail,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// NewRitualCompletedEvent creates a ritual completion event
func NewRitualCompletedEvent(payload RitualCompletedPayloadV1) Event {
	if payload.Timestamp == 0 {
		payload.Timestamp = time.Now().Unix()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    RitualCompleted,
		Payload: payload,
		Metadata: Metadata{
			MetadataKeyActor: payload.Actor,
			MetadataKeyKind:  payload.Kind,
		},
	}
}

// NewFallbackMintedEvent creates a fallback substitution event
func NewFallbackMintedEvent(actionID, actor string, requested, minted, amount uint64, reason error) Event {
	payload := FallbackMintedPayloadV1{
		ActionID:  actionID,
		Actor:     actor,
		Requested: requested,
		Minted:    minted,
		Amount:    amount,
		Timestamp: time.Now().Unix(),
	}
	if reason != nil {
		payload.Reason = reason.Error()
	}
	return Event{
		Version: EventSchemaVersion,
		Type:    FallbackMinted,
		Payload: payload,
		Metadata: Metadata{MetadataKeyActor: actor},
	}
}

// NewConfigUpdatedEvent creates an admin update event
func NewConfigUpdatedEvent(operation string, revision uint64, detail interface{}) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ConfigUpdated,
		Payload: ConfigUpdatedPayloadV1{
			Operation: operation,
			Revision:  revision,
			Detail:    detail,
			Timestamp: time.Now().Unix(),
		},
	}
}
