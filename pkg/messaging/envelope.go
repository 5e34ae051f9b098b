package messaging

import "encoding/json"

// OpType is the operation carried by an envelope. CREATE/UPDATE/DELETE
// apply to Subscription topics; RECEIVE applies to Delivery topics and
// carries a plain notification with no CRUD semantics.
type OpType string

const (
	OpCreate  OpType = "CREATE"
	OpRead    OpType = "READ"
	OpUpdate  OpType = "UPDATE"
	OpDelete  OpType = "DELETE"
	OpReceive OpType = "RECEIVE"
)

// Mode selects how a topic's wire payload is framed.
type Mode int

const (
	// ModePayload serializes the payload alone; there is no resource-id
	// or op-type framing (used for plain one-shot messages).
	ModePayload Mode = iota

	// ModeCRUD wraps the payload in an Envelope carrying resource-id and
	// op-type, used on Subscription topics.
	ModeCRUD

	// ModeReceive is like ModeCRUD but is always OpReceive and is used on
	// Delivery topics carrying plain notifications.
	ModeReceive
)

// Envelope is the CRUD wire format: {op_type, resource_id, resource_data}.
type Envelope struct {
	OpType       OpType          `json:"op_type"`
	ResourceID   string          `json:"resource_id"`
	ResourceData json.RawMessage `json:"resource_data,omitempty"`
}
