package ws

import (
	"encoding/json"
)

const (
	EventLegalMoves = "legal_moves_request"
	EventChoose     = "choose_request"
)

type Incoming struct {
	Event string          `json:"event"`
	ID    int             `json:"id"`
	Data  json.RawMessage `json:"data"`
}

// Outgoing answers the Incoming message with the same ID. Exactly one of Data and Error is set.
type Outgoing struct {
	ID    int    `json:"id"`
	Data  any    `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}
