package ws

import "encoding/json"

// Envelope wraps every inbound WS frame.
type Envelope struct {
	Event string          `json:"event"`
	Body  json.RawMessage `json:"body,omitempty"`
}

// outEnvelope wraps everything the server sends.
type outEnvelope struct {
	Event string `json:"event"`
	Body  any    `json:"body,omitempty"`
}

// ConnContext carries the sender's identity into event handlers.
type ConnContext struct {
	SID string
}

// RoomRequest is the body for "join_room", "leave_room" and "get_room_clients".
type RoomRequest struct {
	Room string `json:"room"`
}

// ConnectedBody tells a fresh client its assigned connection id.
type ConnectedBody struct {
	SID string `json:"sid"`
}

// RoomsBody answers "get_rooms".
type RoomsBody struct {
	Rooms []string `json:"rooms"`
}

// ClientsBody answers "get_clients".
type ClientsBody struct {
	Clients []string `json:"clients"`
}

// ErrorBody is sent for protocol-level failures (unknown event, bad body).
type ErrorBody struct {
	Error string `json:"error"`
}
