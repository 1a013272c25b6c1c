package relay

import (
	"encoding/json"

	"go.uber.org/zap"
)

const (
	KindOffer        = "offer"
	KindAnswer       = "answer"
	KindICECandidate = "ice_candidate"
)

// Emitter delivers an event to a single connection.
type Emitter interface {
	EmitTo(sid, event string, body any)
}

// SignalBody carries one negotiation message. The kind-specific payload stays
// an opaque json.RawMessage from sender to target; the relay never looks
// inside it. The same shape serves inbound (with room) and outbound (without).
type SignalBody struct {
	Room      string          `json:"room,omitempty"`
	To        string          `json:"to"`
	From      string          `json:"from"`
	Offer     json.RawMessage `json:"offer,omitempty"`
	Answer    json.RawMessage `json:"answer,omitempty"`
	Candidate json.RawMessage `json:"candidate,omitempty"`
}

type IRelayService interface {
	Forward(kind string, msg SignalBody)
}

type relayService struct {
	em Emitter
}

func NewRelayService(em Emitter) IRelayService {
	return &relayService{em: em}
}

// Forward passes a negotiation message to its target connection. Messages
// missing the room or the kind's payload field are dropped without feedback
// to the sender. Membership of sender or target is not verified.
func (r *relayService) Forward(kind string, msg SignalBody) {
	payload := msg.payloadFor(kind)
	if msg.Room == "" || len(payload) == 0 {
		zap.L().Debug("signal dropped", zap.String("kind", kind), zap.String("from", msg.From))
		return
	}

	out := SignalBody{To: msg.To, From: msg.From}
	switch kind {
	case KindOffer:
		out.Offer = payload
	case KindAnswer:
		out.Answer = payload
	case KindICECandidate:
		out.Candidate = payload
	}
	r.em.EmitTo(msg.To, kind, out)
}

func (m SignalBody) payloadFor(kind string) json.RawMessage {
	switch kind {
	case KindOffer:
		return m.Offer
	case KindAnswer:
		return m.Answer
	case KindICECandidate:
		return m.Candidate
	}
	return nil
}
