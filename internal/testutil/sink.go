package testutil

import (
	"encoding/json"
	"sync"
)

// Sent is one message captured by a Sink.
type Sent struct {
	To   string
	Type string
	Data json.RawMessage
}

// Sink records every message sent to every connection, JSON encoded the way
// the websocket hub would encode it.
type Sink struct {
	mu   sync.Mutex
	sent []Sent
}

func (s *Sink) Send(connId string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		panic("testutil: unencodable message: " + err.Error())
	}
	var env struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		panic("testutil: message is not an envelope: " + err.Error())
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, Sent{To: connId, Type: env.Type, Data: env.Data})
}

// To returns the messages of type typ delivered to connId, oldest first.
func (s *Sink) To(connId, typ string) []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []json.RawMessage
	for _, m := range s.sent {
		if m.To == connId && m.Type == typ {
			out = append(out, m.Data)
		}
	}
	return out
}

// Last decodes the latest message of type typ delivered to connId into v and
// reports whether one existed.
func (s *Sink) Last(connId, typ string, v any) bool {
	msgs := s.To(connId, typ)
	if len(msgs) == 0 {
		return false
	}
	if err := json.Unmarshal(msgs[len(msgs)-1], v); err != nil {
		panic("testutil: " + err.Error())
	}
	return true
}

// Count returns how many messages of type typ reached connId.
func (s *Sink) Count(connId, typ string) int {
	return len(s.To(connId, typ))
}

// Reset forgets everything recorded so far.
func (s *Sink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = nil
}
