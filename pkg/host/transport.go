package host

import (
	"encoding/json"
	"io"
	"sync"
)

// Transport carries messages to the host environment. Implementations must
// be safe for use from the editing engine's synchronous call path: a Send
// that blocks blocks the edit.
type Transport interface {
	Send(Message) error
}

// JSONTransport frames each message as one JSON line on a writer. This is
// the shape extension messaging and local preview servers consume.
type JSONTransport struct {
	mu  sync.Mutex
	w   io.Writer
	enc *json.Encoder
}

// NewJSONTransport creates a transport writing newline-delimited JSON.
func NewJSONTransport(w io.Writer) *JSONTransport {
	return &JSONTransport{w: w, enc: json.NewEncoder(w)}
}

// Send encodes one message.
func (t *JSONTransport) Send(m Message) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enc.Encode(m)
}

// Recorder is an in-memory transport for tests and dry runs.
type Recorder struct {
	mu       sync.Mutex
	messages []Message
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

// Send stores the message.
func (r *Recorder) Send(m Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, m)
	return nil
}

// Messages returns a copy of everything sent so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Message(nil), r.messages...)
}

// Reset drops recorded messages.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
