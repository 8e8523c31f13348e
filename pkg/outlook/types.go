package outlook

import (
	"net/http"

	json "github.com/goccy/go-json"
)

// Payload is a raw service object kept verbatim for round-trip fidelity.
type Payload map[string]any

// ID returns the identity field. Legacy list responses use "Id", object
// payloads use "id"; both resolve here so nothing else branches on it.
func (p Payload) ID() (string, bool) {
	s := p.String("id", "Id")
	return s, s != ""
}

// String returns the first non-empty string value found under keys.
func (p Payload) String(keys ...string) string {
	for _, k := range keys {
		if v, ok := p[k].(string); ok && v != "" {
			return v
		}
	}
	return ""
}

// Value returns the first value present under keys.
func (p Payload) Value(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := p[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// Object returns the nested mapping under key, if it is one.
func (p Payload) Object(key string) (map[string]any, bool) {
	m, ok := p[key].(map[string]any)
	return m, ok
}

// Clone deep-copies the nested maps and slices of p.
func (p Payload) Clone() Payload {
	if p == nil {
		return nil
	}
	return Payload(cloneMap(p))
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case Payload:
		return Payload(cloneMap(t))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(t))
		for i, e := range t {
			out[i] = cloneMap(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}

// Response is a completed HTTP exchange.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Failed reports a client or server error status.
func (r *Response) Failed() bool {
	return r.StatusCode > 399
}

// JSON decodes the body as a single object.
func (r *Response) JSON() (Payload, error) {
	var p Payload
	if err := json.Unmarshal(r.Body, &p); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *Response) Text() string {
	return string(r.Body)
}

// EmailAddress is a named mailbox.
type EmailAddress struct {
	Address string `json:"address"`
	Name    string `json:"name"`
}

// Contact is a directory entry resolvable to an attendee.
type Contact struct {
	ID             string
	DisplayName    string
	EmailAddresses []EmailAddress
}

// FirstEmailAddress returns the first address with a non-empty mailbox.
// A missing display name on the address falls back to the contact's.
func (c Contact) FirstEmailAddress() (EmailAddress, error) {
	for _, e := range c.EmailAddresses {
		if e.Address == "" {
			continue
		}
		if e.Name == "" {
			e.Name = c.DisplayName
		}
		return e, nil
	}
	return EmailAddress{}, ErrNoEmailAddress
}

// Group is a contact folder; its members are contacts.
type Group struct {
	ID       string
	Contacts []Contact
}
