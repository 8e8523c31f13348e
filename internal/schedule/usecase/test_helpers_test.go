package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"o365-calendar/pkg/outlook"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type call struct {
	method string
	url    string
	body   string
	header http.Header
}

// fakeTransport serves list responses by the longest URL substring match and returns a fixed
// response for writes.
type fakeTransport struct {
	valid      bool
	mode       outlook.AuthMode
	credential bool

	lists   map[string][]outlook.Payload
	getErr  error
	resp    *outlook.Response
	respErr error

	calls []call
}

func (f *fakeTransport) IsAuthValid() bool { return f.valid }
func (f *fakeTransport) ActiveMode() (outlook.AuthMode, bool) {
	return f.mode, f.mode != 0
}
func (f *fakeTransport) HasCredential() bool { return f.credential }

func (f *fakeTransport) Get(ctx context.Context, url string) ([]outlook.Payload, error) {
	f.calls = append(f.calls, call{method: http.MethodGet, url: url})
	if f.getErr != nil {
		return nil, f.getErr
	}
	var match string
	for key := range f.lists {
		if strings.Contains(url, key) && len(key) > len(match) {
			match = key
		}
	}
	items := f.lists[match]
	out := make([]outlook.Payload, len(items))
	for i, p := range items {
		out[i] = p.Clone()
	}
	return out, nil
}

func (f *fakeTransport) Post(ctx context.Context, url string, body []byte, headers http.Header) (*outlook.Response, error) {
	return f.write(http.MethodPost, url, body, headers)
}

func (f *fakeTransport) Patch(ctx context.Context, url string, body []byte, headers http.Header) (*outlook.Response, error) {
	return f.write(http.MethodPatch, url, body, headers)
}

func (f *fakeTransport) Delete(ctx context.Context, url string, headers http.Header) (*outlook.Response, error) {
	return f.write(http.MethodDelete, url, nil, headers)
}

func (f *fakeTransport) write(method, url string, body []byte, headers http.Header) (*outlook.Response, error) {
	f.calls = append(f.calls, call{method: method, url: url, body: string(body), header: headers})
	return f.resp, f.respErr
}

func (f *fakeTransport) lastCall() call {
	if len(f.calls) == 0 {
		return call{}
	}
	return f.calls[len(f.calls)-1]
}

func jsonResponse(status int, body string) *outlook.Response {
	return &outlook.Response{StatusCode: status, Header: http.Header{}, Body: []byte(body)}
}

var fixedNow = time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)

func newTestUseCase(t *fakeTransport) *implUseCase {
	return &implUseCase{
		l:         &mockLogger{},
		transport: t,
		now:       func() time.Time { return fixedNow },
	}
}
