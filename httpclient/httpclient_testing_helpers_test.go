// httpclient_testing_helpers_test.go
package httpclient

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/deploymenttheory/go-api-account-client/authenticationhandler"
	"github.com/deploymenttheory/go-api-account-client/logger"
	"github.com/deploymenttheory/go-api-account-client/tokencache"
	"github.com/deploymenttheory/go-api-account-client/transport"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

// recordedCall is one request seen by fakeTransport.
type recordedCall struct {
	Method string
	Values url.Values
}

func (c recordedCall) Action() string { return c.Values.Get(ParamAction) }

// scripted is a canned transport reply.
type scripted struct {
	status      int
	body        string
	contentType string
	err         error
}

func ok(body string) scripted { return scripted{status: http.StatusOK, body: body} }

// fakeTransport replays scripted replies per action. The last reply for an action repeats.
type fakeTransport struct {
	mu      sync.Mutex
	replies map[string][]scripted
	calls   []recordedCall
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{replies: map[string][]scripted{}}
}

func (f *fakeTransport) on(action string, replies ...scripted) *fakeTransport {
	f.replies[action] = append(f.replies[action], replies...)
	return f
}

func (f *fakeTransport) Get(_ context.Context, rawURL string) (*transport.Response, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	return f.reply(recordedCall{Method: http.MethodGet, Values: u.Query()})
}

func (f *fakeTransport) PostForm(_ context.Context, _ string, form url.Values) (*transport.Response, error) {
	return f.reply(recordedCall{Method: http.MethodPost, Values: form})
}

func (f *fakeTransport) reply(call recordedCall) (*transport.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, call)
	queue := f.replies[call.Action()]
	if len(queue) == 0 {
		return &transport.Response{StatusCode: http.StatusOK, Body: []byte(`{}`)}, nil
	}
	r := queue[0]
	if len(queue) > 1 {
		f.replies[call.Action()] = queue[1:]
	}
	if r.err != nil {
		return nil, r.err
	}
	ct := r.contentType
	if ct == "" {
		ct = "application/json"
	}
	return &transport.Response{
		StatusCode: r.status,
		Header:     http.Header{"Content-Type": []string{ct}},
		Body:       []byte(r.body),
	}, nil
}

func (f *fakeTransport) Calls() []recordedCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]recordedCall(nil), f.calls...)
}

func (f *fakeTransport) count(action string) int {
	n := 0
	for _, c := range f.Calls() {
		if c.Action() == action {
			n++
		}
	}
	return n
}

func testConfig() ClientConfig {
	return ClientConfig{
		BaseURL: "https://api.example.com/reseller/api.php",
		Credentials: authenticationhandler.ClientCredentials{
			Username: "reseller",
			Password: "hunter2",
			APIKey:   "k-123",
		},
	}
}

func newMemoryCache(t *testing.T, now tokencache.Clock) *tokencache.Memory {
	t.Helper()
	m, err := tokencache.NewMemory(tokencache.WithMemoryClock(now))
	require.NoError(t, err)
	return m
}

func fixedClock() tokencache.Clock {
	return func() time.Time { return testNow }
}

func newTestClient(t *testing.T, cfg ClientConfig, tr transport.Transport, cache tokencache.TokenCache, opts ...ClientOption) *Client {
	t.Helper()
	base := []ClientOption{WithTransport(tr), WithLogger(logger.NewNopLogger()), WithClock(fixedClock())}
	c, err := BuildClient(cfg, cache, append(base, opts...)...)
	require.NoError(t, err)
	return c
}
