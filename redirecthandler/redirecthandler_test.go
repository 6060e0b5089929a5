package redirecthandler

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func request(t *testing.T, method, rawURL string) *http.Request {
	t.Helper()
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	return &http.Request{Method: method, URL: u}
}

// TestRedirectHandler_CheckRedirect covers the non-idempotent, limit, loop and cross-host rules.
func TestRedirectHandler_CheckRedirect(t *testing.T) {
	tests := []struct {
		name        string
		maxRedirect int
		next        string
		via         []*http.Request
		expectedErr error
	}{
		{
			name:        "Same Host GET Followed",
			maxRedirect: 5,
			next:        "https://api.example.com/v2/?action=x",
			via:         []*http.Request{request(t, http.MethodGet, "https://api.example.com/?action=x")},
			expectedErr: nil,
		},
		{
			name:        "POST Never Followed",
			maxRedirect: 5,
			next:        "https://api.example.com/v2/",
			via:         []*http.Request{request(t, http.MethodPost, "https://api.example.com/")},
			expectedErr: http.ErrUseLastResponse,
		},
		{
			name:        "Cross Host Refused",
			maxRedirect: 5,
			next:        "https://evil.example.net/?token=abc",
			via:         []*http.Request{request(t, http.MethodGet, "https://api.example.com/?token=abc")},
			expectedErr: http.ErrUseLastResponse,
		},
		{
			name:        "Maximum Redirects Reached",
			maxRedirect: 1,
			next:        "https://api.example.com/b",
			via:         []*http.Request{request(t, http.MethodGet, "https://api.example.com/a")},
			expectedErr: &MaxRedirectsError{MaxRedirects: 1},
		},
		{
			name:        "Redirect Loop Detection",
			maxRedirect: 5,
			next:        "https://api.example.com/a",
			via: []*http.Request{
				request(t, http.MethodGet, "https://api.example.com/a"),
				request(t, http.MethodGet, "https://api.example.com/b"),
			},
			expectedErr: &RedirectLoopError{URL: "https://api.example.com/a"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewRedirectHandler(nil, tc.maxRedirect)
			err := handler.checkRedirect(request(t, http.MethodGet, tc.next), tc.via)
			assert.Equal(t, tc.expectedErr, err)
		})
	}
}

func TestSetupRedirectHandlerDisabled(t *testing.T) {
	client := &http.Client{}
	require.NoError(t, SetupRedirectHandler(client, false, 0, nil))
	require.NotNil(t, client.CheckRedirect)

	err := client.CheckRedirect(request(t, http.MethodGet, "https://api.example.com/b"),
		[]*http.Request{request(t, http.MethodGet, "https://api.example.com/a")})
	assert.Equal(t, http.ErrUseLastResponse, err)
}

func TestSetupRedirectHandlerInvalidMax(t *testing.T) {
	assert.Error(t, SetupRedirectHandler(&http.Client{}, true, 0, nil))
}

func TestHasLoop(t *testing.T) {
	a, _ := url.Parse("https://api.example.com/a")
	b, _ := url.Parse("https://api.example.com/b")

	assert.False(t, hasLoop([]*url.URL{a, b}))
	assert.True(t, hasLoop([]*url.URL{a, b, a}))
}
