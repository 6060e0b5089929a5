package proxy

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeProxyNoURL(t *testing.T) {
	tr := &http.Transport{}
	require.NoError(t, InitializeProxy(tr, "", "", "", nil))
	assert.Nil(t, tr.Proxy)
}

func TestInitializeProxyWithCredentials(t *testing.T) {
	tr := &http.Transport{}
	require.NoError(t, InitializeProxy(tr, "http://proxy.internal:3128", "alice", "s3cret", nil))
	require.NotNil(t, tr.Proxy)

	u, err := tr.Proxy(httptest.NewRequest(http.MethodGet, "https://api.example.com/", nil))
	require.NoError(t, err)
	assert.Equal(t, "proxy.internal:3128", u.Host)
	assert.Equal(t, "alice", u.User.Username())
	pw, _ := u.User.Password()
	assert.Equal(t, "s3cret", pw)
}

func TestInitializeProxyInvalid(t *testing.T) {
	assert.Error(t, InitializeProxy(&http.Transport{}, "proxy-without-scheme", "", "", nil))
}
