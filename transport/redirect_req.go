// redirect_req.go
package transport

import (
	"net/http"

	"github.com/imroc/req/v3"
)

// noPostRedirectPolicy stops redirects of anything but GET and HEAD.
func noPostRedirectPolicy() req.RedirectPolicy {
	return func(r *http.Request, via []*http.Request) error {
		if m := via[0].Method; m != http.MethodGet && m != http.MethodHead {
			return http.ErrUseLastResponse
		}
		return nil
	}
}
