// accountapi_handler.go
/* Package accountapi exposes the account API's domain operations as typed Go methods. Each method
only shapes parameters for one action and hands the call to an Executor, which owns tokens,
retries and error mapping. */
package accountapi

import (
	"context"
	"strings"

	"github.com/deploymenttheory/go-api-account-client/httpclient"
	"github.com/deploymenttheory/go-api-account-client/logger"
	"github.com/deploymenttheory/go-api-account-client/response"
)

// Executor performs one logical API call. *httpclient.Client satisfies it.
type Executor interface {
	Execute(ctx context.Context, method, action string, params httpclient.Params, opts ...httpclient.RequestOption) (response.Response, error)
}

// AccountAPIHandler groups the domain operations of the account API.
type AccountAPIHandler struct {
	Executor Executor      // Executor sends the calls.
	Logger   logger.Logger // Logger is the structured logger used for logging.
}

// NewAccountAPIHandler returns a handler sending calls through exec. A nil logger discards output.
func NewAccountAPIHandler(exec Executor, log logger.Logger) *AccountAPIHandler {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &AccountAPIHandler{Executor: exec, Logger: log}
}

func joinIDs(ids []string) string {
	return strings.Join(ids, listSeparator)
}
