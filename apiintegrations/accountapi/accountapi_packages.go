// accountapi_packages.go
package accountapi

import (
	"context"
	"net/http"

	"github.com/deploymenttheory/go-api-account-client/httpclient"
	"github.com/deploymenttheory/go-api-account-client/response"
)

// GetAllPackages lists every package on offer.
func (h *AccountAPIHandler) GetAllPackages(ctx context.Context) (response.Response, error) {
	return h.Executor.Execute(ctx, http.MethodGet, ActionGetPackages, nil)
}

// GetPackageChannels lists the channels of packageID. The API answers an unknown package with a
// successful but empty body, so a response without a non-empty id is reported as a RequestError.
func (h *AccountAPIHandler) GetPackageChannels(ctx context.Context, packageID string) (response.Response, error) {
	resp, err := h.Executor.Execute(ctx, http.MethodGet, ActionGetPackageChannels, httpclient.Params{ParamPackageID: packageID})
	if err != nil {
		return nil, err
	}
	if resp.String("id") == "" {
		return nil, &response.RequestError{Message: "package " + packageID + " not found"}
	}
	return resp, nil
}
