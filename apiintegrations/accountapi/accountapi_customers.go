// accountapi_customers.go
package accountapi

import (
	"context"
	"net/http"

	"github.com/deploymenttheory/go-api-account-client/httpclient"
	"github.com/deploymenttheory/go-api-account-client/response"
	"go.uber.org/zap"
)

// SetCustomerPackageRequest describes a package change for one customer. Empty id lists are sent as
// empty parameters, which clears them on the API side.
type SetCustomerPackageRequest struct {
	CustomerID           string
	PackageID            string
	AddOnIDs             []string
	PickPayChannelIDs    []string
	StandaloneChannelIDs []string
}

// GetCustomerInfo returns the customer identified by id. With useReferenceID the id is matched
// against the customer's external reference id instead of the cid.
func (h *AccountAPIHandler) GetCustomerInfo(ctx context.Context, id string, useReferenceID bool) (response.Response, error) {
	key := ParamCustomerID
	if useReferenceID {
		key = ParamReferenceID
	}
	h.Logger.Debug("Looking up customer", zap.String("Lookup Key", key))
	return h.Executor.Execute(ctx, http.MethodGet, ActionGetCustomerInfo, httpclient.Params{key: id})
}

// GetCustomerInfoByReferenceID is GetCustomerInfo(ctx, refID, true).
func (h *AccountAPIHandler) GetCustomerInfoByReferenceID(ctx context.Context, refID string) (response.Response, error) {
	return h.GetCustomerInfo(ctx, refID, true)
}

// SetCustomerPackage moves a customer onto a package, replacing add-ons and channel selections.
func (h *AccountAPIHandler) SetCustomerPackage(ctx context.Context, req SetCustomerPackageRequest) (response.Response, error) {
	params := httpclient.Params{
		ParamCustomerID:           req.CustomerID,
		ParamPackageID:            req.PackageID,
		ParamAddOnIDs:             joinIDs(req.AddOnIDs),
		ParamPickPayChannelIDs:    joinIDs(req.PickPayChannelIDs),
		ParamStandaloneChannelIDs: joinIDs(req.StandaloneChannelIDs),
	}
	h.Logger.Info("Setting customer package",
		zap.String("Customer ID", req.CustomerID),
		zap.String("Package ID", req.PackageID),
		zap.Int("Add-ons", len(req.AddOnIDs)),
	)
	return h.Executor.Execute(ctx, http.MethodPost, ActionSetCustomerPackage, params)
}
