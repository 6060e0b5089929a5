package accountapi

// Action names understood by the account API.
const (
	ActionGetCustomerInfo    = "get_cid_info"         // ActionGetCustomerInfo: look up one customer by cid or reference id.
	ActionGetPackages        = "get_packages"         // ActionGetPackages: list every package on offer.
	ActionGetPackageChannels = "get_package_channels" // ActionGetPackageChannels: list the channels of one package.
	ActionSetCustomerPackage = "set_cid_package"      // ActionSetCustomerPackage: change a customer's package and add-ons.
)

// Request parameter names.
const (
	ParamCustomerID           = "cid"
	ParamReferenceID          = "reference_id"
	ParamPackageID            = "package_id"
	ParamAddOnIDs             = "add_on_ids"
	ParamPickPayChannelIDs    = "pick_pay_channel_ids"
	ParamStandaloneChannelIDs = "standalone_channel_ids"
)

// listSeparator joins multi-valued parameters.
const listSeparator = ","
