package constant

// Wire-level identifiers shared by the Go bridge and the embedded player document.
const (
	// MessageScheme is the scheme of every origin string the player document emits.
	MessageScheme = "ytplayer"

	// BridgeObject is the global object the player document installs its command functions on.
	BridgeObject = "ytbridge"

	// PostBinding is the native function the player document calls to emit a message.
	PostBinding = "ytbridgePost"

	// IframeAPI is the script URL of the remote player API.
	IframeAPI = "https://www.youtube.com/iframe_api"

	// DefaultOrigin is the origin the player document is served from when none is configured.
	DefaultOrigin = "https://www.youtube.com"
)

// Script hosts the player document can run in.
const (
	HostGoja    = "goja"
	HostBrowser = "browser"
)
