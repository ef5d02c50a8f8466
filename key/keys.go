// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Player Document - these keys shape the document every channel binding is rendered from.
const (
	PlayerOrigin       = "player.origin"
	PlayerHost         = "player.host"
	PlayerBackground   = "player.background"
	PlayerTimeInterval = "player.time_interval"
	PlayerVars         = "player.vars"
)

// Browser Host - these keys configure the headless Chromium script host.
const (
	BrowserBin      = "browser.bin"
	BrowserHeadless = "browser.headless"
)

// History Tracking - these keys configure the persistence of resume positions.
const (
	HistorySave   = "history.save"
	HistoryResume = "history.resume"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
