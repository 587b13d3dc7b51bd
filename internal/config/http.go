package config

const (
	HCType        = "Content-Type"
	HCacheControl = "Cache-Control"
	HCDisposition = "Content-Disposition"

	CTypeJSON = "application/json"
	CTypeHTML = "text/html"
)

const (
	HTTPErrMethodNotAllowed = "Method not allowed"
)

const (
	APIDraftsPath  = "/api/drafts"
	APIBackupPath  = "/api/drafts/backup"
	APIRestorePath = "/api/drafts/restore"
	APIHealthPath  = "/api/health"
	EventsPath     = "/events"
	MetricsPath    = "/metrics"
)

const (
	ServiceName    = "palette-drafts"
	ServiceVersion = "1.0.0"
)
