package handlers

// AppHandlers bundles every handler for route registration.
type AppHandlers struct {
	Auth   *AuthHandler
	User   *UserHandler
	Report *ReportHandler
}
