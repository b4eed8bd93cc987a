package services

// ServiceContainer holds every service of the application; it is assembled
// once in internal/app and handed to the handlers.
type ServiceContainer struct {
	AuthService   AuthService
	UserService   UserService
	ReportService ReportService
}
