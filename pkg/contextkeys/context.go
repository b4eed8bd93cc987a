package contextkeys

// contextKey is a private type so keys cannot collide with other packages.
type contextKey string

const (
	// DBContextKey holds the *gorm.DB handle (pool or test transaction).
	DBContextKey = contextKey("db")

	// ResetUserIDKey holds the user id validated by the reset-token guard.
	ResetUserIDKey = contextKey("resetUserID")
)
