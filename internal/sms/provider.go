package sms

// Verification outcomes as reported by the provider.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
)

// Provider abstracts the out-of-band SMS verification service. One provider
// instance is bound to exactly one upstream verification service, so two
// channels never share code state.
type Provider interface {
	// StartVerification asks the provider to send a one-time code to the
	// phone number and returns the resulting verification status.
	StartVerification(phone string) (string, error)

	// CheckVerification submits a code for the phone number and returns the
	// provider's verdict status.
	CheckVerification(phone, code string) (string, error)
}
