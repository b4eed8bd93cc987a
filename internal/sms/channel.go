package sms

import (
	"errors"

	"civix_backend/internal/logger"
)

// Channel names; used for logging only, isolation comes from each channel
// owning its own provider instance.
const (
	ChannelRegister        = "register"
	ChannelRecoverPassword = "recover_password"
)

var (
	// ErrSendFailed means the provider did not acknowledge a pending
	// verification after a send attempt.
	ErrSendFailed = errors.New("verification send failed")

	// ErrCodeRejected is returned for every non-approved check outcome.
	// The provider-side reason (wrong code, expired, not found) is logged
	// but never exposed.
	ErrCodeRejected = errors.New("verification code rejected")
)

// Channel is one isolated send/check pathway. The registration channel and
// the password-recovery channel are two Channel instances wrapping providers
// with different upstream service identifiers, so a code sent for one
// purpose can never validate the other.
type Channel struct {
	name     string
	provider Provider
}

func NewChannel(name string, provider Provider) *Channel {
	return &Channel{name: name, provider: provider}
}

// SendCode asks the provider to deliver a one-time code.
func (ch *Channel) SendCode(phone string) error {
	status, err := ch.provider.StartVerification(phone)
	if err != nil {
		logger.Error("verification send failed", "channel", ch.name, "error", err.Error())
		return ErrSendFailed
	}
	if status != StatusPending {
		logger.Error("verification send not pending", "channel", ch.name, "status", status)
		return ErrSendFailed
	}
	return nil
}

// CheckCode validates a submitted code. Any non-approved outcome collapses
// into ErrCodeRejected.
func (ch *Channel) CheckCode(phone, code string) error {
	status, err := ch.provider.CheckVerification(phone, code)
	if err != nil {
		logger.Warn("verification check failed", "channel", ch.name, "error", err.Error())
		return ErrCodeRejected
	}
	if status != StatusApproved {
		logger.Warn("verification code not approved", "channel", ch.name, "status", status)
		return ErrCodeRejected
	}
	return nil
}
