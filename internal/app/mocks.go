package app

import (
	"civix_backend/internal/logger"
	"civix_backend/internal/sms"
)

// MockSMSProvider stands in for Twilio in local development. Every send
// succeeds and the code "000000" is always accepted.
type MockSMSProvider struct{}

func (m *MockSMSProvider) StartVerification(phone string) (string, error) {
	logger.Info("[MOCK SMS] verification code sent", "phone", phone, "code", "000000")
	return sms.StatusPending, nil
}

func (m *MockSMSProvider) CheckVerification(phone, code string) (string, error) {
	if code == "000000" {
		return sms.StatusApproved, nil
	}
	return sms.StatusPending, nil
}
