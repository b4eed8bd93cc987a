package sms

import (
	"errors"

	"github.com/twilio/twilio-go"
	verify "github.com/twilio/twilio-go/rest/verify/v2"
)

// TwilioProvider implements Provider on top of a Twilio Verify service.
// The service SID is fixed at construction; building two providers with
// different SIDs is what isolates the registration channel from the
// password-recovery channel.
type TwilioProvider struct {
	client     *twilio.RestClient
	serviceSID string
}

func NewTwilioProvider(client *twilio.RestClient, serviceSID string) *TwilioProvider {
	return &TwilioProvider{
		client:     client,
		serviceSID: serviceSID,
	}
}

// NewTwilioClient builds the shared REST client from account credentials.
func NewTwilioClient(accountSID, authToken string) *twilio.RestClient {
	return twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
}

func (p *TwilioProvider) StartVerification(phone string) (string, error) {
	params := &verify.CreateVerificationParams{}
	params.SetTo(phone)
	params.SetChannel("sms")

	resp, err := p.client.VerifyV2.CreateVerification(p.serviceSID, params)
	if err != nil {
		return "", err
	}
	if resp.Status == nil {
		return "", errors.New("twilio returned a verification without status")
	}
	return *resp.Status, nil
}

func (p *TwilioProvider) CheckVerification(phone, code string) (string, error) {
	params := &verify.CreateVerificationCheckParams{}
	params.SetTo(phone)
	params.SetCode(code)

	resp, err := p.client.VerifyV2.CreateVerificationCheck(p.serviceSID, params)
	if err != nil {
		return "", err
	}
	if resp.Status == nil {
		return "", errors.New("twilio returned a verification check without status")
	}
	return *resp.Status, nil
}
