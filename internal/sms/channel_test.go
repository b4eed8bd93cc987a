package sms

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedProvider returns canned statuses and records calls.
type scriptedProvider struct {
	startStatus string
	startErr    error
	checkStatus string
	checkErr    error

	startCalls []string
	checkCalls []string
}

func (p *scriptedProvider) StartVerification(phone string) (string, error) {
	p.startCalls = append(p.startCalls, phone)
	return p.startStatus, p.startErr
}

func (p *scriptedProvider) CheckVerification(phone, code string) (string, error) {
	p.checkCalls = append(p.checkCalls, phone+":"+code)
	return p.checkStatus, p.checkErr
}

func TestChannel_SendCode(t *testing.T) {
	t.Run("pending status succeeds", func(t *testing.T) {
		provider := &scriptedProvider{startStatus: StatusPending}
		ch := NewChannel(ChannelRegister, provider)

		require.NoError(t, ch.SendCode("+15551234567"))
		assert.Equal(t, []string{"+15551234567"}, provider.startCalls)
	})

	t.Run("provider error folds into ErrSendFailed", func(t *testing.T) {
		provider := &scriptedProvider{startErr: errors.New("twilio 503")}
		ch := NewChannel(ChannelRegister, provider)

		assert.ErrorIs(t, ch.SendCode("+15551234567"), ErrSendFailed)
	})

	t.Run("non-pending status folds into ErrSendFailed", func(t *testing.T) {
		provider := &scriptedProvider{startStatus: "canceled"}
		ch := NewChannel(ChannelRegister, provider)

		assert.ErrorIs(t, ch.SendCode("+15551234567"), ErrSendFailed)
	})
}

func TestChannel_CheckCode(t *testing.T) {
	t.Run("approved status succeeds", func(t *testing.T) {
		provider := &scriptedProvider{checkStatus: StatusApproved}
		ch := NewChannel(ChannelRecoverPassword, provider)

		require.NoError(t, ch.CheckCode("+15551234567", "123456"))
		assert.Equal(t, []string{"+15551234567:123456"}, provider.checkCalls)
	})

	t.Run("provider error folds into ErrCodeRejected", func(t *testing.T) {
		provider := &scriptedProvider{checkErr: errors.New("verification not found")}
		ch := NewChannel(ChannelRecoverPassword, provider)

		assert.ErrorIs(t, ch.CheckCode("+15551234567", "123456"), ErrCodeRejected)
	})

	t.Run("pending status folds into ErrCodeRejected", func(t *testing.T) {
		provider := &scriptedProvider{checkStatus: StatusPending}
		ch := NewChannel(ChannelRecoverPassword, provider)

		assert.ErrorIs(t, ch.CheckCode("+15551234567", "000000"), ErrCodeRejected)
	})
}
