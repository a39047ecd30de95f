package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fastygo/taskmanager/domain"
)

func TestAttempt_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		events  []Event
		want    State
		wantErr bool
	}{
		{name: "submit", events: []Event{Submit}, want: PendingProviderVerification},
		{name: "verified", events: []Event{Submit, Verified}, want: Authenticated},
		{name: "rejected", events: []Event{Submit, Rejected}, want: Denied},
		{name: "verify without submit", events: []Event{Verified}, want: Unauthenticated, wantErr: true},
		{name: "double submit", events: []Event{Submit, Submit}, want: PendingProviderVerification, wantErr: true},
		{name: "authenticated is terminal", events: []Event{Submit, Verified, Rejected}, want: Authenticated, wantErr: true},
		{name: "denied is terminal", events: []Event{Submit, Rejected, Verified}, want: Denied, wantErr: true},
		{name: "denied cannot restart", events: []Event{Submit, Rejected, Submit}, want: Denied, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAttempt(domain.ProviderCredentials)
			var err error
			for _, ev := range tt.events {
				if err = a.Fire(ev); err != nil {
					break
				}
			}
			if tt.wantErr {
				var terr *TransitionError
				assert.ErrorAs(t, err, &terr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, a.State())
		})
	}
}

func TestAttempt_DenyKeepsReason(t *testing.T) {
	a := NewAttempt(domain.ProviderGitHub)
	require.NoError(t, a.Fire(Submit))

	err := a.Deny(domain.ErrStateInvalid)
	assert.ErrorIs(t, err, domain.ErrStateInvalid)
	assert.Equal(t, Denied, a.State())
	assert.Equal(t, domain.ErrStateInvalid, a.Reason())
	assert.Equal(t, "github", a.Method())
}

func TestAttempt_DenyBeforeSubmitFails(t *testing.T) {
	a := NewAttempt(domain.ProviderCredentials)
	err := a.Deny(domain.ErrInvalidCredentials)

	var terr *TransitionError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, Unauthenticated, terr.From)
	assert.Equal(t, "auth: rejected is not allowed in state unauthenticated", err.Error())
}
