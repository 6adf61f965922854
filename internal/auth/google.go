package auth

import (
	"context"

	"google.golang.org/api/idtoken"
)

// GoogleIdentity is the subset of a verified Google ID token the platform
// cares about.
type GoogleIdentity struct {
	Email         string
	Name          string
	EmailVerified bool
	// TokenID is the token's jti claim, used as a placeholder password when
	// auto-provisioning a first-time Google user.
	TokenID string
}

// GoogleVerifier validates third-party Google identity tokens.
type GoogleVerifier interface {
	Verify(ctx context.Context, idToken string) (*GoogleIdentity, error)
}

type googleVerifier struct {
	clientID string
}

// NewGoogleVerifier builds a verifier bound to the OAuth client id that
// issued tokens must be audienced to.
func NewGoogleVerifier(clientID string) GoogleVerifier {
	return &googleVerifier{clientID: clientID}
}

func (v *googleVerifier) Verify(ctx context.Context, token string) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, token, v.clientID)
	if err != nil {
		return nil, err
	}

	identity := &GoogleIdentity{}
	if email, ok := payload.Claims["email"].(string); ok {
		identity.Email = email
	}
	if name, ok := payload.Claims["name"].(string); ok {
		identity.Name = name
	}
	if verified, ok := payload.Claims["email_verified"].(bool); ok {
		identity.EmailVerified = verified
	}
	if jti, ok := payload.Claims["jti"].(string); ok {
		identity.TokenID = jti
	}
	return identity, nil
}
