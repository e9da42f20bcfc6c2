package api

import (
	"context"

	"homebook/internal/domain"
	"homebook/internal/session"

	"go.uber.org/zap"
)

// AuthClient signs the user in or up against the expense API and
// stores the resulting token. Authentication calls carry no bearer
// credential — there is none yet.
type AuthClient struct {
	api     *Client
	session *session.Store
	logger  *zap.Logger
}

// NewAuthClient creates an AuthClient.
func NewAuthClient(api *Client, sess *session.Store, logger *zap.Logger) *AuthClient {
	return &AuthClient{api: api, session: sess, logger: logger}
}

// Authenticate exchanges credentials for a token and stores it.
func (a *AuthClient) Authenticate(ctx context.Context, email, password string) error {
	var resp domain.TokenResponse
	err := a.api.postDecode(ctx, "authenticate", domain.Credentials{Email: email, Password: password}, &resp)
	if err != nil {
		return err
	}
	a.logger.Info("signed in", zap.String("email", email))
	return a.session.Set(resp.Token)
}

// Signup registers a new user and stores the returned token.
func (a *AuthClient) Signup(ctx context.Context, name, email, password string) error {
	var resp domain.TokenResponse
	err := a.api.postDecode(ctx, "signup", domain.SignupRequest{Name: name, Email: email, Password: password}, &resp)
	if err != nil {
		return err
	}
	a.logger.Info("signed up", zap.String("email", email))
	return a.session.Set(resp.Token)
}

// Logout destroys the local session. No server call is involved.
func (a *AuthClient) Logout() error {
	return a.session.Clear()
}
