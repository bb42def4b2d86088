package auth

import "context"

type Service interface {
	// Login verifies credentials and issues an access token.
	Login(ctx context.Context, req LoginRequest) (AuthResponse, error)

	// Signup creates an ADMIN account, gated by the signup secret.
	Signup(ctx context.Context, req SignupRequest) (AuthResponse, error)
}
