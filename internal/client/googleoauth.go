package client

import (
	"context"
	"fmt"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/rahnacm97/Talentra/internal/config"
	"github.com/rahnacm97/Talentra/internal/service"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleIssuer = "https://accounts.google.com"

// GoogleOAuthClient exchanges an authorization code for a Google-verified
// identity. The ID token returned by the exchange is verified against
// Google's keys before any claim is trusted.
type GoogleOAuthClient struct {
	conf     *oauth2.Config
	verifier *oidc.IDTokenVerifier
}

func NewGoogleOAuthClient(ctx context.Context, cfg config.GoogleConfig) (*GoogleOAuthClient, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
	}

	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("discover google oidc provider: %w", err)
	}

	return &GoogleOAuthClient{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
		verifier: provider.Verifier(&oidc.Config{ClientID: cfg.ClientID}),
	}, nil
}

func (c *GoogleOAuthClient) ExchangeCode(ctx context.Context, code string) (*service.ExternalIdentity, error) {
	token, err := c.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange auth code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, fmt.Errorf("token response has no id_token")
	}

	idToken, err := c.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}

	var claims struct {
		Email         string `json:"email"`
		EmailVerified bool   `json:"email_verified"`
		Name          string `json:"name"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, fmt.Errorf("parse id token claims: %w", err)
	}
	if claims.Email == "" || claims.Name == "" {
		return nil, fmt.Errorf("id token is missing email or name")
	}

	return &service.ExternalIdentity{
		Email:     claims.Email,
		Name:      claims.Name,
		SubjectID: idToken.Subject,
	}, nil
}
