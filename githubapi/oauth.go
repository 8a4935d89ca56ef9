/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package githubapi

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	oauthgithub "golang.org/x/oauth2/github"
)

// OAuth drives the GitHub web application flow: build the authorization
// URL, then exchange the callback code for a user token.
type OAuth struct {
	config *oauth2.Config
}

// NewOAuth wires up the flow with app credentials. The redirect URL must
// match one registered on the GitHub OAuth app.
func NewOAuth(clientID, clientSecret, redirectURL string) *OAuth {
	return &OAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Scopes:       []string{"repo"},
			Endpoint:     oauthgithub.Endpoint,
		},
	}
}

// AuthorizationURL returns the GitHub page to send the user to.
func (o *OAuth) AuthorizationURL() string {
	return o.config.AuthCodeURL("")
}

// Token is the subset of the exchange response handed back to callers.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
}

// Exchange trades the one-time callback code for an access token.
func (o *OAuth) Exchange(ctx context.Context, code string) (Token, error) {
	tok, err := o.config.Exchange(ctx, code)
	if err != nil {
		return Token{}, fmt.Errorf("exchanging code: %w", err)
	}

	out := Token{
		AccessToken: tok.AccessToken,
		TokenType:   tok.TokenType,
	}
	if scope, ok := tok.Extra("scope").(string); ok {
		out.Scope = scope
	}
	return out, nil
}
