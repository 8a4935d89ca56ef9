/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package main runs the GitPal API server: repository analysis, LLM code
// fixes, and GitHub commit/PR flows over HTTP.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/gin-gonic/gin"
	"github.com/sethvargo/go-envconfig"

	"chainguard.dev/gitpal/analyzer"
	"chainguard.dev/gitpal/fixer"
	"chainguard.dev/gitpal/githubapi"
	"chainguard.dev/gitpal/llm"
	"chainguard.dev/gitpal/server"
)

type config struct {
	Port int `env:"PORT,default=8000"`

	// GitHub OAuth app credentials. Optional: without them the auth
	// endpoints report that login is unavailable.
	GitHubClientID     string `env:"GITHUB_CLIENT_ID"`
	GitHubClientSecret string `env:"GITHUB_CLIENT_SECRET"`
	OAuthRedirectURL   string `env:"OAUTH_REDIRECT_URL,default=http://localhost:5173/callback"`

	// LLM provider selection and per-provider settings.
	LLMProvider     string `env:"LLM_PROVIDER,default=google"`
	GeminiAPIKey    string `env:"GEMINI_API_KEY"`
	GeminiModel     string `env:"GEMINI_MODEL"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIModel     string `env:"OPENAI_MODEL"`
	AnthropicAPIKey string `env:"ANTHROPIC_API_KEY"`
	ClaudeModel     string `env:"CLAUDE_MODEL"`

	PylintBinary string        `env:"PYLINT_BINARY,default=pylint"`
	FixCacheSize uint64        `env:"FIX_CACHE_SIZE,default=1024"`
	FixCacheTTL  time.Duration `env:"FIX_CACHE_TTL,default=1h"`
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		clog.FatalContextf(ctx, "processing config: %v", err)
	}

	client, err := newLLMClient(ctx, &cfg)
	if err != nil {
		clog.FatalContextf(ctx, "creating LLM client: %v", err)
	}

	cache := fixer.NewCache(cfg.FixCacheSize, cfg.FixCacheTTL)
	defer cache.Stop()
	gen, err := fixer.NewGenerator(client, cache)
	if err != nil {
		clog.FatalContextf(ctx, "creating fix generator: %v", err)
	}

	var oauth *githubapi.OAuth
	if cfg.GitHubClientID != "" && cfg.GitHubClientSecret != "" {
		oauth = githubapi.NewOAuth(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.OAuthRedirectURL)
	} else {
		clog.InfoContextf(ctx, "GitHub OAuth credentials not set; login endpoints disabled")
	}

	r := gin.New()
	r.Use(gin.Recovery())
	server.New(&analyzer.Runner{Binary: cfg.PylintBinary}, gen, oauth).Register(r)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			clog.FromContext(ctx).Warnf("Shutting down: %v", err)
		}
	}()

	clog.InfoContextf(ctx, "Starting GitPal server on port %d (provider=%s)", cfg.Port, cfg.LLMProvider)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		clog.FatalContextf(ctx, "server failed: %v", err)
	}
}

// newLLMClient builds the provider named by LLM_PROVIDER.
func newLLMClient(ctx context.Context, cfg *config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case "google", "gemini":
		return llm.NewGoogle(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	case "openai":
		return llm.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	case "anthropic", "claude":
		return llm.NewClaude(cfg.AnthropicAPIKey, cfg.ClaudeModel)
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.LLMProvider)
	}
}
