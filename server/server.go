/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

// Package server exposes the analysis, fix, and commit flows over HTTP.
package server

import (
	"net/http"
	"time"

	"github.com/chainguard-dev/clog"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chainguard.dev/gitpal/analyzer"
	"chainguard.dev/gitpal/fixer"
	"chainguard.dev/gitpal/githubapi"
)

// Server holds the collaborators the handlers need. The OAuth flow is
// optional; when nil the auth endpoints report that credentials are
// missing.
type Server struct {
	runner *analyzer.Runner
	gen    *fixer.Generator
	oauth  *githubapi.OAuth
}

func New(runner *analyzer.Runner, gen *fixer.Generator, oauth *githubapi.OAuth) *Server {
	return &Server{runner: runner, gen: gen, oauth: oauth}
}

// Register attaches all routes and middleware to the engine.
func (s *Server) Register(r *gin.Engine) {
	r.Use(corsMiddleware(), requestLogger())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to GitPal!"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	auth := r.Group("/auth")
	auth.GET("/login", s.login)
	auth.GET("/callback", s.callback)

	gh := r.Group("/github")
	gh.GET("/repos", s.listRepos)

	an := r.Group("/analyze")
	an.POST("/", s.analyze)
	an.POST("/preview-fix", s.previewFix)
	an.POST("/generate-fix", s.generateFix)
	an.POST("/fix-all", s.fixAll)
	an.POST("/get-file-content", s.getFileContent)
	an.POST("/commit-fixes", s.commitFixes)
	an.POST("/get-repo-info", s.getRepoInfo)
}

// corsMiddleware allows the browser front-end to call from any origin.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// requestLogger decorates the request context's logger with the route
// and logs one line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		log := clog.FromContext(ctx).With(
			"method", c.Request.Method,
			"path", c.Request.URL.Path)
		c.Request = c.Request.WithContext(clog.WithLogger(ctx, log))

		start := time.Now()
		c.Next()
		log.Infof("%d in %s", c.Writer.Status(), time.Since(start))
	}
}

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
