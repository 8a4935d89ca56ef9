/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package fixer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	llmCalls = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gitpal_fix_llm_calls_total",
		Help: "Number of fix generations that reached the model provider.",
	})

	cacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gitpal_fix_cache_hits_total",
		Help: "Number of fix requests served from the cache.",
	})

	emptyFixes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "gitpal_fix_empty_results_total",
		Help: "Number of model responses that were empty after cleaning.",
	})
)
