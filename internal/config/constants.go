package config

import "time"

const (
	// Session transcript cap: 20 turns = 10 exchanges.
	MaxSessionTurns = 20

	// Result limits for fixed queries
	DefaultQueryLimit = 5
	UserRecentLimit   = 5
	SearchLimit       = 5

	// Retrieval context injected into the chat prompt
	RetrievalUserItems    = 3
	RetrievalSimilarItems = 2
	RetrievalFieldMaxLen  = 100

	// SQL agent guard
	AgentMaxIterations   = 3
	AgentMaxExecution    = 20 * time.Second
	AgentMaxResultRows   = 20

	// Completion provider
	ChatTemperature = 0.5
	ChatMaxTokens   = 1024
	RequestTimeout  = 90 * time.Second

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Database pool
	PoolMaxConns = 10
	PoolMinConns = 1
)
