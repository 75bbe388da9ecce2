// Package rest provides the public constructor for the school API client
// while keeping the HTTP implementation internal.
package rest

import (
	"log"

	"github.com/webdekho/schoolctl/internal/rest"
	"github.com/webdekho/schoolctl/pkg/types"
)

// Client is the concrete API client. It implements types.Client and
// additionally exposes Download for streaming report and backup exports.
type Client = rest.Client

// NewClient creates a client for the API described by cfg.
//
// Example:
//
//	client, err := rest.NewClient(types.Config{
//	    APIRoot: "https://school.example.com/api",
//	    Token:   token,
//	})
func NewClient(cfg types.Config) (*Client, error) {
	return rest.NewClient(cfg)
}

// NewClientWithLogger creates a client that logs every request (method,
// path, status, duration) through logger.
func NewClientWithLogger(cfg types.Config, logger *log.Logger) (*Client, error) {
	return rest.NewClient(cfg, rest.WithLogger(logger))
}
