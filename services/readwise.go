package services

import (
	"sync"

	"github.com/athapong/workdesk-mcp/pkg/readwise"
)

var (
	readwiseClient *readwise.Client
	readwiseErr    error
	readwiseOnce   sync.Once
)

// ReadwiseClient returns a singleton Readwise Reader client.
func ReadwiseClient() (*readwise.Client, error) {
	readwiseOnce.Do(func() {
		cfg, err := LoadReadwiseConfig()
		if err != nil {
			readwiseErr = err
			return
		}
		readwiseClient = readwise.NewClient(cfg.BaseURL, cfg.Token, NewRetryClient("readwise"))
	})
	return readwiseClient, readwiseErr
}
