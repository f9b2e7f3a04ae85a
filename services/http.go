package services

import (
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/athapong/workdesk-mcp/util"
)

// NewRetryClient returns a retrying HTTP client that logs through logrus,
// tagged with the upstream service name.
func NewRetryClient(service string) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 500 * time.Millisecond
	client.RetryWaitMax = 5 * time.Second
	client.HTTPClient.Timeout = 30 * time.Second
	client.Logger = util.NewRetryLogger(service)
	return client
}
