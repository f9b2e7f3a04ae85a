package services

import (
	"net/http"
	"sync"

	v3 "github.com/ctreminiom/go-atlassian/jira/v3"
	"github.com/pkg/errors"
)

// JiraClient returns the process wide Jira v3 client. Configuration errors are
// returned on every call.
var JiraClient = sync.OnceValues(func() (*v3.Client, error) {
	cfg, err := LoadJiraConfig()
	if err != nil {
		return nil, err
	}
	return NewJiraClient(cfg, NewRetryClient("jira").StandardClient())
})

// NewJiraClient creates a basic-auth Jira v3 client for cfg.Host.
func NewJiraClient(cfg JiraConfig, httpClient *http.Client) (*v3.Client, error) {
	client, err := v3.New(httpClient, cfg.Host)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create jira client")
	}
	client.Auth.SetBasicAuth(cfg.Email, cfg.Token)
	return client, nil
}
