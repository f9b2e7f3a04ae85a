package services

import (
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/pkg/errors"

	"github.com/athapong/workdesk-mcp/pkg/readwise"
)

// JiraConfig holds the Jira Cloud connection settings. Field errors are keyed
// by the environment variable they came from.
type JiraConfig struct {
	Host  string `json:"JIRA_HOST"`
	Email string `json:"JIRA_USER_EMAIL"`
	Token string `json:"JIRA_API_TOKEN"`
}

func (c JiraConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Host, validation.Required, is.URL),
		validation.Field(&c.Email, validation.Required, is.EmailFormat),
		validation.Field(&c.Token, validation.Required),
	)
}

// LoadJiraConfig reads and validates the Jira settings from the environment.
func LoadJiraConfig() (JiraConfig, error) {
	cfg := JiraConfig{
		Host:  strings.TrimSpace(os.Getenv("JIRA_HOST")),
		Email: strings.TrimSpace(os.Getenv("JIRA_USER_EMAIL")),
		Token: strings.TrimSpace(os.Getenv("JIRA_API_TOKEN")),
	}
	if err := cfg.Validate(); err != nil {
		return JiraConfig{}, errors.Wrap(err, "invalid jira configuration")
	}
	return cfg, nil
}

// ReadwiseConfig holds the Readwise Reader settings.
type ReadwiseConfig struct {
	Token   string `json:"READWISE_API_TOKEN"`
	BaseURL string `json:"READWISE_BASE_URL"`
}

func (c ReadwiseConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Token, validation.Required),
		validation.Field(&c.BaseURL, validation.Required, is.URL),
	)
}

// LoadReadwiseConfig reads and validates the Readwise settings.
func LoadReadwiseConfig() (ReadwiseConfig, error) {
	cfg := ReadwiseConfig{
		Token:   strings.TrimSpace(os.Getenv("READWISE_API_TOKEN")),
		BaseURL: strings.TrimSpace(os.Getenv("READWISE_BASE_URL")),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = readwise.DefaultBaseURL
	}
	if err := cfg.Validate(); err != nil {
		return ReadwiseConfig{}, errors.Wrap(err, "invalid readwise configuration")
	}
	return cfg, nil
}
