package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
	openrouterx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/pkg/openrouter"
)

// Config carries the shared LLM settings plus optional per-role overrides.
// Oracles default to temperature 0 so routing and extraction stay stable.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.3"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	ExtractorModel  string `envconfig:"EXTRACTOR_MODEL" split_words:"true"`
	RouterModel     string `envconfig:"ROUTER_MODEL" split_words:"true"`
	SummarizerModel string `envconfig:"SUMMARIZER_MODEL" split_words:"true"`
	InvoiceModel    string `envconfig:"INVOICE_MODEL" split_words:"true"`
	MusicModel      string `envconfig:"MUSIC_MODEL" split_words:"true"`
	GenericModel    string `envconfig:"GENERIC_MODEL" split_words:"true"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: llm api key is required", contractx.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contractx.ErrValidation)
	}
	return nil
}

// OpenRouterFor builds the model config for one agent role.
func (c Config) OpenRouterFor(role contractx.AgentRole) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	override := ""
	switch role {
	case contractx.AgentRoleExtractor:
		override = c.ExtractorModel
		temp = 0
	case contractx.AgentRoleRouter:
		override = c.RouterModel
		temp = 0
	case contractx.AgentRoleSummarizer:
		override = c.SummarizerModel
		temp = 0
	case contractx.AgentRoleInvoice:
		override = c.InvoiceModel
	case contractx.AgentRoleMusic:
		override = c.MusicModel
	case contractx.AgentRoleGeneric:
		override = c.GenericModel
	}
	if v := strings.TrimSpace(override); v != "" {
		modelName = v
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
