package responder

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/uptrace/bun"

	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
	llmx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/llm"
	promptx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/prompt"
	toolx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/tool"
)

type registryImpl struct {
	extractor  contractx.IdentifierExtractor
	router     contractx.RouteClassifier
	summarizer contractx.MemorySummarizer
	invoice    contractx.Responder
	music      contractx.Responder
	generic    contractx.Responder
}

func (r *registryImpl) Extractor() contractx.IdentifierExtractor { return r.extractor }
func (r *registryImpl) Router() contractx.RouteClassifier        { return r.router }
func (r *registryImpl) Summarizer() contractx.MemorySummarizer   { return r.summarizer }
func (r *registryImpl) Invoice() contractx.Responder             { return r.invoice }
func (r *registryImpl) Music() contractx.Responder               { return r.music }
func (r *registryImpl) Generic() contractx.Responder             { return r.generic }

// NewRegistry builds the full LLM-backed roster: one model per role, prompts
// from the embedded set, and catalog tools bound to the specialized
// responders.
func NewRegistry(ctx context.Context, cfg llmx.Config, db bun.IDB) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	prompts := promptx.LoadPromptSet()
	for name, p := range map[string]string{
		"extractor":  prompts.Extractor,
		"router":     prompts.Router,
		"summarizer": prompts.Summarizer,
		"invoice":    prompts.Invoice,
		"music":      prompts.Music,
		"generic":    prompts.Generic,
	} {
		if p == "" {
			return nil, fmt.Errorf("%w: %s", contractx.ErrPromptMissing, name)
		}
	}

	models := map[contractx.AgentRole]einomodel.ToolCallingChatModel{}
	for _, role := range []contractx.AgentRole{
		contractx.AgentRoleExtractor,
		contractx.AgentRoleRouter,
		contractx.AgentRoleSummarizer,
		contractx.AgentRoleInvoice,
		contractx.AgentRoleMusic,
		contractx.AgentRoleGeneric,
	} {
		modelCfg := cfg.OpenRouterFor(role)
		m, err := modelCfg.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: create model for role=%s: %v", contractx.ErrModelInvoke, role, err)
		}
		models[role] = m
	}

	extractor, err := newLLMExtractor(ctx, models[contractx.AgentRoleExtractor], prompts.Extractor)
	if err != nil {
		return nil, err
	}
	router, err := newLLMRouter(ctx, models[contractx.AgentRoleRouter], prompts.Router)
	if err != nil {
		return nil, err
	}
	summarizer, err := newLLMSummarizer(ctx, models[contractx.AgentRoleSummarizer], prompts.Summarizer)
	if err != nil {
		return nil, err
	}

	invoiceTools, invoiceExec := toolx.BuildForRoute(contractx.RouteInvoice, db)
	invoice, err := newSpecializedResponder(
		ctx, contractx.RouteInvoice, models[contractx.AgentRoleInvoice], prompts.Invoice, invoiceTools, invoiceExec)
	if err != nil {
		return nil, err
	}

	musicTools, musicExec := toolx.BuildForRoute(contractx.RouteMusic, db)
	music, err := newSpecializedResponder(
		ctx, contractx.RouteMusic, models[contractx.AgentRoleMusic], prompts.Music, musicTools, musicExec)
	if err != nil {
		return nil, err
	}

	generic, err := newGenericResponder(ctx, models[contractx.AgentRoleGeneric], prompts.Generic)
	if err != nil {
		return nil, err
	}

	return &registryImpl{
		extractor:  extractor,
		router:     router,
		summarizer: summarizer,
		invoice:    invoice,
		music:      music,
		generic:    generic,
	}, nil
}
