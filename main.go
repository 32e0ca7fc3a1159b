package main

import (
	"bufio"
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	orchestratorx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/agents/orchestrator"
	responderx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/agents/responder"
	contractx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/contract"
	databasex "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/database"
	identityx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/identity"
	llmx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/llm"
	memoryx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/memory"
	statex "github.com/nakrit-w/Cadenza-Conversational-Task-Router/agent/state"
	configx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/pkg/config"
	_ "github.com/nakrit-w/Cadenza-Conversational-Task-Router/pkg/logger/autoload"
	upstashx "github.com/nakrit-w/Cadenza-Conversational-Task-Router/pkg/upstash"
)

func main() {
	ctx := context.Background()

	llmCfg := configx.MustNew[llmx.Config]("LLM")
	dbCfg := configx.MustNew[databasex.Config]("DATABASE")
	redisCfg := configx.MustNew[upstashx.Config]("UPSTASH_REDIS")

	db := databasex.Open(*dbCfg)
	defer db.Close()

	redis := upstashx.MustNew(*redisCfg)

	store, err := statex.NewRedisStore(redis)
	if err != nil {
		log.Fatal().Err(err).Msg("create session store")
	}
	profiles, err := memoryx.NewRedisProfileStore(redis)
	if err != nil {
		log.Fatal().Err(err).Msg("create profile store")
	}

	resolver := identityx.NewResolver(identityx.NewSQLDirectory(db))

	models, err := responderx.NewRegistry(ctx, *llmCfg, db)
	if err != nil {
		log.Fatal().Err(err).Msg("create model registry")
	}

	orch, err := orchestratorx.New(store, profiles, resolver, models)
	if err != nil {
		log.Fatal().Err(err).Msg("create orchestrator")
	}

	runLoop(ctx, orch)
}

func runLoop(ctx context.Context, orch *orchestratorx.Orchestrator) {
	// One thread id for the whole conversation; the snapshot store keys
	// suspension and resumption by it.
	threadID := uuid.NewString()

	fmt.Println("Welcome to Customer Support!")
	fmt.Println("Type 'exit' to quit the conversation.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	suspended := false

	for {
		if suspended {
			fmt.Print("You (provide info to continue): ")
		} else {
			fmt.Print("You: ")
		}
		if !scanner.Scan() {
			fmt.Println()
			return
		}

		input := scanner.Text()
		if input == "exit" {
			fmt.Println("Thank you. Shutting down!")
			return
		}
		if input == "" {
			continue
		}

		result, err := orch.Run(ctx, threadID, input)
		if err != nil {
			fmt.Printf("\nAn error occurred: %v\nPlease try again or type 'exit' to quit.\n\n", err)
			continue
		}

		for _, msg := range result.Messages {
			if msg.Role == contractx.RoleAssistant {
				fmt.Printf("\nAssistant: %s\n\n", msg.Content)
			}
		}
		for _, warning := range result.Warnings {
			log.Warn().Str("thread_id", threadID).Msg(warning)
		}

		suspended = result.Suspended
	}
}
