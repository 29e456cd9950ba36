// Package bootstrap wires the application components together. Every
// dependency is constructed here and passed in explicitly; there are no
// process-wide singletons.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"github.com/firebase/genkit/go/plugins/googlegenai"
	"github.com/firebase/genkit/go/plugins/ollama"
	"gorm.io/gorm"

	"github.com/smarttrip/backend/agents"
	"github.com/smarttrip/backend/amadeus"
	"github.com/smarttrip/backend/config"
	"github.com/smarttrip/backend/log"
	"github.com/smarttrip/backend/orm"
	"github.com/smarttrip/backend/tools"
)

// App holds the initialized components of the application
type App struct {
	TravelAgent *agents.TravelAgent
	Genkit      *genkit.Genkit
	Registry    *tools.Registry
	Model       ai.Model
	DB          *gorm.DB
}

// Setup initializes the application components based on the configuration
func Setup(ctx context.Context, cfg *config.Config) (*App, error) {
	// 1. Setup Genkit with AI Plugin
	var gk *genkit.Genkit
	var model ai.Model

	if cfg.AI.Plugin == "ollama" {
		log.Infof(ctx, "Using Ollama Plugin (Model: %s)...", cfg.AI.Ollama.Model)
		ollamaPlugin := &ollama.Ollama{
			ServerAddress: cfg.AI.Ollama.BaseURL,
		}
		gk = genkit.Init(ctx, genkit.WithPlugins(ollamaPlugin))

		model = ollamaPlugin.DefineModel(gk, ollama.ModelDefinition{
			Name: cfg.AI.Ollama.Model,
			Type: "chat",
		}, &ai.ModelOptions{
			Supports: &ai.ModelSupports{
				Multiturn:  true,
				SystemRole: true,
				Tools:      true,
				Media:      false,
			},
		})
	} else {
		log.Infof(ctx, "Using Gemini Plugin...")
		if cfg.AI.Gemini.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY must be set (or set AI_PLUGIN=ollama)")
		}

		gk = genkit.Init(ctx, genkit.WithPlugins(&googlegenai.GoogleAI{
			APIKey: cfg.AI.Gemini.APIKey,
		}))
		model = googlegenai.GoogleAIModel(gk, cfg.AI.Gemini.Model)
	}

	// 2. Init Tools Registry
	registry := tools.NewRegistry()

	if cfg.Amadeus.ClientID == "" || cfg.Amadeus.ClientSecret == "" {
		return nil, fmt.Errorf("AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET must be set")
	}

	tokens := amadeus.NewClientCredentials(cfg.Amadeus.TokenURL, cfg.Amadeus.ClientID, cfg.Amadeus.ClientSecret, nil)
	client := amadeus.NewClient(cfg.Amadeus.BaseURL, tokens)

	tools.NewAirportTool(client, gk, registry)
	tools.NewFlightSearchTool(client, gk, registry)
	tools.NewInspirationTool(client, gk, registry)
	tools.NewTripPurposeTool(client, gk, registry)

	// 3. Init Session Store
	db, err := orm.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	// 4. Init Agent
	travelAgent := agents.NewTravelAgent(gk, registry, model)

	return &App{
		TravelAgent: travelAgent,
		Genkit:      gk,
		Registry:    registry,
		Model:       model,
		DB:          db,
	}, nil
}
