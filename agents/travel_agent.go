// Package agents holds the conversational layer: a root travel agent that
// routes user utterances to the registered capability tools and narrates
// the results.
package agents

import (
	"context"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/smarttrip/backend/log"
	"github.com/smarttrip/backend/tools"
)

// Role values for conversation messages
const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Message is one prior turn of a conversation
type Message struct {
	Role    string
	Content string
}

// TravelAgent answers travel questions by calling the registered tools
type TravelAgent struct {
	genkit   *genkit.Genkit
	registry *tools.Registry
	model    ai.Model
}

const travelAgentPrompt = `You are an exclusive travel planner agent.
- You help users discover their dream vacation, find flights and airports, and understand their trips
- You gather minimal information from the user before acting
- Use only the available tools to fulfill user requests; never invent flight data
- After every tool call, show the result to the user and keep your response limited to a short phrase
- If the user asks about flight purpose, trip purpose or purpose of travel, call get_trip_purpose
- If the user asks for vacation inspiration or where to go, call get_inspiration and limit the choices to 3 results
- If the user asks about airports, call get_airport_info
- If the user asks to search for flights, call flight_search_assistant
- Dates must be in YYYY-MM-DD format; ask the user if a required date is missing`

// NewTravelAgent creates a new TravelAgent over the registered tools
func NewTravelAgent(gk *genkit.Genkit, registry *tools.Registry, model ai.Model) *TravelAgent {
	return &TravelAgent{
		genkit:   gk,
		registry: registry,
		model:    model,
	}
}

// Respond runs one conversational turn: prior session messages are
// replayed, the new user message is appended, and the model may call any
// registered tool before narrating its answer.
func (a *TravelAgent) Respond(ctx context.Context, history []Message, message string) (string, error) {
	var toolRefs []ai.ToolRef
	for _, tool := range a.registry.GetTools() {
		toolRefs = append(toolRefs, tool)
	}

	messages := buildMessages(history, message)
	systemPrompt := fmt.Sprintf("Today is %s.\n%s", time.Now().Format("2006-01-02"), travelAgentPrompt)

	response, err := genkit.Generate(ctx,
		a.genkit,
		ai.WithModel(a.model),
		ai.WithSystem(systemPrompt),
		ai.WithMessages(messages...),
		ai.WithTools(toolRefs...),
		ai.WithMaxTurns(10),
	)
	if err != nil {
		log.Errorf(ctx, "TravelAgent: Generate error: %v", err)
		return "", fmt.Errorf("generation failed: %w", err)
	}

	text := response.Text()
	if text == "" {
		return "I'm sorry, I couldn't process that request.", nil
	}
	return text, nil
}

// buildMessages replays the stored history and appends the new user turn.
// Unknown roles are treated as user input rather than dropped.
func buildMessages(history []Message, message string) []*ai.Message {
	messages := make([]*ai.Message, 0, len(history)+1)
	for _, m := range history {
		switch m.Role {
		case RoleModel:
			messages = append(messages, ai.NewModelMessage(ai.NewTextPart(m.Content)))
		default:
			messages = append(messages, ai.NewUserMessage(ai.NewTextPart(m.Content)))
		}
	}
	return append(messages, ai.NewUserMessage(ai.NewTextPart(message)))
}
