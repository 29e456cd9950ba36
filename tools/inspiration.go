package tools

import (
	"context"
	"net/url"

	"github.com/firebase/genkit/go/genkit"

	"github.com/smarttrip/backend/amadeus"
	"github.com/smarttrip/backend/log"
)

// InspirationTool finds the cheapest flight destinations from an origin
type InspirationTool struct {
	Client *amadeus.Client
}

// InspirationInput is the tool's argument contract
type InspirationInput struct {
	OriginAirportCode string `json:"origin_airport_code" description:"3-letter IATA airport code (e.g., LAX, JFK)"`
}

func (t *InspirationTool) Name() string {
	return "get_inspiration"
}

func (t *InspirationTool) Description() string {
	return "Help travelers discover their next destination by finding the cheapest flight destinations from a specific city"
}

// Execute validates the origin code, queries the flight-destinations
// endpoint and normalizes the response.
func (t *InspirationTool) Execute(ctx context.Context, input *InspirationInput) (*amadeus.InspirationResult, error) {
	code, err := normalizeAirportCode(input.OriginAirportCode)
	if err != nil {
		return nil, err
	}
	log.Infof(ctx, "Getting inspiration for: %s", code)

	params := url.Values{}
	params.Set("origin", code)

	payload, err := t.Client.Get(ctx, "/v1/shopping/flight-destinations", params)
	if err != nil {
		log.Errorf(ctx, "Inspiration search failed: %v", err)
		return nil, toToolError(err)
	}

	return amadeus.NormalizeInspiration(ctx, payload, code), nil
}

// NewInspirationTool initializes and registers the InspirationTool
func NewInspirationTool(c *amadeus.Client, gk *genkit.Genkit, registry *Registry) *InspirationTool {
	t := &InspirationTool{Client: c}
	register(gk, registry, t.Name(), t.Description(), t.Execute)
	return t
}
