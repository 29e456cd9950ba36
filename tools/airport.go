package tools

import (
	"context"
	"net/url"

	"github.com/firebase/genkit/go/genkit"

	"github.com/smarttrip/backend/amadeus"
	"github.com/smarttrip/backend/log"
)

// AirportTool looks up airport information for a 3-letter IATA code
type AirportTool struct {
	Client *amadeus.Client
}

// AirportInput is the tool's argument contract
type AirportInput struct {
	AirportCode string `json:"airport_code" description:"3-letter IATA airport code (e.g., LAX, JFK)"`
}

func (t *AirportTool) Name() string {
	return "get_airport_info"
}

func (t *AirportTool) Description() string {
	return "Get information about an airport using Amadeus API. Arguments: airport_code (3-letter IATA code, e.g. LAX, JFK)."
}

// Execute validates the code, queries the location search endpoint and
// normalizes the response.
func (t *AirportTool) Execute(ctx context.Context, input *AirportInput) (*amadeus.AirportResult, error) {
	code, err := normalizeAirportCode(input.AirportCode)
	if err != nil {
		return nil, err
	}
	log.Infof(ctx, "Getting airport info for: %s", code)

	params := url.Values{}
	params.Set("keyword", code)
	params.Set("subType", "AIRPORT,CITY")

	payload, err := t.Client.Get(ctx, "/v1/reference-data/locations", params)
	if err != nil {
		log.Errorf(ctx, "Airport lookup failed: %v", err)
		return nil, toToolError(err)
	}

	return amadeus.NormalizeAirports(ctx, payload, code), nil
}

// NewAirportTool initializes and registers the AirportTool
func NewAirportTool(c *amadeus.Client, gk *genkit.Genkit, registry *Registry) *AirportTool {
	t := &AirportTool{Client: c}
	register(gk, registry, t.Name(), t.Description(), t.Execute)
	return t
}
