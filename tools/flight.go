package tools

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/firebase/genkit/go/genkit"

	"github.com/smarttrip/backend/amadeus"
	"github.com/smarttrip/backend/log"
)

// FlightSearchTool searches flight offers between two airports
type FlightSearchTool struct {
	Client *amadeus.Client
}

// FlightSearchInput is the tool's argument contract
type FlightSearchInput struct {
	Origin        string `json:"origin" description:"Departure airport code (e.g., ATL, JFK)"`
	Destination   string `json:"destination" description:"Destination airport code (e.g., LAX, ORD)"`
	DepartureDate string `json:"departure_date" description:"Departure date (YYYY-MM-DD)"`
	ReturnDate    string `json:"return_date,omitempty" description:"Return date for round trips (YYYY-MM-DD)"`
	Passengers    int    `json:"passengers,omitempty" description:"Number of adult passengers"`
	TravelClass   string `json:"travel_class,omitempty" description:"Cabin class preference (e.g., ECONOMY, BUSINESS)"`
}

func (t *FlightSearchTool) Name() string {
	return "flight_search_assistant"
}

func (t *FlightSearchTool) Description() string {
	return "An intelligent agent that helps travelers find and recommend flights based on their itinerary, including origin, destination, and travel dates."
}

// Execute validates the query, searches flight offers and normalizes the
// response.
func (t *FlightSearchTool) Execute(ctx context.Context, input *FlightSearchInput) (*amadeus.FlightSearchResult, error) {
	if strings.TrimSpace(input.Origin) == "" {
		return nil, amadeus.InvalidParamsf("origin is required")
	}
	if strings.TrimSpace(input.Destination) == "" {
		return nil, amadeus.InvalidParamsf("destination is required")
	}
	if strings.TrimSpace(input.DepartureDate) == "" {
		return nil, amadeus.InvalidParamsf("departure_date is required")
	}

	log.Infof(ctx, "Searching flights: %s to %s, dates: %s - %s",
		input.Origin, input.Destination, input.DepartureDate, input.ReturnDate)

	payload, err := t.Client.Get(ctx, "/v2/shopping/flight-offers", searchParams(input))
	if err != nil {
		log.Errorf(ctx, "Flight search failed: %v", err)
		return nil, toToolError(err)
	}

	return amadeus.NormalizeFlightOffers(ctx, payload), nil
}

// searchParams builds the upstream query. An absent or empty return_date
// means one-way and must not be forwarded: sending an empty returnDate
// corrupts the upstream query.
func searchParams(input *FlightSearchInput) url.Values {
	passengers := input.Passengers
	if passengers <= 0 {
		passengers = 1
	}
	travelClass := strings.ToUpper(strings.TrimSpace(input.TravelClass))
	if travelClass == "" {
		travelClass = "ECONOMY"
	}

	params := url.Values{}
	params.Set("originLocationCode", strings.ToUpper(strings.TrimSpace(input.Origin)))
	params.Set("destinationLocationCode", strings.ToUpper(strings.TrimSpace(input.Destination)))
	params.Set("departureDate", input.DepartureDate)
	params.Set("adults", strconv.Itoa(passengers))
	params.Set("travelClass", travelClass)
	params.Set("nonStop", "false")
	params.Set("max", "5")

	if returnDate := strings.TrimSpace(input.ReturnDate); returnDate != "" {
		params.Set("returnDate", returnDate)
	}
	return params
}

// NewFlightSearchTool initializes and registers the FlightSearchTool
func NewFlightSearchTool(c *amadeus.Client, gk *genkit.Genkit, registry *Registry) *FlightSearchTool {
	t := &FlightSearchTool{Client: c}
	register(gk, registry, t.Name(), t.Description(), t.Execute)
	return t
}
