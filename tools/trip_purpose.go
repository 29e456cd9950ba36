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

// TripPurposeTool predicts whether an itinerary is business or leisure
type TripPurposeTool struct {
	Client *amadeus.Client
}

// TripPurposeInput is the tool's argument contract
type TripPurposeInput struct {
	Origin        string `json:"origin" description:"3-letter IATA code for the origin airport (e.g., 'LAX')"`
	Destination   string `json:"destination" description:"3-letter IATA code for the destination airport (e.g., 'JFK')"`
	DepartureDate string `json:"departure_date" description:"Departure date in YYYY-MM-DD format"`
	ReturnDate    string `json:"return_date" description:"Return date in YYYY-MM-DD format"`
	Adults        int    `json:"adults,omitempty" description:"Number of adult passengers"`
}

func (t *TripPurposeTool) Name() string {
	return "get_trip_purpose"
}

func (t *TripPurposeTool) Description() string {
	return "Predict the purpose of a trip (business or leisure)"
}

// Execute validates the itinerary, queries the trip-purpose prediction
// endpoint and normalizes the response.
func (t *TripPurposeTool) Execute(ctx context.Context, input *TripPurposeInput) (*amadeus.TripPurposeResult, error) {
	for field, value := range map[string]string{
		"origin":         input.Origin,
		"destination":    input.Destination,
		"departure_date": input.DepartureDate,
		"return_date":    input.ReturnDate,
	} {
		if strings.TrimSpace(value) == "" {
			return nil, amadeus.InvalidParamsf("%s is required", field)
		}
	}

	adults := input.Adults
	if adults <= 0 {
		adults = 1
	}

	log.Infof(ctx, "Getting trip purpose for: %s to %s", input.Origin, input.Destination)

	params := url.Values{}
	params.Set("originLocationCode", input.Origin)
	params.Set("destinationLocationCode", input.Destination)
	params.Set("departureDate", input.DepartureDate)
	params.Set("returnDate", input.ReturnDate)
	params.Set("adults", strconv.Itoa(adults))

	payload, err := t.Client.Get(ctx, "/v1/travel/predictions/trip-purpose", params)
	if err != nil {
		log.Errorf(ctx, "Trip purpose prediction failed: %v", err)
		return nil, toToolError(err)
	}

	return amadeus.NormalizeTripPurpose(ctx, payload,
		input.Origin, input.Destination, input.DepartureDate, input.ReturnDate), nil
}

// NewTripPurposeTool initializes and registers the TripPurposeTool
func NewTripPurposeTool(c *amadeus.Client, gk *genkit.Genkit, registry *Registry) *TripPurposeTool {
	t := &TripPurposeTool{Client: c}
	register(gk, registry, t.Name(), t.Description(), t.Execute)
	return t
}
