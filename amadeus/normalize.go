package amadeus

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smarttrip/backend/log"
)

// Status is the outcome of a normalized result envelope
type Status string

const (
	StatusSuccess  Status = "success"
	StatusNotFound Status = "not_found"
	StatusError    Status = "error"
)

// maxInspirationResults caps the formatted inspiration list.
const maxInspirationResults = 3

// AirportRecord is a flattened location entry
type AirportRecord struct {
	IataCode     string `json:"iataCode"`
	Name         string `json:"name"`
	CityName     string `json:"cityName,omitempty"`
	CountryName  string `json:"countryName,omitempty"`
	DetailedName string `json:"detailedName,omitempty"`
}

// AirportResult is the envelope returned by the airport lookup capability
type AirportResult struct {
	AirportCode string          `json:"airport_code"`
	Status      Status          `json:"status"`
	Data        []AirportRecord `json:"data,omitempty"`
	Message     string          `json:"message,omitempty"`
	AllResults  []AirportRecord `json:"all_results,omitempty"`
	RawResult   json.RawMessage `json:"raw_result,omitempty"`
}

// FlightRecord is one flattened flight offer
type FlightRecord struct {
	Airline     string `json:"airline"`
	Price       string `json:"price"`
	Duration    string `json:"duration"`
	Stops       string `json:"stops"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
	TravelClass string `json:"travel_class"`
}

// FlightSearchResult is the envelope returned by the flight search capability
type FlightSearchResult struct {
	Status    Status          `json:"status"`
	Data      []FlightRecord  `json:"data,omitempty"`
	Message   string          `json:"message,omitempty"`
	RawResult json.RawMessage `json:"raw_result,omitempty"`
}

// InspirationRecord is one flattened destination suggestion
type InspirationRecord struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
	Price         string `json:"price"`
}

// InspirationResult is the envelope returned by the inspiration capability
type InspirationResult struct {
	OriginAirportCode string              `json:"origin_airport_code"`
	Status            Status              `json:"status"`
	Data              []InspirationRecord `json:"data,omitempty"`
	Message           string              `json:"message,omitempty"`
	AllResults        []FlightDestination `json:"all_results,omitempty"`
	RawResult         json.RawMessage     `json:"raw_result,omitempty"`
}

// TripPurposeResult is the envelope returned by the trip-purpose capability
type TripPurposeResult struct {
	Origin        string          `json:"origin,omitempty"`
	Destination   string          `json:"destination,omitempty"`
	DepartureDate string          `json:"departure_date,omitempty"`
	ReturnDate    string          `json:"return_date,omitempty"`
	TripPurpose   string          `json:"trip_purpose,omitempty"`
	Status        Status          `json:"status"`
	Message       string          `json:"message,omitempty"`
	RawResults    json.RawMessage `json:"raw_results,omitempty"`
	RawResult     json.RawMessage `json:"raw_result,omitempty"`
}

// dataProbe distinguishes a missing top-level "data" container from one
// that is present but empty.
type dataProbe struct {
	Data *json.RawMessage `json:"data"`
}

// NormalizeAirports filters location candidates for the requested code.
// Candidates match on exact IATA code or on the code appearing as a
// substring of the upper-cased name, which tolerates city-name queries
// resolving to airport entries.
func NormalizeAirports(ctx context.Context, payload json.RawMessage, airportCode string) *AirportResult {
	var probe dataProbe
	if err := json.Unmarshal(payload, &probe); err != nil || probe.Data == nil {
		return &AirportResult{AirportCode: airportCode, Status: StatusError, RawResult: payload}
	}

	var candidates []LocationData
	if err := json.Unmarshal(*probe.Data, &candidates); err != nil {
		log.Errorf(ctx, "Unexpected location data shape: %v", err)
		return &AirportResult{AirportCode: airportCode, Status: StatusError, RawResult: payload}
	}

	all := make([]AirportRecord, 0, len(candidates))
	var matches []AirportRecord
	for _, c := range candidates {
		record := AirportRecord{
			IataCode:     c.IataCode,
			Name:         c.Name,
			CityName:     c.Address.CityName,
			CountryName:  c.Address.CountryName,
			DetailedName: c.DetailedName,
		}
		all = append(all, record)
		if c.IataCode == airportCode || strings.Contains(strings.ToUpper(c.Name), airportCode) {
			matches = append(matches, record)
		}
	}

	if len(matches) == 0 {
		return &AirportResult{
			AirportCode: airportCode,
			Status:      StatusNotFound,
			Message:     fmt.Sprintf("No airport found for code: %s", airportCode),
			AllResults:  all,
		}
	}

	log.Infof(ctx, "Returning %d airport entries for %s", len(matches), airportCode)
	return &AirportResult{AirportCode: airportCode, Status: StatusSuccess, Data: matches}
}

// NormalizeFlightOffers flattens a flight-offers payload. A malformed
// offer is skipped, never fatal: one bad entry must not abort the batch.
func NormalizeFlightOffers(ctx context.Context, payload json.RawMessage) *FlightSearchResult {
	// A degraded client payload carries an "error" field.
	var degraded struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(payload, &degraded); err == nil && degraded.Error != "" {
		log.Errorf(ctx, "Flight search error in formatter: %s", degraded.Error)
		return &FlightSearchResult{Status: StatusError, Message: degraded.Error, RawResult: payload}
	}

	var resp struct {
		Data         []FlightOffer `json:"data"`
		Dictionaries struct {
			Carriers map[string]string `json:"carriers"`
		} `json:"dictionaries"`
	}
	if err := json.Unmarshal(payload, &resp); err != nil {
		log.Errorf(ctx, "Unexpected flight offers shape: %v", err)
		return &FlightSearchResult{Status: StatusError, Message: "unexpected flight offers payload", RawResult: payload}
	}

	if len(resp.Data) == 0 {
		log.Infof(ctx, "No flight offers found in the Amadeus response.")
		return &FlightSearchResult{Status: StatusNotFound, Message: "No flight offers found.", RawResult: payload}
	}

	records := make([]FlightRecord, 0, len(resp.Data))
	for _, offer := range resp.Data {
		record, err := formatOffer(offer, resp.Dictionaries.Carriers)
		if err != nil {
			log.Warnf(ctx, "Could not parse a flight offer due to missing data: %v", err)
			continue
		}
		records = append(records, record)
	}

	if len(records) == 0 {
		// Every offer failed to map; degrade rather than report success.
		return &FlightSearchResult{Status: StatusNotFound, Message: "No flight offers found.", RawResult: payload}
	}

	log.Infof(ctx, "Returning %d formatted flights", len(records))
	return &FlightSearchResult{Status: StatusSuccess, Data: records}
}

// formatOffer maps one upstream offer to a FlightRecord, reading the first
// itinerary's first and last segments and the first traveler pricing entry.
func formatOffer(offer FlightOffer, carriers map[string]string) (FlightRecord, error) {
	if len(offer.Itineraries) == 0 {
		return FlightRecord{}, fmt.Errorf("offer has no itineraries")
	}
	itinerary := offer.Itineraries[0]
	if len(itinerary.Segments) == 0 {
		return FlightRecord{}, fmt.Errorf("itinerary has no segments")
	}
	first := itinerary.Segments[0]
	last := itinerary.Segments[len(itinerary.Segments)-1]

	if offer.Price.Total == "" {
		return FlightRecord{}, fmt.Errorf("offer has no price")
	}
	if len(offer.TravelerPricings) == 0 || len(offer.TravelerPricings[0].FareDetailsBySegment) == 0 {
		return FlightRecord{}, fmt.Errorf("offer has no traveler pricing")
	}

	travelClass := offer.TravelerPricings[0].FareDetailsBySegment[0].Cabin
	if travelClass == "" {
		travelClass = "Economy"
	}

	airline := carriers[first.CarrierCode]
	if airline == "" {
		airline = "Unknown Airline"
	}

	stops := len(itinerary.Segments) - 1
	stopsStr := "Nonstop"
	if stops > 0 {
		stopsStr = fmt.Sprintf("%d stop(s)", stops)
	}

	return FlightRecord{
		Airline:     airline,
		Price:       fmt.Sprintf("%s %s", offer.Price.Total, offer.Price.Currency),
		Duration:    itinerary.Duration,
		Stops:       stopsStr,
		Departure:   fmt.Sprintf("%s at %s", first.Departure.IataCode, first.Departure.At),
		Arrival:     fmt.Sprintf("%s at %s", last.Arrival.IataCode, last.Arrival.At),
		TravelClass: travelClass,
	}, nil
}

// NormalizeInspiration flattens a flight-destinations payload, resolving
// display names through the locations dictionary shipped with the response.
// The formatted list is capped at 3 entries.
func NormalizeInspiration(ctx context.Context, payload json.RawMessage, originCode string) *InspirationResult {
	var probe dataProbe
	if err := json.Unmarshal(payload, &probe); err != nil || probe.Data == nil {
		return &InspirationResult{OriginAirportCode: originCode, Status: StatusError, RawResult: payload}
	}

	var resp struct {
		Data         []FlightDestination `json:"data"`
		Dictionaries struct {
			Locations map[string]LocationEntry `json:"locations"`
		} `json:"dictionaries"`
	}
	if err := json.Unmarshal(payload, &resp); err != nil {
		log.Errorf(ctx, "Unexpected inspiration shape: %v", err)
		return &InspirationResult{OriginAirportCode: originCode, Status: StatusError, RawResult: payload}
	}

	records := make([]InspirationRecord, 0, len(resp.Data))
	for _, dest := range resp.Data {
		origin, ok := resp.Dictionaries.Locations[dest.Origin]
		if !ok {
			log.Warnf(ctx, "Skipping destination with unknown origin code %q", dest.Origin)
			continue
		}
		destination, ok := resp.Dictionaries.Locations[dest.Destination]
		if !ok {
			log.Warnf(ctx, "Skipping destination with unknown destination code %q", dest.Destination)
			continue
		}
		records = append(records, InspirationRecord{
			Origin:        fmt.Sprintf("%s (%s)", origin.DetailedName, dest.Origin),
			Destination:   fmt.Sprintf("%s (%s)", destination.DetailedName, dest.Destination),
			DepartureDate: dest.DepartureDate,
			ReturnDate:    dest.ReturnDate,
			Price:         dest.Price.Total,
		})
	}

	if len(records) == 0 {
		return &InspirationResult{
			OriginAirportCode: originCode,
			Status:            StatusNotFound,
			Message:           fmt.Sprintf("No inspiration found: %s", originCode),
			AllResults:        resp.Data,
		}
	}

	if len(records) > maxInspirationResults {
		records = records[:maxInspirationResults]
	}

	log.Infof(ctx, "Returning %d flight inspiration entries", len(records))
	return &InspirationResult{OriginAirportCode: originCode, Status: StatusSuccess, Data: records}
}

// NormalizeTripPurpose extracts the prediction at data.result. An absent
// value is not_found, not an error.
func NormalizeTripPurpose(ctx context.Context, payload json.RawMessage, origin, destination, departureDate, returnDate string) *TripPurposeResult {
	var probe dataProbe
	if err := json.Unmarshal(payload, &probe); err != nil || probe.Data == nil {
		return &TripPurposeResult{
			Origin:      origin,
			Destination: destination,
			Status:      StatusError,
			RawResult:   payload,
		}
	}

	var data struct {
		Result string `json:"result"`
	}
	if err := json.Unmarshal(*probe.Data, &data); err != nil || data.Result == "" {
		return &TripPurposeResult{
			Status:     StatusNotFound,
			Message:    fmt.Sprintf("No trip purpose found for the itinerary: %s to %s", origin, destination),
			RawResults: *probe.Data,
		}
	}

	log.Infof(ctx, "Returning trip purpose %s", data.Result)
	return &TripPurposeResult{
		Origin:        origin,
		Destination:   destination,
		DepartureDate: departureDate,
		ReturnDate:    returnDate,
		TripPurpose:   data.Result,
		Status:        StatusSuccess,
	}
}
