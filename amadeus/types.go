package amadeus

// Upstream payload shapes, trimmed to the fields the normalizers read.

// LocationData represents a single location result from Amadeus
type LocationData struct {
	SubType      string  `json:"subType,omitempty"`
	Name         string  `json:"name,omitempty"`
	DetailedName string  `json:"detailedName,omitempty"`
	IataCode     string  `json:"iataCode,omitempty"`
	Address      Address `json:"address,omitempty"`
}

// Address contains location details
type Address struct {
	CityName    string `json:"cityName,omitempty"`
	CountryName string `json:"countryName,omitempty"`
}

// FlightOffer is one offer from the flight-offers search response
type FlightOffer struct {
	Itineraries      []Itinerary       `json:"itineraries"`
	Price            Price             `json:"price"`
	TravelerPricings []TravelerPricing `json:"travelerPricings"`
}

// Itinerary is an ordered sequence of segments between origin and
// final destination
type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

// Segment is one individual flight within an itinerary
type Segment struct {
	Departure   FlightEndPoint `json:"departure"`
	Arrival     FlightEndPoint `json:"arrival"`
	CarrierCode string         `json:"carrierCode"`
}

// FlightEndPoint is an airport code plus a local timestamp
type FlightEndPoint struct {
	IataCode string `json:"iataCode"`
	At       string `json:"at"`
}

// Price carries the offer total and its currency
type Price struct {
	Currency string `json:"currency"`
	Total    string `json:"total"`
}

// TravelerPricing holds per-traveler fare details
type TravelerPricing struct {
	FareDetailsBySegment []FareDetails `json:"fareDetailsBySegment"`
}

// FareDetails carries the cabin class for a segment
type FareDetails struct {
	Cabin string `json:"cabin"`
}

// FlightDestination is one entry from the flight-destinations
// (inspiration) response
type FlightDestination struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	ReturnDate    string `json:"returnDate"`
	Price         Price  `json:"price"`
}

// LocationEntry is a locations-dictionary value mapping an IATA code
// to a display name
type LocationEntry struct {
	DetailedName string `json:"detailedName"`
}
