package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/smarttrip/backend/amadeus"
)

// decodeArgs maps a raw arguments map onto a typed tool input.
func decodeArgs[In any](args map[string]interface{}) (In, error) {
	var input In
	if args == nil {
		args = map[string]interface{}{}
	}
	b, err := json.Marshal(args)
	if err != nil {
		return input, fmt.Errorf("failed to encode arguments: %w", err)
	}
	if err := json.Unmarshal(b, &input); err != nil {
		return input, fmt.Errorf("failed to parse arguments: %w", err)
	}
	return input, nil
}

// normalizeAirportCode trims and upper-cases a 3-letter IATA code,
// rejecting anything else before a network call is made.
func normalizeAirportCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if len(code) != 3 {
		return "", amadeus.InvalidParamsf("Valid 3-letter airport code is required (e.g., LAX, JFK)")
	}
	return strings.ToUpper(code), nil
}

// toToolError keeps classified kinds intact and wraps anything else as an
// internal error so no raw failure type crosses the tool boundary.
func toToolError(err error) error {
	var ae *amadeus.Error
	if errors.As(err, &ae) {
		return ae
	}
	return amadeus.Internalf(err, "%s", err.Error())
}
