package domain

import (
	"fmt"
	"strconv"
)

// SelectableCountries are the values offered by the country selector.
var SelectableCountries = []string{"Canada", "United States", "China", "Japan"}

// UIInputState is the current value of the dashboard inputs.
type UIInputState struct {
	ShowWorld       bool
	SelectedCountry string
}

func (s UIInputState) World() (bool, error)     { return s.ShowWorld, nil }
func (s UIInputState) Country() (string, error) { return s.SelectedCountry, nil }

// DefaultInputState matches the initial widget values of the page.
func DefaultInputState() UIInputState {
	return UIInputState{ShowWorld: true, SelectedCountry: SelectableCountries[0]}
}

// RawInputs holds unvalidated form values. Each accessor validates only its
// own value, so an output that never reads the country is not affected by
// a bad one.
type RawInputs struct {
	WorldValue   string
	CountryValue string
}

func (r RawInputs) World() (bool, error)     { return ParseWorldFlag(r.WorldValue) }
func (r RawInputs) Country() (string, error) { return ParseCountry(r.CountryValue) }

// ParseInputState builds an input state from raw form values. Empty values
// fall back to the defaults.
func ParseInputState(world, country string) (UIInputState, error) {
	state := DefaultInputState()
	w, err := ParseWorldFlag(world)
	if err != nil {
		return state, err
	}
	c, err := ParseCountry(country)
	if err != nil {
		return state, err
	}
	return UIInputState{ShowWorld: w, SelectedCountry: c}, nil
}

// ParseWorldFlag parses the world toggle; empty means the default.
func ParseWorldFlag(world string) (bool, error) {
	if world == "" {
		return DefaultInputState().ShowWorld, nil
	}
	v, err := strconv.ParseBool(world)
	if err != nil {
		return false, fmt.Errorf("%w: world flag %q: %v", ErrInvalidInput, world, err)
	}
	return v, nil
}

// ParseCountry checks the selector value; empty means the default.
func ParseCountry(country string) (string, error) {
	if country == "" {
		return DefaultInputState().SelectedCountry, nil
	}
	if !IsSelectableCountry(country) {
		return "", fmt.Errorf("%w: %q", ErrUnknownCountry, country)
	}
	return country, nil
}

func IsSelectableCountry(country string) bool {
	for _, c := range SelectableCountries {
		if c == country {
			return true
		}
	}
	return false
}
