package worldbank

import (
	"encoding/json"
	"strconv"
)

type pageMeta struct {
	Page    flexInt      `json:"page"`
	Pages   flexInt      `json:"pages"`
	PerPage flexInt      `json:"per_page"`
	Total   flexInt      `json:"total"`
	Message []apiMessage `json:"message"`
}

type apiMessage struct {
	ID    string `json:"id"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

type idValue struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

type indicatorRow struct {
	Indicator       idValue  `json:"indicator"`
	Country         idValue  `json:"country"`
	CountryISO3Code string   `json:"countryiso3code"`
	Date            string   `json:"date"`
	Value           *float64 `json:"value"`
}

// flexInt accepts both 3 and "3"; the API is not consistent about it.
type flexInt int

func (n *flexInt) UnmarshalJSON(b []byte) error {
	var i int
	if err := json.Unmarshal(b, &i); err == nil {
		*n = flexInt(i)
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*n = 0
		return nil
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*n = flexInt(i)
	return nil
}
