package types

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

type UserResponse struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	Contact    string `json:"contact"`
	NationalID string `json:"nationalId"`
}

// CartLine is a cart item resolved against the catalog. Available is false
// when the dish no longer exists and the fields come from the stored snapshot.
type CartLine struct {
	DishID      string  `json:"dishId"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Quantity    int     `json:"quantity"`
	Available   bool    `json:"available"`
}

// FlexInt accepts a JSON number or a numeric string, as browser forms often
// send quantities as strings.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	var raw string

	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	raw = strings.TrimSpace(raw)

	if raw == "" {
		*f = 0
		return nil
	}

	n, err := strconv.Atoi(raw)

	if err != nil {
		// Accept "2.0" style numbers but not fractions
		v, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || v != float64(int(v)) {
			return fmt.Errorf("invalid integer %q", raw)
		}
		n = int(v)
	}

	*f = FlexInt(n)
	return nil
}

// FlexFloat accepts a JSON number or a numeric string.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}

	var raw string

	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	} else {
		raw = string(data)
	}

	raw = strings.TrimSpace(raw)

	if raw == "" {
		*f = 0
		return nil
	}

	v, err := strconv.ParseFloat(raw, 64)

	if err != nil {
		return fmt.Errorf("invalid number %q", raw)
	}

	*f = FlexFloat(v)
	return nil
}
