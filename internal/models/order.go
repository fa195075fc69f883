package models

import (
	"encoding/json"
	"time"

	"github.com/tavola-dev/tavola/internal/types"
)

// Order items are stored exactly as the client sent them; prices are not
// checked against the catalog.
type Order struct {
	ID        string            `json:"id"`
	Email     string            `json:"email"`
	Items     []json.RawMessage `json:"items"`
	Total     float64           `json:"total"`
	Address   string            `json:"address"`
	Contact   string            `json:"contact"`
	Status    string            `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// Quantity sums the quantity of every item. Items that are not objects or
// carry no numeric quantity count as zero.
func (o Order) Quantity() int {
	total := 0

	for _, raw := range o.Items {
		var item struct {
			Quantity types.FlexInt `json:"quantity"`
		}

		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}

		total += int(item.Quantity)
	}

	return total
}
