package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// StringList stores a JSON array of strings in a single column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// GroceryItem is one requested line in a grocery order.
type GroceryItem struct {
	Name          string          `json:"name" binding:"required"`
	Quantity      string          `json:"quantity" binding:"required"`
	EstimatedCost decimal.Decimal `json:"estimatedCost"`
}

// GroceryItemList stores a JSON array of grocery items in a single column.
type GroceryItemList []GroceryItem

func (l GroceryItemList) Value() (driver.Value, error) {
	if l == nil {
		l = GroceryItemList{}
	}
	return json.Marshal(l)
}

func (l *GroceryItemList) Scan(value any) error {
	if value == nil {
		*l = GroceryItemList{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for GroceryItemList", value)
	}
}
