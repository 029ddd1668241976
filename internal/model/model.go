// Package model holds the read-only records served by the API.
//
// Dispensers and drinks are owned by external systems; this service only
// decodes them from the document store and shapes them for the response.
package model

import (
	"encoding/json"
)

const (
	fieldIngredientID    = "ingredient_id"
	fieldIngredientLabel = "ingredient_label"
	fieldID              = "id"
	fieldDispenserID     = "dispenser_id"
	fieldPumps           = "pumps"
)

// Pump is one slot on a dispenser.
//
// IngredientID and IngredientLabel are optional; an empty string means the
// field is absent or not a string. Attributes keeps every other stored field
// so a pump can be echoed back verbatim.
type Pump struct {
	IngredientID    string
	IngredientLabel string
	Attributes      map[string]any
}

// PumpFromMap decodes a pump from its stored document form.
func PumpFromMap(data map[string]any) Pump {
	p := Pump{Attributes: make(map[string]any, len(data))}

	for k, v := range data {
		switch k {
		case fieldIngredientID:
			if s, ok := v.(string); ok {
				p.IngredientID = s
				continue
			}
		case fieldIngredientLabel:
			if s, ok := v.(string); ok {
				p.IngredientLabel = s
				continue
			}
		}
		p.Attributes[k] = v
	}

	return p
}

// Populated reports whether both the ingredient id and label are set.
func (p Pump) Populated() bool {
	return p.IngredientID != "" && p.IngredientLabel != ""
}

func (p Pump) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Attributes)+2)
	for k, v := range p.Attributes {
		out[k] = v
	}
	if p.IngredientID != "" {
		out[fieldIngredientID] = p.IngredientID
	}
	if p.IngredientLabel != "" {
		out[fieldIngredientLabel] = p.IngredientLabel
	}
	return json.Marshal(out)
}

func (p *Pump) UnmarshalJSON(b []byte) error {
	var data map[string]any
	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}
	*p = PumpFromMap(data)
	return nil
}

// Dispenser is a physical device with a list of ingredient pumps.
type Dispenser struct {
	ID    string
	Pumps []Pump
}

// DispenserFromMap decodes a dispenser document. A missing or malformed
// pumps attribute yields a dispenser without pumps; entries that are not
// objects are skipped.
func DispenserFromMap(id string, data map[string]any) *Dispenser {
	d := &Dispenser{ID: id}

	raw, _ := data[fieldPumps].([]any)
	for _, entry := range raw {
		if m, ok := entry.(map[string]any); ok {
			d.Pumps = append(d.Pumps, PumpFromMap(m))
		}
	}

	return d
}

// PopulatedPumps returns the pumps that have both ingredient fields set,
// in their stored order.
func (d *Dispenser) PopulatedPumps() []Pump {
	pumps := make([]Pump, 0, len(d.Pumps))
	for _, p := range d.Pumps {
		if p.Populated() {
			pumps = append(pumps, p)
		}
	}
	return pumps
}

// Drink is a recipe linked to exactly one dispenser.
//
// ID is the store-assigned document id. Attributes holds every stored field
// other than dispenser_id, passed through unmodified.
type Drink struct {
	ID          string
	DispenserID string
	Attributes  map[string]any
}

// DrinkFromMap decodes a drink document.
func DrinkFromMap(id string, data map[string]any) Drink {
	d := Drink{ID: id, Attributes: make(map[string]any, len(data))}

	for k, v := range data {
		if k == fieldDispenserID {
			if s, ok := v.(string); ok {
				d.DispenserID = s
				continue
			}
		}
		d.Attributes[k] = v
	}

	return d
}

// MarshalJSON renders the document id followed by the stored fields.
// A stored field named "id" takes precedence over the document id.
func (d Drink) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Attributes)+2)
	out[fieldID] = d.ID
	if d.DispenserID != "" {
		out[fieldDispenserID] = d.DispenserID
	}
	for k, v := range d.Attributes {
		out[k] = v
	}
	return json.Marshal(out)
}

func (d *Drink) UnmarshalJSON(b []byte) error {
	var data map[string]any
	if err := json.Unmarshal(b, &data); err != nil {
		return err
	}

	id, _ := data[fieldID].(string)
	delete(data, fieldID)
	*d = DrinkFromMap(id, data)
	return nil
}

// DrinkMapping is the response body of the drinks lookup.
type DrinkMapping struct {
	PumpMapping []Pump  `json:"pump_mapping"`
	Drinks      []Drink `json:"drinks"`
}

// NewDrinkMapping assembles the response from a dispenser and its drinks.
// Both lists are always non-nil so they encode as JSON arrays.
func NewDrinkMapping(dispenser *Dispenser, drinks []Drink) *DrinkMapping {
	if drinks == nil {
		drinks = []Drink{}
	}
	return &DrinkMapping{
		PumpMapping: dispenser.PopulatedPumps(),
		Drinks:      drinks,
	}
}
