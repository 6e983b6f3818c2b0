// Package sound resolves logical sound ids to playable files and drives
// the platform audio players.
package sound

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed assets/catalog.json
var catalogData []byte

// Option is one entry in the bundled sound catalog. A nil File means
// silence: the id is selectable but nothing is played.
type Option struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	File        *string `json:"file"`
}

// Silent reports whether selecting this option plays nothing.
func (o Option) Silent() bool {
	return o.File == nil
}

// Catalog returns the bundled sound options in catalog order.
func Catalog() ([]Option, error) {
	var options []Option
	if err := json.Unmarshal(catalogData, &options); err != nil {
		return nil, fmt.Errorf("failed to parse sound catalog: %w", err)
	}
	return options, nil
}

// Lookup finds a catalog option by id.
func Lookup(id string) (Option, error) {
	options, err := Catalog()
	if err != nil {
		return Option{}, err
	}
	for _, o := range options {
		if o.ID == id {
			return o, nil
		}
	}
	return Option{}, fmt.Errorf("unknown sound: %s", id)
}
