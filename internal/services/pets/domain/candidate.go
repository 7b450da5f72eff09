// Package domain holds the candidate model and filter logic for pet browsing
package domain

import (
	"encoding/json"
	"time"
)

// TriState models an optional boolean that defaults to Unknown, not false
// Petfinder reports good-with flags as nullable; null must stay distinct from false
type TriState uint8

const (
	// Unknown means the upstream did not report a value
	Unknown TriState = iota
	// Yes is an explicit true
	Yes
	// No is an explicit false
	No
)

// TriOf converts a nullable bool into a TriState
func TriOf(b *bool) TriState {
	switch {
	case b == nil:
		return Unknown
	case *b:
		return Yes
	default:
		return No
	}
}

// Bool returns the explicit value and whether one is set
func (t TriState) Bool() (value, set bool) {
	switch t {
	case Yes:
		return true, true
	case No:
		return false, true
	default:
		return false, false
	}
}

// Set reports whether the state carries an explicit value
func (t TriState) Set() bool { return t != Unknown }

// MarshalJSON encodes Unknown as null so the wire mirrors the upstream shape
func (t TriState) MarshalJSON() ([]byte, error) {
	v, set := t.Bool()
	if !set {
		return []byte("null"), nil
	}
	return json.Marshal(v)
}

// UnmarshalJSON decodes null/absent as Unknown
func (t *TriState) UnmarshalJSON(b []byte) error {
	var v *bool
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*t = TriOf(v)
	return nil
}

// PhotoSet is one image in the sizes the upstream provides
type PhotoSet struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
	Full   string `json:"full"`
}

// Attributes are the boolean care flags on a candidate
type Attributes struct {
	SpayedNeutered bool `json:"spayed_neutered"`
	HouseTrained   bool `json:"house_trained"`
	SpecialNeeds   bool `json:"special_needs"`
	ShotsCurrent   bool `json:"shots_current"`
}

// Environment is the good-with block; each flag is independently tri-state
type Environment struct {
	Children TriState `json:"children"`
	Dogs     TriState `json:"dogs"`
	Cats     TriState `json:"cats"`
}

// Address is the contact location of the listing organization
type Address struct {
	City     string `json:"city"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

// Contact is how to reach the listing organization
type Contact struct {
	Email   string  `json:"email,omitempty"`
	Phone   string  `json:"phone,omitempty"`
	Address Address `json:"address"`
}

// Candidate is one adoptable animal from the upstream listing API
// id is the sole identity key; records are immutable once deserialized
type Candidate struct {
	ID             int64       `json:"id"`
	Name           string      `json:"name"`
	Type           string      `json:"type"`
	Species        string      `json:"species"`
	BreedPrimary   string      `json:"breed_primary,omitempty"`
	BreedSecondary string      `json:"breed_secondary,omitempty"`
	Age            string      `json:"age"`
	Size           string      `json:"size"`
	Gender         string      `json:"gender"`
	Colors         []string    `json:"colors,omitempty"`
	Photos         []PhotoSet  `json:"photos"`
	Description    string      `json:"description,omitempty"`
	Attributes     Attributes  `json:"attributes"`
	Environment    Environment `json:"environment"`
	Contact        Contact     `json:"contact"`
	PublishedAt    time.Time   `json:"published_at"`
	Distance       *float64    `json:"distance,omitempty"`
}

// HasPhotos reports whether the candidate carries at least one photo
func (c Candidate) HasPhotos() bool { return len(c.Photos) > 0 }

// Page is one fetch result. After local refinement len(Items) may be smaller
// than the requested page size and no longer correlates with TotalCount
type Page struct {
	Items       []Candidate `json:"items"`
	CurrentPage int         `json:"current_page"`
	TotalPages  int         `json:"total_pages"`
	TotalCount  int         `json:"total_count"`
}
