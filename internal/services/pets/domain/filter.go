package domain

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FilterSpec is a snapshot of active filter criteria
// Remote-eligible fields become upstream query params; the rest are evaluated
// locally on each fetched page because the upstream cannot filter on them
type FilterSpec struct {
	Type     string `json:"type,omitempty" validate:"omitempty,alpha"`
	Breed    string `json:"breed,omitempty" validate:"omitempty,max=100"`
	Age      string `json:"age,omitempty" validate:"omitempty,alpha"`
	Size     string `json:"size,omitempty" validate:"omitempty,alpha"`
	Gender   string `json:"gender,omitempty" validate:"omitempty,alpha"`
	Location string `json:"location,omitempty" validate:"omitempty,max=120"`
	Distance int    `json:"distance,omitempty" validate:"omitempty,min=1,max=500"`

	HasPhotos    bool     `json:"has_photos,omitempty"`
	GoodWithKids TriState `json:"good_with_kids,omitempty"`
	GoodWithDogs TriState `json:"good_with_dogs,omitempty"`
	GoodWithCats TriState `json:"good_with_cats,omitempty"`
}

// Residual holds the predicates the upstream cannot apply
type Residual struct {
	HasPhotos bool
	Kids      TriState
	Dogs      TriState
	Cats      TriState
}

// Empty reports whether no residual predicate is set
func (r Residual) Empty() bool {
	return !r.HasPhotos && !r.Kids.Set() && !r.Dogs.Set() && !r.Cats.Set()
}

var (
	zipPattern       = regexp.MustCompile(`^\d{5}$`)
	cityStatePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z ]*,\s*[A-Za-z][A-Za-z ]*$`)

	lower = cases.Lower(language.English)
)

// ValidLocation accepts exactly a 5-digit postal code or a "City, State" pattern
// Anything else must never reach the upstream as a location parameter
func ValidLocation(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return zipPattern.MatchString(s) || cityStatePattern.MatchString(s)
}

// Split partitions the filter into remote query parameters and residual predicates
//
// A remote key is included only when its field is set; distance rides along only
// when location is present and valid. Enum-ish values are lower-cased so the
// upstream sees its canonical vocabulary regardless of caller casing
func (f FilterSpec) Split() (url.Values, Residual) {
	params := url.Values{}

	setEnum := func(key, val string) {
		if v := strings.TrimSpace(val); v != "" {
			params.Set(key, lower.String(v))
		}
	}
	setEnum("type", f.Type)
	setEnum("breed", f.Breed)
	setEnum("age", f.Age)
	setEnum("size", f.Size)
	setEnum("gender", f.Gender)

	if loc := strings.TrimSpace(f.Location); ValidLocation(loc) {
		params.Set("location", loc)
		if f.Distance > 0 {
			params.Set("distance", strconv.Itoa(f.Distance))
		}
	}

	return params, Residual{
		HasPhotos: f.HasPhotos,
		Kids:      f.GoodWithKids,
		Dogs:      f.GoodWithDogs,
		Cats:      f.GoodWithCats,
	}
}
