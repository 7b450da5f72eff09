package domain_test

import (
	"testing"

	"pawmatch/internal/services/pets/domain"
)

func TestValidLocation(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"90210", true},
		{"Los Angeles, CA", true},
		{"Los Angeles,CA", true},
		{"Los Angeles", false},
		{"9021", false},
		{"902101", false},
		{"90210-1234", false},
		{"Los Angeles, CA 90210", false},
		{"", false},
		{"  ", false},
	}
	for _, c := range cases {
		if got := domain.ValidLocation(c.in); got != c.want {
			t.Fatalf("ValidLocation(%q): expected %v, got %v", c.in, c.want, got)
		}
	}
}

func TestSplitIncludesOnlySetFields(t *testing.T) {
	f := domain.FilterSpec{Type: "dog", Gender: "female"}
	params, res := f.Split()

	if params.Get("type") != "dog" || params.Get("gender") != "female" {
		t.Fatalf("missing set fields: %v", params)
	}
	for _, absent := range []string{"age", "size", "breed", "location", "distance"} {
		if params.Has(absent) {
			t.Fatalf("unset field %q leaked into params: %v", absent, params)
		}
	}
	if !res.Empty() {
		t.Fatalf("expected empty residual, got %+v", res)
	}
}

func TestSplitLowercasesEnumValues(t *testing.T) {
	f := domain.FilterSpec{Type: "Dog", Age: "BABY", Size: "Medium"}
	params, _ := f.Split()
	if params.Get("type") != "dog" || params.Get("age") != "baby" || params.Get("size") != "medium" {
		t.Fatalf("expected lower-cased values: %v", params)
	}
}

func TestSplitDistanceRequiresValidLocation(t *testing.T) {
	// valid zip: both travel
	params, _ := domain.FilterSpec{Location: "90210", Distance: 50}.Split()
	if params.Get("location") != "90210" || params.Get("distance") != "50" {
		t.Fatalf("expected location+distance, got %v", params)
	}

	// valid city/state: both travel
	params, _ = domain.FilterSpec{Location: "Los Angeles, CA", Distance: 25}.Split()
	if params.Get("location") != "Los Angeles, CA" || params.Get("distance") != "25" {
		t.Fatalf("expected city/state+distance, got %v", params)
	}

	// invalid location: both silently dropped
	params, _ = domain.FilterSpec{Location: "Los Angeles", Distance: 25}.Split()
	if params.Has("location") || params.Has("distance") {
		t.Fatalf("invalid location must drop location and distance: %v", params)
	}

	// distance without location: dropped
	params, _ = domain.FilterSpec{Distance: 25}.Split()
	if params.Has("distance") {
		t.Fatalf("distance without location must be dropped: %v", params)
	}
}

func TestSplitResidualCarriesLocalPredicates(t *testing.T) {
	f := domain.FilterSpec{
		HasPhotos:    true,
		GoodWithKids: domain.Yes,
		GoodWithCats: domain.No,
	}
	params, res := f.Split()
	if len(params) != 0 {
		t.Fatalf("local predicates must not become query params: %v", params)
	}
	if !res.HasPhotos || res.Kids != domain.Yes || res.Cats != domain.No || res.Dogs != domain.Unknown {
		t.Fatalf("bad residual: %+v", res)
	}
}
