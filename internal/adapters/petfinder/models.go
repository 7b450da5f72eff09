package petfinder

import (
	"time"

	"pawmatch/internal/services/pets/domain"
)

// wire shapes as the upstream serves them; nullable booleans stay
// pointers here and collapse to tri-state only at the mapping boundary

type wirePhoto struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
	Full   string `json:"full"`
}

type wireBreeds struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Mixed     bool   `json:"mixed"`
}

type wireAttributes struct {
	SpayedNeutered bool `json:"spayed_neutered"`
	HouseTrained   bool `json:"house_trained"`
	SpecialNeeds   bool `json:"special_needs"`
	ShotsCurrent   bool `json:"shots_current"`
}

type wireEnvironment struct {
	Children *bool `json:"children"`
	Dogs     *bool `json:"dogs"`
	Cats     *bool `json:"cats"`
}

type wireAddress struct {
	City     string `json:"city"`
	State    string `json:"state"`
	Postcode string `json:"postcode"`
	Country  string `json:"country"`
}

type wireContact struct {
	Email   string      `json:"email"`
	Phone   string      `json:"phone"`
	Address wireAddress `json:"address"`
}

type wireAnimal struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Type        string          `json:"type"`
	Species     string          `json:"species"`
	Breeds      wireBreeds      `json:"breeds"`
	Age         string          `json:"age"`
	Size        string          `json:"size"`
	Gender      string          `json:"gender"`
	Colors      wireColors      `json:"colors"`
	Photos      []wirePhoto     `json:"photos"`
	Description string          `json:"description"`
	Attributes  wireAttributes  `json:"attributes"`
	Environment wireEnvironment `json:"environment"`
	Contact     wireContact     `json:"contact"`
	PublishedAt time.Time       `json:"published_at"`
	Distance    *float64        `json:"distance"`
}

type wireColors struct {
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Tertiary  string `json:"tertiary"`
}

type wirePagination struct {
	CountPerPage int `json:"count_per_page"`
	TotalCount   int `json:"total_count"`
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
}

type wireAnimalsPage struct {
	Animals    []wireAnimal   `json:"animals"`
	Pagination wirePagination `json:"pagination"`
}

type wireAnimalEnvelope struct {
	Animal wireAnimal `json:"animal"`
}

func (w wireAnimal) toDomain() domain.Candidate {
	c := domain.Candidate{
		ID:             w.ID,
		Name:           w.Name,
		Type:           w.Type,
		Species:        w.Species,
		BreedPrimary:   w.Breeds.Primary,
		BreedSecondary: w.Breeds.Secondary,
		Age:            w.Age,
		Size:           w.Size,
		Gender:         w.Gender,
		Description:    w.Description,
		Attributes: domain.Attributes{
			SpayedNeutered: w.Attributes.SpayedNeutered,
			HouseTrained:   w.Attributes.HouseTrained,
			SpecialNeeds:   w.Attributes.SpecialNeeds,
			ShotsCurrent:   w.Attributes.ShotsCurrent,
		},
		Environment: domain.Environment{
			Children: domain.TriOf(w.Environment.Children),
			Dogs:     domain.TriOf(w.Environment.Dogs),
			Cats:     domain.TriOf(w.Environment.Cats),
		},
		Contact: domain.Contact{
			Email: w.Contact.Email,
			Phone: w.Contact.Phone,
			Address: domain.Address{
				City:     w.Contact.Address.City,
				State:    w.Contact.Address.State,
				Postcode: w.Contact.Address.Postcode,
				Country:  w.Contact.Address.Country,
			},
		},
		PublishedAt: w.PublishedAt,
		Distance:    w.Distance,
	}
	for _, s := range []string{w.Colors.Primary, w.Colors.Secondary, w.Colors.Tertiary} {
		if s != "" {
			c.Colors = append(c.Colors, s)
		}
	}
	for _, p := range w.Photos {
		c.Photos = append(c.Photos, domain.PhotoSet{
			Small:  p.Small,
			Medium: p.Medium,
			Large:  p.Large,
			Full:   p.Full,
		})
	}
	return c
}

func (w wireAnimalsPage) toDomain() domain.Page {
	out := domain.Page{
		Items:       make([]domain.Candidate, 0, len(w.Animals)),
		CurrentPage: w.Pagination.CurrentPage,
		TotalPages:  w.Pagination.TotalPages,
		TotalCount:  w.Pagination.TotalCount,
	}
	for _, a := range w.Animals {
		out.Items = append(out.Items, a.toDomain())
	}
	return out
}
