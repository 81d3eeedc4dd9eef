package schemas

import (
	"fmt"
	"strconv"
	"unicode/utf8"

	"github.com/rohits-web03/llamastore/internal/api/services"
	"github.com/rohits-web03/llamastore/internal/models"
)

const (
	minRating = 1
	maxRating = 5
)

type Llama struct {
	LlamaID int64             `json:"llamaId"`
	Name    string            `json:"name"`
	Age     int               `json:"age"`
	Color   models.LlamaColor `json:"color"`
	Rating  int               `json:"rating"`
}

func LlamaFromModel(l models.Llama) Llama {
	return Llama{LlamaID: l.ID, Name: l.Name, Age: l.Age, Color: l.Color, Rating: l.Rating}
}

func LlamasFromModels(ls []models.Llama) []Llama {
	out := make([]Llama, 0, len(ls))
	for _, l := range ls {
		out = append(out, LlamaFromModel(l))
	}
	return out
}

// LlamaID is the response body of the picture create/update endpoints.
type LlamaID struct {
	LlamaID int64 `json:"llamaId"`
}

// LlamaCreate is the body of POST /llama and PUT /llama/{llama_id}. Color is
// kept as a string so an unknown value becomes a field error rather than a
// decode failure.
type LlamaCreate struct {
	Name   *string `json:"name"`
	Age    *int    `json:"age"`
	Color  *string `json:"color"`
	Rating *int    `json:"rating"`
}

func (c LlamaCreate) Validate() (services.LlamaDraft, error) {
	var v ValidationErrors
	var d services.LlamaDraft

	if c.Name == nil {
		v.add("missing", bodyLoc("name"), "Field required", nil)
	} else if utf8.RuneCountInString(*c.Name) > models.MaxLlamaNameLength {
		v.add("string_too_long", bodyLoc("name"),
			fmt.Sprintf("String should have at most %d characters", models.MaxLlamaNameLength), *c.Name)
	} else {
		d.Name = *c.Name
	}

	if c.Age == nil {
		v.add("missing", bodyLoc("age"), "Field required", nil)
	} else {
		d.Age = *c.Age
	}

	if c.Color == nil {
		v.add("missing", bodyLoc("color"), "Field required", nil)
	} else if color, err := models.ParseLlamaColor(*c.Color); err != nil {
		v.add("enum", bodyLoc("color"), "Input should be 'brown', 'white', 'black' or 'gray'", *c.Color)
	} else {
		d.Color = color
	}

	switch {
	case c.Rating == nil:
		v.add("missing", bodyLoc("rating"), "Field required", nil)
	case *c.Rating < minRating:
		v.add("greater_than_equal", bodyLoc("rating"), "Input should be greater than or equal to 1", *c.Rating)
	case *c.Rating > maxRating:
		v.add("less_than_equal", bodyLoc("rating"), "Input should be less than or equal to 5", *c.Rating)
	default:
		d.Rating = *c.Rating
	}

	if err := v.err(); err != nil {
		return services.LlamaDraft{}, err
	}
	return d, nil
}

// ParseLlamaID parses the {llama_id} path parameter.
func ParseLlamaID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		var v ValidationErrors
		v.add("int_parsing", []string{"path", "llama_id"},
			"Input should be a valid integer, unable to parse string as an integer", raw)
		return 0, v
	}
	return id, nil
}
