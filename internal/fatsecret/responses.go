package fatsecret

import (
	"bytes"
	"encoding/json"

	"github.com/fitcoach/backend/pkg"
)

// oneOrMany decodes a field that FatSecret sends as a single object when
// there is one result and as an array otherwise.
type oneOrMany[T any] []T

func (o *oneOrMany[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*o = nil
		return nil
	}
	if data[0] == '[' {
		var items []T
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*o = items
		return nil
	}
	var item T
	if err := json.Unmarshal(data, &item); err != nil {
		return err
	}
	*o = oneOrMany[T]{item}
	return nil
}

func (o oneOrMany[T]) first() (T, bool) {
	var zero T
	if len(o) == 0 {
		return zero, false
	}
	return o[0], true
}

// flexString accepts ids that arrive either quoted or as bare numbers.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")):
		*s = ""
	case data[0] == '"':
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = flexString(str)
	case data[0] == '{', data[0] == '[':
		*s = ""
	default:
		*s = flexString(data)
	}
	return nil
}

func firstNonEmpty(values ...flexString) string {
	for _, v := range values {
		if v != "" {
			return string(v)
		}
	}
	return ""
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type errorEnvelope struct {
	Error  *apiError `json:"error"`
	Errors *struct {
		Error *apiError `json:"error"`
	} `json:"errors"`
}

func (e errorEnvelope) message() string {
	if e.Error != nil {
		return e.Error.Message
	}
	if e.Errors != nil && e.Errors.Error != nil {
		return e.Errors.Error.Message
	}
	return ""
}

func (e errorEnvelope) failed() bool {
	return e.Error != nil || e.Errors != nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// suggestion is one autocomplete entry. Plain string suggestions carry a
// name only.
type suggestion struct {
	FoodID    flexString `json:"food_id"`
	ID        flexString `json:"id"`
	FoodIDExt flexString `json:"food_id_ext"`
	FoodName  flexString `json:"food_name"`
	Value     flexString `json:"value"`
	Name      flexString `json:"name"`
}

func (s *suggestion) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		*s = suggestion{}
		return json.Unmarshal(data, &s.Name)
	}
	type plain suggestion
	return json.Unmarshal(data, (*plain)(s))
}

type autocompleteResponse struct {
	Foods *struct {
		Food oneOrMany[suggestion] `json:"food"`
	} `json:"foods"`
	Suggestions *struct {
		Suggestion oneOrMany[suggestion] `json:"suggestion"`
	} `json:"suggestions"`
	Results *struct {
		Result oneOrMany[suggestion] `json:"result"`
	} `json:"results"`
}

func (r autocompleteResponse) items() []suggestion {
	switch {
	case r.Foods != nil && len(r.Foods.Food) > 0:
		return r.Foods.Food
	case r.Suggestions != nil && len(r.Suggestions.Suggestion) > 0:
		return r.Suggestions.Suggestion
	case r.Results != nil:
		return r.Results.Result
	}
	return nil
}

type serving struct {
	ServingID              flexString    `json:"serving_id"`
	ServingDescription     flexString    `json:"serving_description"`
	ServingURL             flexString    `json:"serving_url"`
	MeasurementDescription flexString    `json:"measurement_description"`
	MetricServingAmount    pkg.FlexFloat `json:"metric_serving_amount"`
	MetricServingUnit      flexString    `json:"metric_serving_unit"`
	NumberOfUnits          pkg.FlexFloat `json:"number_of_units"`
	ServingSize            pkg.FlexFloat `json:"serving_size"`
	Calories               pkg.FlexFloat `json:"calories"`
	Protein                pkg.FlexFloat `json:"protein"`
	Fat                    pkg.FlexFloat `json:"fat"`
	Carbohydrate           pkg.FlexFloat `json:"carbohydrate"`
	ServingWeightGrams     pkg.FlexFloat `json:"serving_weight_grams"`
}

type food struct {
	FoodID          flexString    `json:"food_id"`
	FoodName        flexString    `json:"food_name"`
	BrandName       flexString    `json:"brand_name"`
	FoodType        flexString    `json:"food_type"`
	FoodDescription flexString    `json:"food_description"`
	Calories        pkg.FlexFloat `json:"calories"`
	Servings        *struct {
		Serving oneOrMany[serving] `json:"serving"`
	} `json:"servings"`
}

func (f food) servings() oneOrMany[serving] {
	if f.Servings == nil {
		return nil
	}
	return f.Servings.Serving
}

type searchResponse struct {
	Foods *struct {
		Food oneOrMany[food] `json:"food"`
	} `json:"foods"`
}

type foodResponse struct {
	Food *food `json:"food"`
}
