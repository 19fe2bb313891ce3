package fatsecret

type Suggestion struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type SearchItem struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Brand       *string `json:"brand"`
	Description string  `json:"description"`
	Calories    float64 `json:"calories"`
	Type        string  `json:"type"`
}

type Serving struct {
	ID                     string  `json:"id"`
	Description            string  `json:"description"`
	MetricAmount           float64 `json:"metricAmount"`
	MetricUnit             string  `json:"metricUnit"`
	NumberOfUnits          float64 `json:"numberOfUnits"`
	MeasurementDescription string  `json:"measurementDescription"`
	Calories               float64 `json:"calories"`
	Protein                float64 `json:"protein"`
	Fat                    float64 `json:"fat"`
	Carbs                  float64 `json:"carbs"`
	ServingWeightGrams     float64 `json:"servingWeightGrams"`
}

type Food struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Brand    *string   `json:"brand"`
	Servings []Serving `json:"servings"`
}

func optionalString(s flexString) *string {
	if s == "" {
		return nil
	}
	v := string(s)
	return &v
}

func toSuggestions(items []suggestion) []Suggestion {
	suggestions := make([]Suggestion, 0, len(items))
	for _, item := range items {
		s := Suggestion{
			ID:   firstNonEmpty(item.FoodID, item.ID, item.FoodIDExt),
			Name: firstNonEmpty(item.FoodName, item.Value, item.Name),
		}
		if s.ID == "" || s.Name == "" {
			continue
		}
		suggestions = append(suggestions, s)
	}
	return suggestions
}

func toSearchItems(foods []food) []SearchItem {
	items := make([]SearchItem, 0, len(foods))
	for _, f := range foods {
		if f.FoodID == "" {
			continue
		}
		calories := f.Calories.Or(0)
		if f.FoodType == "Brand" {
			calories = 0
			if s, ok := f.servings().first(); ok {
				calories = s.Calories.Or(0)
			}
		}
		items = append(items, SearchItem{
			ID:          string(f.FoodID),
			Name:        string(f.FoodName),
			Brand:       optionalString(f.BrandName),
			Description: string(f.FoodDescription),
			Calories:    calories,
			Type:        string(f.FoodType),
		})
	}
	return items
}

func toFood(f food) *Food {
	result := &Food{
		ID:       string(f.FoodID),
		Name:     string(f.FoodName),
		Brand:    optionalString(f.BrandName),
		Servings: []Serving{},
	}
	for _, s := range f.servings() {
		description := firstNonEmpty(s.ServingDescription, s.ServingURL, s.MeasurementDescription)
		if s.ServingID == "" || description == "" {
			continue
		}
		units := 1.0
		switch {
		case s.NumberOfUnits.Valid && s.NumberOfUnits.Value != 0:
			units = s.NumberOfUnits.Value
		case s.ServingSize.Valid && s.ServingSize.Value != 0:
			units = s.ServingSize.Value
		}
		result.Servings = append(result.Servings, Serving{
			ID:                     string(s.ServingID),
			Description:            description,
			MetricAmount:           s.MetricServingAmount.Or(0),
			MetricUnit:             string(s.MetricServingUnit),
			NumberOfUnits:          units,
			MeasurementDescription: string(s.MeasurementDescription),
			Calories:               s.Calories.Or(0),
			Protein:                s.Protein.Or(0),
			Fat:                    s.Fat.Or(0),
			Carbs:                  s.Carbohydrate.Or(0),
			ServingWeightGrams:     s.ServingWeightGrams.Or(0),
		})
	}
	return result
}
