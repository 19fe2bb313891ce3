package pkg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexFloat_Unmarshal(t *testing.T) {
	type payload struct {
		Calories FlexFloat `json:"calories"`
		Protein  FlexFloat `json:"protein"`
		Fat      FlexFloat `json:"fat"`
		Carbs    FlexFloat `json:"carbs"`
		Fiber    FlexFloat `json:"fiber"`
		Sugar    FlexFloat `json:"sugar"`
	}

	var p payload
	err := json.Unmarshal([]byte(`{"calories": 512.5, "protein": "31.2", "fat": "", "carbs": null, "fiber": "abc"}`), &p)
	require.NoError(t, err)

	assert.Equal(t, NewFlexFloat(512.5), p.Calories)
	assert.True(t, p.Protein.Valid)
	assert.InDelta(t, 31.2, p.Protein.Value, 0.0001)

	for name, f := range map[string]FlexFloat{"fat": p.Fat, "carbs": p.Carbs, "fiber": p.Fiber} {
		assert.True(t, f.Set, name)
		assert.False(t, f.Valid, name)
		assert.Nil(t, f.Ptr(), name)
		assert.Equal(t, float64(0), f.Or(0), name)
	}

	assert.False(t, p.Sugar.Set)
	assert.False(t, p.Sugar.Valid)
}

func TestFlexFloat_Marshal(t *testing.T) {
	out, err := json.Marshal(struct {
		A FlexFloat `json:"a"`
		B FlexFloat `json:"b"`
	}{A: NewFlexFloat(1.5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":1.5,"b":null}`, string(out))
}

func TestOptional(t *testing.T) {
	type payload struct {
		GoalDate Optional[string] `json:"goal_date"`
		Note     Optional[string] `json:"note"`
		Day      Optional[int]    `json:"day"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"goal_date": null, "day": 3}`), &p))

	assert.True(t, p.GoalDate.Set)
	assert.False(t, p.GoalDate.Valid)
	assert.False(t, p.Note.Set)
	assert.Equal(t, Some(3), p.Day)

	require.Error(t, json.Unmarshal([]byte(`{"day": "three"}`), &p))

	out, err := json.Marshal(payload{Day: Some(5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"goal_date":null,"note":null,"day":5}`, string(out))
}
