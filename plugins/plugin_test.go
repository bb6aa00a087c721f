package plugins

import (
	"testing"
	"time"

	"carbonaware/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPropAccessors(t *testing.T) {
	start := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)
	props := models.Props{
		models.PropLocations: []string{"eastus"},
		models.PropStart:     start,
		models.PropEnd:       end,
		models.PropDuration:  15,
		models.PropLowest:    true,
	}

	locations, err := Locations(props)
	require.NoError(t, err)
	assert.Equal(t, []string{"eastus"}, locations)

	gotStart, err := Start(props)
	require.NoError(t, err)
	assert.Equal(t, start, gotStart)

	gotEnd, ok, err := End(props)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, end, gotEnd)

	duration, err := Duration(props)
	require.NoError(t, err)
	assert.Equal(t, 15, duration)

	assert.True(t, Lowest(props))
}

func TestPropAccessorsDefaults(t *testing.T) {
	props := models.Props{}

	locations, err := Locations(props)
	require.NoError(t, err)
	assert.Empty(t, locations)

	_, ok, err := End(props)
	require.NoError(t, err)
	assert.False(t, ok)

	duration, err := Duration(props)
	require.NoError(t, err)
	assert.Zero(t, duration)

	assert.False(t, Lowest(props))
}

func TestPropAccessorsRejectWrongTypes(t *testing.T) {
	props := models.Props{
		models.PropLocations: "eastus",
		models.PropStart:     "2022-01-01",
		models.PropEnd:       42,
		models.PropDuration:  "15",
	}

	_, err := Locations(props)
	assert.ErrorIs(t, err, ErrInvalidProperty)
	_, err = Start(props)
	assert.ErrorIs(t, err, ErrInvalidProperty)
	_, _, err = End(props)
	assert.ErrorIs(t, err, ErrInvalidProperty)
	_, err = Duration(props)
	assert.ErrorIs(t, err, ErrInvalidProperty)
}

func TestLowestRatings(t *testing.T) {
	data := []models.EmissionsData{
		{Location: "eastus", Rating: 200},
		{Location: "westus", Rating: 100},
		{Location: "northus", Rating: 300},
		{Location: "southus", Rating: 100},
	}

	lowest := LowestRatings(data)

	require.Len(t, lowest, 2)
	assert.Equal(t, "westus", lowest[0].Location)
	assert.Equal(t, "southus", lowest[1].Location)
}

func TestLowestRatingsEmpty(t *testing.T) {
	assert.Empty(t, LowestRatings(nil))
}
