package experience

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-01")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", d.String())

	d, err = ParseDate("2024-03-01T10:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", d.String())

	_, err = ParseDate("03/01/2024")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestWorkExperienceJSON(t *testing.T) {
	end := NewDate(time.Date(2025, 6, 30, 15, 4, 5, 0, time.UTC))
	w := WorkExperience{
		ID:        3,
		ProfileID: 1,
		Company:   "Acme",
		Role:      "Engineer",
		StartDate: NewDate(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)),
		EndDate:   &end,
	}

	b, err := json.Marshal(w)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"profile_id":1,"company":"Acme","role":"Engineer","start_date":"2024-01-02","end_date":"2025-06-30","description":""}`, string(b))

	w.EndDate = nil
	assert.True(t, w.Current())
	b, err = json.Marshal(w)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"end_date":null`)
}
