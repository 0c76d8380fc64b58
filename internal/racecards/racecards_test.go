package racecards

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcrhub/internal/models"
)

func TestNormalize_TolerantKeys(t *testing.T) {
	doc := map[string]any{
		"updated_at": "2025-06-18T07:00:00Z",
		"meetings": []any{
			map[string]any{
				"venue": "Ascot",
				"date":  "2025-06-18",
				"races": []any{
					map[string]any{
						"time": "14:30",
						"name": "Queen Anne Stakes",
						"entrants": []any{
							map[string]any{
								"number":      json.Number("1"),
								"horse_name":  "Charyn",
								"jockey_name": "S. Levey",
								"trainer":     "G. Boughey",
								"age":         json.Number("5"),
								"stall":       json.Number("4"),
								"forecast_sp": "5/2",
							},
						},
					},
				},
			},
		},
	}

	got, err := Normalize(doc)
	require.NoError(t, err)

	want := models.CardsDocument{
		UpdatedAt: "2025-06-18T07:00:00Z",
		Meetings: []models.Meeting{{
			Course: "Ascot",
			Date:   "2025-06-18",
			Races: []models.CardRace{{
				OffTime: "14:30",
				Title:   "Queen Anne Stakes",
				Runners: []models.Runner{{
					No:      "1",
					Horse:   "Charyn",
					Jockey:  "S. Levey",
					Trainer: "G. Boughey",
					Age:     "5",
					Draw:    "4",
					Odds:    "5/2",
				}},
			}},
		}},
	}

	assert.Equal(t, want, got)
}

func TestNormalize_MissingMeetings(t *testing.T) {
	got, err := Normalize(map[string]any{})
	require.NoError(t, err)
	assert.NotNil(t, got.Meetings)
	assert.Empty(t, got.Meetings)
}

func TestNormalize_MalformedEntries(t *testing.T) {
	got, err := Normalize([]any{"junk", map[string]any{"course": "York", "races": "none"}})
	require.NoError(t, err)
	require.Len(t, got.Meetings, 2)

	assert.Equal(t, models.Meeting{Races: []models.CardRace{}}, got.Meetings[0])
	assert.Equal(t, "York", got.Meetings[1].Course)
	assert.NotNil(t, got.Meetings[1].Races)
	assert.Empty(t, got.Meetings[1].Races)
}

func TestNormalize_UnsupportedDocument(t *testing.T) {
	_, err := Normalize("cards")
	assert.ErrorIs(t, err, ErrUnsupportedDocument)

	_, err = Normalize(nil)
	assert.ErrorIs(t, err, ErrUnsupportedDocument)
}

func TestStatusLine(t *testing.T) {
	assert.Equal(t, "Meetings: 0", StatusLine(0))
	assert.Equal(t, "Meetings: 3", StatusLine(3))
}
