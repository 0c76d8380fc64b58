package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dcrhub/internal/models"
)

func TestEscapeHTML(t *testing.T) {
	assert.Equal(t, "&amp;&lt;&gt;&quot;&#039;", EscapeHTML(`&<>"'`))
	assert.Equal(t, "plain", EscapeHTML("plain"))
}

func TestSafeURL(t *testing.T) {
	for in, want := range map[string]string{
		"https://example.com/r?id=1": "https://example.com/r?id=1",
		"http://example.com":         "http://example.com",
		"/replays/1":                 "/replays/1",
		"#":                          "#",
		"javascript:alert(1)":        "#",
		"JavaScript:alert(1)":        "#",
		"data:text/html,hi":          "#",
		"":                           "#",
	} {
		assert.Equal(t, want, SafeURL(in), in)
	}
}

func TestProject_EscapesMarkup(t *testing.T) {
	rec := Project(models.CanonicalRace{
		Course: "Ascot & Co",
		Note:   "<script>alert('x')</script>",
		Title:  `"Quoted"`,
	})

	assert.NotContains(t, rec.Note, "<")
	assert.NotContains(t, rec.Note, ">")
	assert.Equal(t, "Ascot &amp; Co", rec.Course)
	assert.Equal(t, "&quot;Quoted&quot;", rec.Title)
}

func TestProject_EmptyRace(t *testing.T) {
	rec := Project(models.CanonicalRace{})

	for _, s := range []string{rec.Date, rec.OffTime, rec.Course, rec.Title, rec.Horse, rec.Position, rec.StartingPrice, rec.Note} {
		assert.Empty(t, s)
	}

	assert.NotNil(t, rec.Links)
}

func TestProject_Links(t *testing.T) {
	rec := Project(models.CanonicalRace{
		Date: "2024-01-01",
		ReplayLinks: []models.ReplayLink{
			{Label: "ATR <hd>", URL: "https://example.com/?a=1&b=2"},
			{Label: "Replay", URL: "javascript:alert(1)"},
		},
	})

	assert.Equal(t, "01/01/2024", rec.Date)
	require.Len(t, rec.Links, 2)
	assert.Equal(t, "ATR &lt;hd&gt;", rec.Links[0].Label)
	assert.Equal(t, "https://example.com/?a=1&amp;b=2", rec.Links[0].URL)
	assert.Equal(t, "#", rec.Links[1].URL)
}

func TestProjectAll_PreservesOrder(t *testing.T) {
	recs := ProjectAll([]models.CanonicalRace{{Course: "B"}, {Course: "A"}, {Course: "C"}})

	var got []string
	for _, r := range recs {
		got = append(got, r.Course)
	}

	assert.Equal(t, "B A C", strings.Join(got, " "))
	assert.NotNil(t, ProjectAll(nil))
}
