package domain

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFullTitle(t *testing.T) {
	t.Run("includes release year", func(t *testing.T) {
		m := Movie{Title: "Free Guy", ReleaseDate: "2021-08-11"}
		assert.Equal(t, "Free Guy (2021)", m.FullTitle())
	})

	t.Run("omits year when date does not parse", func(t *testing.T) {
		m := Movie{Title: "Free Guy", ReleaseDate: "soon"}
		assert.Equal(t, "Free Guy ", m.FullTitle())
	})

	t.Run("omits year when date is empty", func(t *testing.T) {
		m := Movie{Title: "Free Guy"}
		assert.Equal(t, "Free Guy ", m.FullTitle())
	})
}

func TestInfoText(t *testing.T) {
	m := Movie{
		RunTime:     "1h 55m",
		ReleaseDate: "2021-08-11",
		Genre:       []string{"Comedy", "Adventure"},
	}
	assert.Equal(t, "1h 55m | 2021-08-11 | Comedy, Adventure", m.InfoText())

	m.Genre = nil
	assert.Equal(t, "1h 55m | 2021-08-11 ", m.InfoText())
}

func TestRatingText(t *testing.T) {
	m := Movie{Rating: 7.72, Votes: 1346}
	assert.Equal(t, "7.7 (1346 votes)", m.RatingText())
}

func TestToHoursAndMinutes(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{159, "2h 39m"},
		{115, "1h 55m"},
		{120, "2h 0m"},
		{59, "59m"},
		{1, "1m"},
		{0, "0m"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ToHoursAndMinutes(tt.minutes), "minutes=%d", tt.minutes)
	}

	format := regexp.MustCompile(`^(\d+h )?\d+m$`)
	for _, minutes := range []int{0, 30, 60, 61, 90, 145, 600} {
		assert.Regexp(t, format, ToHoursAndMinutes(minutes))
	}
}

func TestMovieEqual(t *testing.T) {
	base := Movie{
		ID:     2,
		Title:  "Free Guy",
		Genre:  []string{"Comedy"},
		Videos: []Video{{ID: "a", Key: "k"}},
	}

	same := base
	same.Genre = []string{"Comedy"}
	same.Videos = []Video{{ID: "a", Key: "k"}}
	assert.True(t, base.Equal(same))

	diffGenre := base
	diffGenre.Genre = []string{"Action"}
	assert.False(t, base.Equal(diffGenre))

	diffVideos := base
	diffVideos.Videos = []Video{{ID: "b", Key: "k"}}
	assert.False(t, base.Equal(diffVideos))

	diffTitle := base
	diffTitle.Title = "Free Guy 2"
	assert.False(t, base.Equal(diffTitle))
}
