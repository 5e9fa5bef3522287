package genre

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Hip Hop", "hip-hop"},
		{"Beyoncé", "beyonce"},
		{"Alt/Indie Rock", "alt-indie-rock"},
		{"  --R&B--  ", "r-b"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestMatchesAny(t *testing.T) {
	tests := []struct {
		name     string
		tags     []string
		keywords []string
		want     bool
	}{
		{"substring", []string{"southern hip hop"}, []string{"hip", "rap"}, true},
		{"case insensitive", []string{"Alternative Rock"}, []string{"rock"}, true},
		{"pop is not rock", []string{"pop", "dance pop"}, []string{"alternative", "rock", "indie"}, false},
		{"emo is not rock", []string{"emo"}, []string{"rock"}, false},
		{"indie is not rock", []string{"indie", "shoegaze"}, []string{"rock"}, false},
		{"trap is not hip", []string{"trap"}, []string{"hip"}, false},
		{"spans joined tags", []string{"hip", "hop"}, []string{"hip hop"}, true},
		{"no keywords", []string{"pop"}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesAny(tt.tags, tt.keywords))
		})
	}
}
