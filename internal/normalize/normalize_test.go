package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"lowercases", "MIDNIGHTS", "midnights"},
		{"hyphen becomes space", "Jay-Z", "jay z"},
		{"strips punctuation", "Mr. Morale & The Big Steppers", "mr morale the big steppers"},
		{"collapses whitespace", "  The   Car \t ", "the car"},
		{"keeps digits", "1989 (Taylor's Version)", "1989 taylors version"},
		{"keeps accented letters", "Beyoncé", "beyoncé"},
		{"decomposed accent composes", "Beyoncé", "beyoncé"},
		{"non latin letters", "BTS 방탄소년단", "bts 방탄소년단"},
		{"only punctuation", "?!...", ""},
		{"apostrophes join words", "Don't Stop", "dont stop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Text(tt.input))
		})
	}
}

func TestText_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"Midnights (3am Edition)",
		"  SOS -- Deluxe!!  ",
		"Sigur Rós – Ágætis byrjun",
		"ΣΙΓΜΑΣ",
		"İstanbul",
		"tab\tand\nnewline",
		"a-b-c-",
	}

	for _, in := range inputs {
		once := Text(in)
		assert.Equal(t, once, Text(once), "Text not idempotent for %q", in)
	}
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"the", "car"}, Words("The Car, the CAR"))
	assert.Empty(t, Words("!!!"))
}

func TestKeywords(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"hip hop rap", []string{"hip", "hop", "rap"}},
		{"Alternative, Rock,indie", []string{"alternative", "rock", "indie"}},
		{" rock  rock ", []string{"rock"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Keywords(tt.input))
		})
	}
}

func TestCleanTitle(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Midnights (3am Edition)", "Midnights"},
		{"Midnights", "Midnights"},
		{"Hot Space (Deluxe Edition)", "Hot Space"},
		{"Abbey Road [2019 Remaster]", "Abbey Road"},
		{"Song Title (feat. Another Artist)", "Song Title"},
		{"Song Title [ft. Someone]", "Song Title"},
		{"Song Title featuring Someone Else", "Song Title"},
		{"Greatest Hits, Vol. 2", "Greatest Hits"},
		{"Chapter Volume III", "Chapter"},
		{"Renaissance Pt. 1", "Renaissance"},
		{"The Saga, Part 2,", "The Saga"},
		{"Espresso - Single", "Espresso"},
		{"Departure", "Departure"},
		{"Party Time", "Party Time"},
		{"  Too   Many  Spaces  ", "Too Many Spaces"},
		{"(Deluxe Edition)", "(Deluxe Edition)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanTitle(tt.input))
		})
	}
}
