package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Robert J. Smith Jr.", "robert smith"},
		{"Robert J. K. Smith", "robert smith"},
		{"Jane A. Doe", "jane doe"},
		{"Robert “Bob” Smith", "robert smith"},
		{"E. Sam Jones", "sam jones"},
		{`Henry "Hank" Zuber`, "henry zuber"},
		{"R.J. Sullivan", "rj sullivan"},
		{"José Peña", "jose pena"},
		{"Walter   Runte   Sr", "walter runte"},
		{"Maria Luisa Flores", "maria luisa flores"},
		{"O'Brien", "o'brien"},
		{"Cher", "cher"},
		{"", ""},
	}
	for _, c := range cases {
		require.Equal(t, c.want, NormalizeName(c.in), "input: %q", c.in)
	}
}

func TestNormalizeNameIdempotent(t *testing.T) {
	names := []string{
		"Robert J. Smith Jr.",
		"José Peña",
		`Thomas "Tony" Exum`,
		"Robert “Bob” Smith",
		"Glenn ‘Mike’ Prax",
		"E. Sam Jones",
		"Brandy Fluker Oakley",
		"R.C. Sullivan III",
	}
	for _, n := range names {
		once := NormalizeName(n)
		require.Equal(t, once, NormalizeName(once), "input: %q", n)
	}
}

func TestNormalizeNameKeepsSingleWord(t *testing.T) {
	require.Equal(t, "j", NormalizeName("J."))
	require.Equal(t, "smith", NormalizeName("Smith"))
}

func TestStripAccents(t *testing.T) {
	require.Equal(t, "Pena", StripAccents("Peña"))
	require.Equal(t, "Munoz", StripAccents("Muñoz"))
	require.Equal(t, "plain", StripAccents("plain"))
}
