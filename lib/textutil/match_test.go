package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNamesMatch(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"Bob Smith", "Robert Smith", true},
		{"Jane Doe", "Jane A. Doe", true},
		{"Harris", "Harris Davila", true},
		{"Caroline Harris Davila", "Caroline Harris", true},
		{"J. Smith", "John Smith", true},
		{"Lulu Flores", "Maria Luisa Flores", true},
		{"Steph Curry", "Stephanie Curry", true},
		{"José Peña", "Jose Pena", true},
		{`Glenn "Mike" Prax`, "Mike Prax", true},
		{"Walter Runte Jr.", "Gerry Runte", false},
		{"LeMario Brown", "Liz Brown", false},
		{"John Smith", "John Jones", false},
		{"", "John Smith", false},
		{"John Smith", "", false},
	}
	for _, c := range cases {
		require.Equal(t, c.want, NamesMatch(c.a, c.b), "a=%q b=%q", c.a, c.b)
	}
}

func TestNamesMatchSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Bob Smith", "Robert Smith"},
		{"Harris", "Harris Davila"},
		{"J. Smith", "John Smith"},
		{"Walter Runte", "Gerry Runte"},
		{"Jane Doe", "John Roe"},
	}
	for _, p := range pairs {
		require.Equal(t, NamesMatch(p[0], p[1]), NamesMatch(p[1], p[0]), "a=%q b=%q", p[0], p[1])
	}
}

func TestNamesMatchReflexive(t *testing.T) {
	for _, n := range []string{"Jane Doe", "Robert J. Smith Jr.", "José Peña", "Cher"} {
		require.True(t, NamesMatch(n, n), "name: %q", n)
	}
}

func TestNicknamesMatch(t *testing.T) {
	require.True(t, NicknamesMatch("bob", "robert"))
	require.True(t, NicknamesMatch("robert", "bob"))
	require.True(t, NicknamesMatch("bill", "will"))
	require.True(t, NicknamesMatch("lulu", "maria luisa"))
	require.False(t, NicknamesMatch("bob", "william"))
	require.True(t, NicknamesMatch("same", "same"))
}

// a variant listed under several formal names carries its whole group
// along, so two variants of the same formal name stay equivalent even
// when one of them also appears under another formal name
func TestNicknamesMatchSharedVariant(t *testing.T) {
	// "mike" is also a variant of glenn and michel, "doc" of arthur;
	// both remain variants of michael
	require.True(t, NicknamesMatch("mike", "doc"))
	require.True(t, NicknamesMatch("doc", "mike"))
	require.True(t, NicknamesMatch("glenn", "michael"))
	require.True(t, NicknamesMatch("chuy", "juan"))
	require.True(t, NicknamesMatch("chuy", "jesus"))
	require.False(t, NicknamesMatch("mike", "bob"))
}

// every member of a variant group must be equivalent to every other member,
// in both directions
func TestNicknameGroupClosure(t *testing.T) {
	for _, e := range nicknameTable {
		group := append([]string{e.formal}, e.variants...)
		for _, a := range group {
			for _, b := range group {
				require.True(t, NicknamesMatch(a, b), "a=%q b=%q", a, b)
			}
		}
	}
}
