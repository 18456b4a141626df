package members

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

const rosterFixture = `
<html><body>
<table class="bptable gray sortable">
<tr><th>Office</th><th>Name</th><th>Party</th><th>Date assumed office</th></tr>
<tr>
  <td>Texas State Senate District 1</td>
  <td><a href="/Some_Member">Jane Doe</a></td>
  <td>Republican</td>
  <td>January 10, 2023</td>
</tr>
<tr>
  <td>Texas State Senate District 2</td>
  <td>Vacant</td>
  <td></td>
  <td></td>
</tr>
<tr>
  <td>Texas State Senate District 3</td>
  <td>Jos&eacute; Pe&ntilde;a</td>
  <td>Democratic</td>
  <td>2015</td>
</tr>
</table>
</body></html>`

func parseFixture(t *testing.T, html, state, chamber string) []Record {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	records, err := ParseMemberTable(doc, state, chamber)
	require.NoError(t, err)
	return records
}

func TestParseMemberTable(t *testing.T) {
	records := parseFixture(t, rosterFixture, "TX", "Senate")
	require.Len(t, records, 3)

	require.Equal(t, Record{
		State: "TX", Chamber: "Senate", District: "1",
		Name: "Jane Doe", Party: "R",
		AssumedOffice: "January 10, 2023",
	}, records[0])

	require.True(t, records[1].IsVacant)
	require.Empty(t, records[1].Name)
	require.Empty(t, records[1].Party)
	require.Equal(t, "2", records[1].District)

	// entities decoded, party abbreviated
	require.Equal(t, "José Peña", records[2].Name)
	require.Equal(t, "D", records[2].Party)
}

func TestParseMemberTableMissing(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)
	_, err = ParseMemberTable(doc, "TX", "Senate")
	require.Error(t, err)
}

func TestExtractDistrict(t *testing.T) {
	for _, tc := range []struct {
		office, state, chamber, want string
	}{
		{"Texas State Senate District 1", "TX", "Senate", "1"},
		{"Maryland House of Delegates District 1A", "MD", "House of Delegates", "1A"},
		{"Nebraska Legislature District 1", "NE", "Legislature", "1"},
		{"New Hampshire House of Representatives Belknap 5", "NH", "House", "Belknap-5"},
		{"New Hampshire House of Representatives Rockingham 12", "NH", "House", "Rockingham-12"},
		{"Vermont House of Representatives Addison 1 District", "VT", "House", "Addison-1"},
		{"Vermont House of Representatives Grand Isle-Chittenden", "VT", "House", "Grand-Isle-Chittenden"},
		{"Vermont State Senate Addison District", "VT", "Senate", "Addison"},
		{"Washington House of Representatives District 1-Position 2", "WA", "House", "1-Position 2"},
	} {
		require.Equal(t, tc.want, ExtractDistrict(tc.office, tc.state, tc.chamber),
			"office %q", tc.office)
	}
}

func TestParseAssumedDate(t *testing.T) {
	d, ok := ParseAssumedDate("January 10, 2017")
	require.True(t, ok)
	require.Equal(t, AssumedDate{Year: 2017, Month: 1, Day: 10}, d)
	require.Equal(t, "2017-01-10", d.ISO())

	d, ok = ParseAssumedDate("2015")
	require.True(t, ok)
	require.True(t, d.YearOnly)
	require.Equal(t, "2015-01-01", d.ISO())

	for _, bad := range []string{"", "—", "-", "N/A", "sometime soon"} {
		_, ok := ParseAssumedDate(bad)
		require.False(t, ok, "input %q", bad)
	}
}
