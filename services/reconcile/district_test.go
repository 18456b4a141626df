package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"statehouse-backend/services/members"
	"statehouse-backend/services/seatstore"
)

func keySet(keys ...[3]string) KeySet {
	set := KeySet{}
	for _, k := range keys {
		set[seatstore.SeatKey{State: k[0], Chamber: k[1], District: k[2]}] = true
	}
	return set
}

func TestCanonicalizeNumeric(t *testing.T) {
	n := BuildNormalizer(nil)
	known := keySet([3]string{"TX", "Senate", "7"})

	key, ok := n.Canonicalize("TX", "Senate", "7", known)
	require.True(t, ok)
	require.Equal(t, "7", key)

	key, ok = n.Canonicalize("TX", "Senate", "07", known)
	require.True(t, ok)
	require.Equal(t, "7", key)

	_, ok = n.Canonicalize("TX", "Senate", "99", known)
	require.False(t, ok)
}

func TestCanonicalizeAlaskaSenateLetters(t *testing.T) {
	n := BuildNormalizer(nil)
	known := keySet(
		[3]string{"AK", "Senate", "1"},
		[3]string{"AK", "Senate", "20"},
	)

	key, ok := n.Canonicalize("AK", "Senate", "A", known)
	require.True(t, ok)
	require.Equal(t, "1", key)

	key, ok = n.Canonicalize("AK", "Senate", "T", known)
	require.True(t, ok)
	require.Equal(t, "20", key)
}

func TestCanonicalizeMinnesotaHouseSubDistricts(t *testing.T) {
	n := BuildNormalizer(nil)
	known := keySet(
		[3]string{"MN", "House", "1"},
		[3]string{"MN", "House", "2"},
		[3]string{"MN", "House", "13"},
		[3]string{"MN", "House", "14"},
	)

	for raw, want := range map[string]string{
		"1A": "1", "1B": "2", "7A": "13", "7B": "14",
	} {
		key, ok := n.Canonicalize("MN", "House", raw, known)
		require.True(t, ok, "raw %q", raw)
		require.Equal(t, want, key, "raw %q", raw)
	}
}

func TestCanonicalizePairedHouse(t *testing.T) {
	n := BuildNormalizer(nil)
	known := keySet(
		[3]string{"WA", "House", "4"},
		[3]string{"ID", "House", "4"},
		[3]string{"NJ", "Assembly", "4"},
	)

	key, ok := n.Canonicalize("WA", "House", "4-Position 1", known)
	require.True(t, ok)
	require.Equal(t, "4", key)

	key, ok = n.Canonicalize("WA", "House", "4-Position 2", known)
	require.True(t, ok)
	require.Equal(t, "4", key)

	key, ok = n.Canonicalize("ID", "House", "4A", known)
	require.True(t, ok)
	require.Equal(t, "4", key)

	key, ok = n.Canonicalize("ID", "House", "4B", known)
	require.True(t, ok)
	require.Equal(t, "4", key)

	// the base district groups both seats, so A and B resolve identically
	a, _ := n.Canonicalize("NJ", "Assembly", "4A", known)
	b, _ := n.Canonicalize("NJ", "Assembly", "4B", known)
	require.Equal(t, a, b)
}

func TestCanonicalizeVermont(t *testing.T) {
	n := BuildNormalizer(nil)
	known := keySet(
		[3]string{"VT", "House", "Addison"},
		[3]string{"VT", "House", "Grand Isle-Chittenden"},
		[3]string{"VT", "Senate", "Essex-Orleans"},
		[3]string{"VT", "Senate", "Grand Isle"},
	)

	key, ok := n.Canonicalize("VT", "House", "Addison-1", known)
	require.True(t, ok)
	require.Equal(t, "Addison", key)

	key, ok = n.Canonicalize("VT", "House", "Grand-Isle-Chittenden", known)
	require.True(t, ok)
	require.Equal(t, "Grand Isle-Chittenden", key)

	// a source-atomic county resolves to the combined store district
	key, ok = n.Canonicalize("VT", "Senate", "Essex", known)
	require.True(t, ok)
	require.Equal(t, "Essex-Orleans", key)

	key, ok = n.Canonicalize("VT", "Senate", "Grand-Isle", known)
	require.True(t, ok)
	require.Equal(t, "Grand Isle", key)
}

func maRecord(chamber, district string) members.Record {
	return members.Record{State: "MA", Chamber: chamber, District: district, Name: "X"}
}

func TestCanonicalizeMassachusetts(t *testing.T) {
	// store numbering is the alphabetical rank of the transliterated name
	records := []members.Record{
		maRecord("Senate", "1st Suffolk District"),
		maRecord("Senate", "2nd Suffolk District"),
		maRecord("Senate", "Berkshire, Hampden, Franklin, and Hampshire District"),
		maRecord("Senate", "Cape and Islands District"),
		maRecord("House", "1st Barnstable District"),
		maRecord("House", "10th Suffolk District"),
	}
	n := BuildNormalizer(records)

	// sorted transliterated Senate names:
	//   "Berkshire, Hampden, Franklin and Hampshire" (Oxford comma removed)
	//   "Cape and Islands"
	//   "First Suffolk"
	//   "Second Suffolk"
	known := keySet(
		[3]string{"MA", "Senate", "1"},
		[3]string{"MA", "Senate", "2"},
		[3]string{"MA", "Senate", "3"},
		[3]string{"MA", "Senate", "4"},
		[3]string{"MA", "House", "1"},
		[3]string{"MA", "House", "2"},
	)

	for raw, want := range map[string]string{
		"Berkshire, Hampden, Franklin, and Hampshire District": "1",
		"Cape and Islands District":                            "2",
		"1st Suffolk District":                                 "3",
		"2nd Suffolk District":                                 "4",
	} {
		key, ok := n.Canonicalize("MA", "Senate", raw, known)
		require.True(t, ok, "raw %q", raw)
		require.Equal(t, want, key, "raw %q", raw)
	}

	// House names sort raw: "10th Suffolk" < "1st Barnstable"
	key, ok := n.Canonicalize("MA", "House", "10th Suffolk District", known)
	require.True(t, ok)
	require.Equal(t, "1", key)
	key, ok = n.Canonicalize("MA", "House", "1st Barnstable District", known)
	require.True(t, ok)
	require.Equal(t, "2", key)
}

func TestCanonicalizeNoGuessing(t *testing.T) {
	n := BuildNormalizer(nil)
	known := keySet([3]string{"VT", "Senate", "Essex-Orleans"})

	_, ok := n.Canonicalize("VT", "Senate", "Washington", known)
	require.False(t, ok)
	_, ok = n.Canonicalize("ZZ", "House", "1", known)
	require.False(t, ok)
}
