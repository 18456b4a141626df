package textutil

// nicknameEntry maps a formal first name to its informal variants. Some
// entries encode regional or person-specific use-names rather than generic
// nickname patterns; those are maintained here explicitly because they
// cannot be inferred.
type nicknameEntry struct {
	formal   string
	variants []string
}

var nicknameTable = []nicknameEntry{
	{"william", []string{"bill", "will", "billy", "willy"}},
	{"robert", []string{"bob", "bobby", "rob"}},
	{"richard", []string{"dick", "rick", "rich"}},
	{"james", []string{"jim", "jimmy", "jamie"}},
	{"john", []string{"jack", "johnny", "jay"}},
	{"joseph", []string{"joe", "joey"}},
	{"thomas", []string{"tom", "tommy"}},
	{"charles", []string{"charlie", "chuck", "chaz"}},
	{"edward", []string{"ed", "eddie", "ted", "teddy"}},
	{"michael", []string{"mike", "mikey", "doc"}},
	{"daniel", []string{"dan", "danny"}},
	{"david", []string{"dave"}},
	{"stephen", []string{"steve", "steven"}},
	{"steven", []string{"steve", "stephen"}},
	{"christopher", []string{"chris"}},
	{"matthew", []string{"matt"}},
	{"anthony", []string{"tony"}},
	{"donald", []string{"don", "donnie"}},
	{"timothy", []string{"tim", "timmy"}},
	{"patrick", []string{"pat", "paddy"}},
	{"elizabeth", []string{"liz", "beth", "betty", "eliza"}},
	{"katherine", []string{"kate", "kathy", "katie", "cathy"}},
	{"catherine", []string{"kate", "kathy", "katie", "cathy"}},
	{"margaret", []string{"maggie", "meg", "peggy", "marge"}},
	{"jennifer", []string{"jen", "jenny"}},
	{"patricia", []string{"pat", "patty", "trish"}},
	{"deborah", []string{"deb", "debbie", "debby"}},
	{"pamela", []string{"pam"}},
	{"samantha", []string{"sam"}},
	{"samuel", []string{"sam", "sammy"}},
	{"kenneth", []string{"ken", "kenny"}},
	{"lawrence", []string{"larry"}},
	{"gerald", []string{"gerry", "jerry"}},
	{"raymond", []string{"ray"}},
	{"andrew", []string{"andy", "drew"}},
	{"benjamin", []string{"ben"}},
	{"gregory", []string{"greg"}},
	{"frederick", []string{"fred", "freddy"}},
	{"ronald", []string{"ron", "ronnie"}},
	{"alexander", []string{"alex"}},
	{"nicholas", []string{"nick", "nicky"}},
	{"guadalupe", []string{"lupe"}},
	{"maria luisa", []string{"lulu"}},
	{"armando", []string{"mando"}},
	{"jesus", []string{"chuy"}},
	// regional nickname in TX
	{"juan", []string{"chuy"}},
	{"rafael", []string{"rafa"}},
	{"alejandro", []string{"alex"}},
	{"jessica", []string{"jess"}},
	{"jacob", []string{"jake"}},
	{"antonio", []string{"tony"}},
	{"philip", []string{"griff", "phil"}},
	{"phillip", []string{"phil"}},
	{"suzanne", []string{"sue", "suzy"}},
	{"lucinda", []string{"cindy"}},
	{"denise", []string{"mitzi"}},
	{"cynthia", []string{"cindy"}},
	{"christine", []string{"tina", "chris"}},
	{"melissa", []string{"missy"}},
	{"ismail", []string{"izzy"}},
	{"hurchel", []string{"trey"}},
	{"artis", []string{"aj"}},
	{"javan", []string{"jd"}},
	{"alexandra", []string{"ali", "alex"}},
	{"anastasia", []string{"stacey"}},
	// Glenn "Mike" Prax
	{"glenn", []string{"mike"}},
	{"kerry", []string{"bubba"}},
	{"patrice", []string{"penni"}},
	{"jervonte", []string{"tae"}},
	// uses middle name
	{"daryl", []string{"joy"}},
	{"anissa", []string{"nissa"}},
	{"larry", []string{"butch"}},
	{"harold", []string{"trey"}},
	{"leonidas", []string{"lou"}},
	{"arthur", []string{"doc"}},
	{"jonathan", []string{"jack"}},
	{"roberto", []string{"bobby"}},
	{"susan", []string{"sue"}},
	{"dagmara", []string{"dee"}},
	{"michel", []string{"mike"}},
}

// nicknameGroups maps every member of an equivalence group (formal and
// informal alike) to the full group, so lookups work in both directions.
// Entries sharing any member (a duplicate formal key, or a variant listed
// under several formal names) union into one group.
var nicknameGroups = buildNicknameGroups(nicknameTable)

func buildNicknameGroups(entries []nicknameEntry) map[string]map[string]bool {
	groups := make(map[string]map[string]bool)
	for _, e := range entries {
		group := make(map[string]bool)
		for _, m := range append([]string{e.formal}, e.variants...) {
			for name := range groups[m] {
				group[name] = true
			}
			group[m] = true
		}
		// repoint every member, including those absorbed from merged groups
		for name := range group {
			groups[name] = group
		}
	}
	return groups
}

// NicknamesMatch reports whether two already-normalized first names are
// nickname equivalents of each other.
func NicknamesMatch(a, b string) bool {
	if a == b {
		return true
	}
	if group := nicknameGroups[a]; group != nil && group[b] {
		return true
	}
	if group := nicknameGroups[b]; group != nil && group[a] {
		return true
	}
	return false
}
