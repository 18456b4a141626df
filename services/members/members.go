// Package members downloads and parses the roster of currently serving
// state legislators, one page per chamber, from the public encyclopedia.
package members

// Record is one seat as reported by the source: either a serving member
// or an explicitly vacant seat. District is the raw label from the Office
// column, canonicalized only as far as the scraper-side conventions below
// (NH county hyphenation, VT hyphen joining); cross-referencing against
// store district keys happens downstream.
type Record struct {
	State         string `json:"state"`
	Chamber       string `json:"chamber"`
	District      string `json:"district"`
	Name          string `json:"name"`
	Party         string `json:"party"`
	AssumedOffice string `json:"assumed_office"`
	IsVacant      bool   `json:"is_vacant"`
}

// ChamberPage identifies one legislature roster page.
type ChamberPage struct {
	// PageName is the path component of the source URL.
	PageName string
	// Chamber is the store's chamber name.
	Chamber string
}

// StatePages lists every chamber roster page: 49 senates, 49 lower
// chambers, and Nebraska's unicameral legislature.
var StatePages = map[string][]ChamberPage{
	"AL": {{"Alabama_State_Senate", "Senate"}, {"Alabama_House_of_Representatives", "House"}},
	"AK": {{"Alaska_State_Senate", "Senate"}, {"Alaska_House_of_Representatives", "House"}},
	"AZ": {{"Arizona_State_Senate", "Senate"}, {"Arizona_House_of_Representatives", "House"}},
	"AR": {{"Arkansas_State_Senate", "Senate"}, {"Arkansas_House_of_Representatives", "House"}},
	"CA": {{"California_State_Senate", "Senate"}, {"California_State_Assembly", "Assembly"}},
	"CO": {{"Colorado_State_Senate", "Senate"}, {"Colorado_House_of_Representatives", "House"}},
	"CT": {{"Connecticut_State_Senate", "Senate"}, {"Connecticut_House_of_Representatives", "House"}},
	"DE": {{"Delaware_State_Senate", "Senate"}, {"Delaware_House_of_Representatives", "House"}},
	"FL": {{"Florida_State_Senate", "Senate"}, {"Florida_House_of_Representatives", "House"}},
	"GA": {{"Georgia_State_Senate", "Senate"}, {"Georgia_House_of_Representatives", "House"}},
	"HI": {{"Hawaii_State_Senate", "Senate"}, {"Hawaii_House_of_Representatives", "House"}},
	"ID": {{"Idaho_State_Senate", "Senate"}, {"Idaho_House_of_Representatives", "House"}},
	"IL": {{"Illinois_State_Senate", "Senate"}, {"Illinois_House_of_Representatives", "House"}},
	"IN": {{"Indiana_State_Senate", "Senate"}, {"Indiana_House_of_Representatives", "House"}},
	"IA": {{"Iowa_State_Senate", "Senate"}, {"Iowa_House_of_Representatives", "House"}},
	"KS": {{"Kansas_State_Senate", "Senate"}, {"Kansas_House_of_Representatives", "House"}},
	"KY": {{"Kentucky_State_Senate", "Senate"}, {"Kentucky_House_of_Representatives", "House"}},
	"LA": {{"Louisiana_State_Senate", "Senate"}, {"Louisiana_House_of_Representatives", "House"}},
	"ME": {{"Maine_State_Senate", "Senate"}, {"Maine_House_of_Representatives", "House"}},
	"MD": {{"Maryland_State_Senate", "Senate"}, {"Maryland_House_of_Delegates", "House of Delegates"}},
	"MA": {{"Massachusetts_State_Senate", "Senate"}, {"Massachusetts_House_of_Representatives", "House"}},
	"MI": {{"Michigan_State_Senate", "Senate"}, {"Michigan_House_of_Representatives", "House"}},
	"MN": {{"Minnesota_State_Senate", "Senate"}, {"Minnesota_House_of_Representatives", "House"}},
	"MS": {{"Mississippi_State_Senate", "Senate"}, {"Mississippi_House_of_Representatives", "House"}},
	"MO": {{"Missouri_State_Senate", "Senate"}, {"Missouri_House_of_Representatives", "House"}},
	"MT": {{"Montana_State_Senate", "Senate"}, {"Montana_House_of_Representatives", "House"}},
	"NE": {{"Nebraska_Legislature", "Legislature"}},
	"NV": {{"Nevada_State_Senate", "Senate"}, {"Nevada_State_Assembly", "Assembly"}},
	"NH": {{"New_Hampshire_State_Senate", "Senate"}, {"New_Hampshire_House_of_Representatives", "House"}},
	"NJ": {{"New_Jersey_State_Senate", "Senate"}, {"New_Jersey_General_Assembly", "Assembly"}},
	"NM": {{"New_Mexico_State_Senate", "Senate"}, {"New_Mexico_House_of_Representatives", "House"}},
	"NY": {{"New_York_State_Senate", "Senate"}, {"New_York_State_Assembly", "Assembly"}},
	"NC": {{"North_Carolina_State_Senate", "Senate"}, {"North_Carolina_House_of_Representatives", "House"}},
	"ND": {{"North_Dakota_State_Senate", "Senate"}, {"North_Dakota_House_of_Representatives", "House"}},
	"OH": {{"Ohio_State_Senate", "Senate"}, {"Ohio_House_of_Representatives", "House"}},
	"OK": {{"Oklahoma_State_Senate", "Senate"}, {"Oklahoma_House_of_Representatives", "House"}},
	"OR": {{"Oregon_State_Senate", "Senate"}, {"Oregon_House_of_Representatives", "House"}},
	"PA": {{"Pennsylvania_State_Senate", "Senate"}, {"Pennsylvania_House_of_Representatives", "House"}},
	"RI": {{"Rhode_Island_State_Senate", "Senate"}, {"Rhode_Island_House_of_Representatives", "House"}},
	"SC": {{"South_Carolina_State_Senate", "Senate"}, {"South_Carolina_House_of_Representatives", "House"}},
	"SD": {{"South_Dakota_State_Senate", "Senate"}, {"South_Dakota_House_of_Representatives", "House"}},
	"TN": {{"Tennessee_State_Senate", "Senate"}, {"Tennessee_House_of_Representatives", "House"}},
	"TX": {{"Texas_State_Senate", "Senate"}, {"Texas_House_of_Representatives", "House"}},
	"UT": {{"Utah_State_Senate", "Senate"}, {"Utah_House_of_Representatives", "House"}},
	"VT": {{"Vermont_State_Senate", "Senate"}, {"Vermont_House_of_Representatives", "House"}},
	"VA": {{"Virginia_State_Senate", "Senate"}, {"Virginia_House_of_Delegates", "House of Delegates"}},
	"WA": {{"Washington_State_Senate", "Senate"}, {"Washington_House_of_Representatives", "House"}},
	"WV": {{"West_Virginia_State_Senate", "Senate"}, {"West_Virginia_House_of_Delegates", "House of Delegates"}},
	"WI": {{"Wisconsin_State_Senate", "Senate"}, {"Wisconsin_State_Assembly", "Assembly"}},
	"WY": {{"Wyoming_State_Senate", "Senate"}, {"Wyoming_House_of_Representatives", "House"}},
}

// StateNames maps postal abbreviations to the URL form of each state name.
var StateNames = map[string]string{
	"AL": "Alabama", "AK": "Alaska", "AZ": "Arizona", "AR": "Arkansas",
	"CA": "California", "CO": "Colorado", "CT": "Connecticut", "DE": "Delaware",
	"FL": "Florida", "GA": "Georgia", "HI": "Hawaii", "ID": "Idaho",
	"IL": "Illinois", "IN": "Indiana", "IA": "Iowa", "KS": "Kansas",
	"KY": "Kentucky", "LA": "Louisiana", "ME": "Maine", "MD": "Maryland",
	"MA": "Massachusetts", "MI": "Michigan", "MN": "Minnesota", "MS": "Mississippi",
	"MO": "Missouri", "MT": "Montana", "NE": "Nebraska", "NV": "Nevada",
	"NH": "New_Hampshire", "NJ": "New_Jersey", "NM": "New_Mexico", "NY": "New_York",
	"NC": "North_Carolina", "ND": "North_Dakota", "OH": "Ohio", "OK": "Oklahoma",
	"OR": "Oregon", "PA": "Pennsylvania", "RI": "Rhode_Island", "SC": "South_Carolina",
	"SD": "South_Dakota", "TN": "Tennessee", "TX": "Texas", "UT": "Utah",
	"VT": "Vermont", "VA": "Virginia", "WA": "Washington", "WV": "West_Virginia",
	"WI": "Wisconsin", "WY": "Wyoming",
}

// partyAbbrev maps the source's party column values to store abbreviations.
// Unknown values pass through unchanged.
var partyAbbrev = map[string]string{
	"Republican":          "R",
	"Democratic":          "D",
	"Democrat":            "D",
	"Independent":         "I",
	"Libertarian":         "L",
	"Green":               "G",
	"Nonpartisan":         "NP",
	"Progressive":         "Prog",
	"Working Families":    "WF",
	"Conservative":        "Con",
	"Vermont Progressive": "Prog",
	"Independence":        "Ind",
	"Liberal":             "Lib",
}

func PartyAbbrev(raw string) string {
	if abbrev, ok := partyAbbrev[raw]; ok {
		return abbrev
	}
	return raw
}
