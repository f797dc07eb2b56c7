package riot

// Default routing values when none are configured.
const (
	DefaultRegion   = "EUROPE"
	DefaultPlatform = "EUW1"
)

// RegionalRouting maps regional routing values to API hosts.
// Account and match endpoints use regional routing.
var RegionalRouting = map[string]string{
	"AMERICAS": "americas.api.riotgames.com",
	"ASIA":     "asia.api.riotgames.com",
	"EUROPE":   "europe.api.riotgames.com",
	"SEA":      "sea.api.riotgames.com",
}

// PlatformRouting maps platform routing values to API hosts.
// Summoner and league endpoints use platform routing.
var PlatformRouting = map[string]string{
	"BR1":  "br1.api.riotgames.com",
	"EUN1": "eun1.api.riotgames.com",
	"EUW1": "euw1.api.riotgames.com",
	"JP1":  "jp1.api.riotgames.com",
	"KR":   "kr.api.riotgames.com",
	"LA1":  "la1.api.riotgames.com",
	"LA2":  "la2.api.riotgames.com",
	"NA1":  "na1.api.riotgames.com",
	"OC1":  "oc1.api.riotgames.com",
	"TR1":  "tr1.api.riotgames.com",
	"RU":   "ru.api.riotgames.com",
	"PH2":  "ph2.api.riotgames.com",
	"SG2":  "sg2.api.riotgames.com",
	"TH2":  "th2.api.riotgames.com",
	"TW2":  "tw2.api.riotgames.com",
	"VN2":  "vn2.api.riotgames.com",
}

// ValidRegion reports whether region is a known regional routing value.
func ValidRegion(region string) bool {
	_, ok := RegionalRouting[region]
	return ok
}

// ValidPlatform reports whether platform is a known platform routing value.
func ValidPlatform(platform string) bool {
	_, ok := PlatformRouting[platform]
	return ok
}
