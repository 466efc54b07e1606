package stats

import (
	"fmt"
	"strings"
)

const (
	BuildSourceChampion = "champion"
	BuildSourceClass    = "class"

	fallbackClass = "Fighter"
	fallbackRole  = "TOP"
)

// Build is a recommended setup by id. Names and icons are resolved against the patch catalog by callers.
type Build struct {
	Role          string
	Keystone      int
	SecondaryTree int
	Summoners     [2]int
	CoreItems     []int
	Boots         int
	Situational   []int
	WinRate       float64
	PickRate      float64
	Games         int
}

// Role order matters: the first build is used when the requested role has none.
var championBuilds = map[string][]Build{
	"Akali": {
		{Role: "MID", Keystone: 8112, SecondaryTree: 8200, Summoners: [2]int{4, 14}, CoreItems: []int{3152, 3089, 3157}, Boots: 3020, Situational: []int{3135, 3165, 4645}, WinRate: 51.2, PickRate: 8.4, Games: 45000},
		{Role: "TOP", Keystone: 8010, SecondaryTree: 8200, Summoners: [2]int{4, 12}, CoreItems: []int{3152, 3157, 3089}, Boots: 3020, Situational: []int{3135, 3053, 3026}, WinRate: 49.8, PickRate: 3.2, Games: 18000},
	},
	"Ahri": {
		{Role: "MID", Keystone: 8112, SecondaryTree: 8300, Summoners: [2]int{4, 14}, CoreItems: []int{6655, 3089, 3157}, Boots: 3020, Situational: []int{3135, 3102, 4628}, WinRate: 52.1, PickRate: 9.8, Games: 62000},
	},
	"Yasuo": {
		{Role: "MID", Keystone: 8008, SecondaryTree: 8400, Summoners: [2]int{4, 14}, CoreItems: []int{6672, 3031, 6673}, Boots: 3006, Situational: []int{3072, 3139, 6676}, WinRate: 49.5, PickRate: 11.2, Games: 78000},
		{Role: "TOP", Keystone: 8008, SecondaryTree: 8400, Summoners: [2]int{4, 14}, CoreItems: []int{6672, 3031, 3053}, Boots: 3006, Situational: []int{3072, 3026, 6333}, WinRate: 48.3, PickRate: 4.1, Games: 25000},
	},
}

// classBuilds is keyed by the first Data Dragon champion tag.
var classBuilds = map[string][]Build{
	"Assassin": {
		{Role: "MID", Keystone: 8112, SecondaryTree: 8200, Summoners: [2]int{4, 14}, CoreItems: []int{3142, 6693, 6676}, Boots: 3158, Situational: []int{3814, 6694, 3156}, WinRate: 50.0, PickRate: 5.0, Games: 10000},
	},
	"Fighter": {
		{Role: "TOP", Keystone: 8010, SecondaryTree: 8400, Summoners: [2]int{4, 12}, CoreItems: []int{3078, 3053, 3071}, Boots: 3111, Situational: []int{3748, 6333, 3026}, WinRate: 50.5, PickRate: 6.0, Games: 15000},
		{Role: "JUNGLE", Keystone: 8010, SecondaryTree: 8400, Summoners: [2]int{4, 11}, CoreItems: []int{6632, 3053, 3071}, Boots: 3111, Situational: []int{3748, 3193, 3026}, WinRate: 50.2, PickRate: 5.5, Games: 12000},
	},
	"Mage": {
		{Role: "MID", Keystone: 8229, SecondaryTree: 8300, Summoners: [2]int{4, 12}, CoreItems: []int{6655, 3089, 3135}, Boots: 3020, Situational: []int{3157, 3165, 4628}, WinRate: 51.0, PickRate: 7.0, Games: 20000},
	},
	"Marksman": {
		{Role: "BOTTOM", Keystone: 8008, SecondaryTree: 8300, Summoners: [2]int{4, 7}, CoreItems: []int{6672, 3031, 3094}, Boots: 3006, Situational: []int{3085, 3072, 6676}, WinRate: 50.8, PickRate: 8.0, Games: 25000},
	},
	"Support": {
		{Role: "UTILITY", Keystone: 8465, SecondaryTree: 8300, Summoners: [2]int{4, 14}, CoreItems: []int{3853, 3190, 3107}, Boots: 3158, Situational: []int{3860, 3222, 4401}, WinRate: 51.5, PickRate: 6.0, Games: 18000},
	},
	"Tank": {
		{Role: "TOP", Keystone: 8437, SecondaryTree: 8000, Summoners: [2]int{4, 12}, CoreItems: []int{3068, 3075, 3065}, Boots: 3047, Situational: []int{3143, 3742, 3193}, WinRate: 51.2, PickRate: 5.0, Games: 15000},
		{Role: "JUNGLE", Keystone: 8437, SecondaryTree: 8000, Summoners: [2]int{4, 11}, CoreItems: []int{6664, 3068, 3075}, Boots: 3047, Situational: []int{3065, 3742, 3193}, WinRate: 50.8, PickRate: 4.5, Games: 12000},
	},
}

// NormalizeRole maps match-v5 team positions onto build roles.
func NormalizeRole(role string) string {
	role = strings.ToUpper(strings.TrimSpace(role))
	if role == "MIDDLE" {
		return "MID"
	}
	return role
}

func pick(builds []Build, role string) (Build, bool) {
	if len(builds) == 0 {
		return Build{}, false
	}
	role = NormalizeRole(role)
	for _, b := range builds {
		if b.Role == role {
			return b, true
		}
	}
	return builds[0], true
}

// ChampionBuild returns the champion-specific build for role, or its first build when role has none.
func ChampionBuild(championID, role string) (Build, bool) {
	return pick(championBuilds[championID], role)
}

// ClassBuild returns the generic build of a champion class. Unknown classes get the Fighter top build.
func ClassBuild(class, role string) Build {
	if b, ok := pick(classBuilds[class], role); ok {
		return b
	}
	b, _ := pick(classBuilds[fallbackClass], fallbackRole)
	return b
}

// BuildFor prefers a champion-specific build and falls back to the build of the champion's primary class.
func BuildFor(championID string, tags []string, role string) (Build, string) {
	if b, ok := ChampionBuild(championID, role); ok {
		return b, BuildSourceChampion
	}
	class := ""
	if len(tags) > 0 {
		class = tags[0]
	}
	return ClassBuild(class, role), BuildSourceClass
}

// InGameTips gives generic advice for a game in progress, naming the enemy champions when known.
func InGameTips(enemies []string) []string {
	tips := []string{
		"Tips for this game:",
		"Call out priority objectives to your team",
		"Adapt your build to the enemy composition",
	}
	if len(enemies) > 0 {
		tips = append(tips, fmt.Sprintf("Enemy team: %s", strings.Join(enemies, ", ")))
	}
	return tips
}
