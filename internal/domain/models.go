package domain

import (
	"math"
	"strconv"
	"time"

	"lol-tracker/internal/riot"
)

// KDA is (kills + assists) / deaths. Perfect marks a deathless record, where the ratio is undefined.
type KDA struct {
	Ratio   float64
	Perfect bool
}

func (k KDA) String() string {
	if k.Perfect {
		return "Perfect"
	}
	return strconv.FormatFloat(Round(k.Ratio, 2), 'f', -1, 64)
}

func (k KDA) MarshalJSON() ([]byte, error) {
	if k.Perfect {
		return []byte(`"Perfect"`), nil
	}
	return []byte(strconv.FormatFloat(Round(k.Ratio, 2), 'f', -1, 64)), nil
}

// Less orders Perfect above every finite ratio.
func (k KDA) Less(other KDA) bool {
	if k.Perfect != other.Perfect {
		return other.Perfect
	}
	return k.Ratio < other.Ratio
}

func Round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

type Account struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

type Summoner struct {
	ID             string `json:"id"`
	AccountID      string `json:"accountId"`
	Puuid          string `json:"puuid"`
	ProfileIconID  int    `json:"profileIconId"`
	ProfileIconURL string `json:"profileIconUrl,omitempty"`
	SummonerLevel  int    `json:"summonerLevel"`
}

type RankedEntry struct {
	QueueType    string  `json:"queueType"`
	Tier         string  `json:"tier"`
	Rank         string  `json:"rank"`
	LeaguePoints int     `json:"leaguePoints"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"winRate"`
	HotStreak    bool    `json:"hotStreak"`
}

type Overall struct {
	Wins    int     `json:"wins"`
	Losses  int     `json:"losses"`
	Games   int     `json:"games"`
	WinRate float64 `json:"winRate"`
	Source  string  `json:"source"`
}

type Ranked struct {
	BestQueue *RankedEntry  `json:"bestQueue"`
	Overall   Overall       `json:"overall"`
	Entries   []RankedEntry `json:"entries"`
}

type Frequency struct {
	ID    int    `json:"id"`
	Name  string `json:"name,omitempty"`
	Icon  string `json:"icon,omitempty"`
	Count int    `json:"count"`
}

type SpellPairFrequency struct {
	Spells [2]int    `json:"spells"`
	Names  [2]string `json:"names"`
	Icons  [2]string `json:"icons"`
	Count  int       `json:"count"`
}

type ChampionStat struct {
	ChampionID  int                  `json:"championId"`
	Name        string               `json:"name"`
	Icon        string               `json:"icon,omitempty"`
	Games       int                  `json:"games"`
	Wins        int                  `json:"wins"`
	Losses      int                  `json:"losses"`
	Kills       int                  `json:"kills"`
	Deaths      int                  `json:"deaths"`
	Assists     int                  `json:"assists"`
	CS          int                  `json:"cs"`
	Duration    int64                `json:"duration"`
	Damage      int                  `json:"damage"`
	Gold        int                  `json:"gold"`
	Vision      int                  `json:"vision"`
	KDA         KDA                  `json:"kda"`
	WinRate     float64              `json:"winRate"`
	CSPerMinute float64              `json:"csPerMinute"`
	Items       []Frequency          `json:"items"`
	Spells      []SpellPairFrequency `json:"spells"`
	Keystones   []Frequency          `json:"keystones"`
}

type Mastery struct {
	ChampionID   int    `json:"championId"`
	Name         string `json:"name"`
	Icon         string `json:"icon,omitempty"`
	Level        int    `json:"level"`
	Points       int    `json:"points"`
	LastPlayTime int64  `json:"lastPlayTime"`
}

type BestChampion struct {
	ChampionID int     `json:"championId"`
	Name       string  `json:"name"`
	Games      int     `json:"games"`
	Wins       int     `json:"wins"`
	WinRate    float64 `json:"winRate"`
	KDA        KDA     `json:"kda"`
}

type Averages struct {
	Kills           float64 `json:"kills"`
	Deaths          float64 `json:"deaths"`
	Assists         float64 `json:"assists"`
	CS              float64 `json:"cs"`
	CSPerMinute     float64 `json:"csPerMinute"`
	Vision          float64 `json:"vision"`
	Damage          float64 `json:"damage"`
	Gold            float64 `json:"gold"`
	DurationMinutes float64 `json:"durationMinutes"`
}

type Performance struct {
	Games          int            `json:"games"`
	Wins           int            `json:"wins"`
	Losses         int            `json:"losses"`
	WinRate        float64        `json:"winRate"`
	KDA            KDA            `json:"kda"`
	Averages       Averages       `json:"averages"`
	PreferredRole  string         `json:"preferredRole,omitempty"`
	Roles          map[string]int `json:"roles"`
	BestChampions  []BestChampion `json:"bestChampions"`
	WorstChampions []BestChampion `json:"worstChampions"`
}

type Recommendations struct {
	ChampionPool     []string `json:"championPool"`
	ImprovementAreas []string `json:"improvementAreas"`
	Strengths        []string `json:"strengths"`
	PlaystyleTips    []string `json:"playstyleTips"`
	InGameTips       []string `json:"inGameTips,omitempty"`
}

type ProfileSummary struct {
	Region             string           `json:"region"`
	Routing            string           `json:"routing"`
	Version            string           `json:"version"`
	Account            Account          `json:"account"`
	Summoner           Summoner         `json:"summoner"`
	Ranked             Ranked           `json:"ranked"`
	Champions          []ChampionStat   `json:"champions"`
	Mastery            []Mastery        `json:"mastery"`
	Matches            []string         `json:"matches"`
	MatchesRateLimited bool             `json:"matchesRateLimited"`
	Performance        *Performance     `json:"performance,omitempty"`
	Recommendations    *Recommendations `json:"recommendations,omitempty"`
	LoadedAt           time.Time        `json:"loadedAt"`
}

type MatchBatch struct {
	Matches     []*riot.Match `json:"matches"`
	Total       int           `json:"total"`
	RateLimited bool          `json:"rateLimited"`
}

type LadderEntry struct {
	Position     int     `json:"position"`
	Puuid        string  `json:"puuid"`
	SummonerID   string  `json:"summonerId,omitempty"`
	Tier         string  `json:"tier"`
	LeaguePoints int     `json:"leaguePoints"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinRate      float64 `json:"winRate"`
	HotStreak    bool    `json:"hotStreak"`
}

type Ranking struct {
	Region  string         `json:"region"`
	Queue   string         `json:"queue"`
	Entries []LadderEntry  `json:"entries"`
	Cutoffs map[string]int `json:"cutoffs"`
}

type LiveParticipant struct {
	Puuid        string    `json:"puuid"`
	RiotID       string    `json:"riotId"`
	TeamID       int       `json:"teamId"`
	ChampionID   int       `json:"championId"`
	ChampionName string    `json:"championName"`
	ChampionIcon string    `json:"championIcon,omitempty"`
	Spells       [2]int    `json:"spells"`
	SpellIcons   [2]string `json:"spellIcons"`
	Keystone     int       `json:"keystone,omitempty"`
	KeystoneName string    `json:"keystoneName,omitempty"`
	Bot          bool      `json:"bot,omitempty"`
}

type LiveBan struct {
	ChampionID   int    `json:"championId"`
	ChampionName string `json:"championName,omitempty"`
	TeamID       int    `json:"teamId"`
}

type LiveGame struct {
	InGame       bool              `json:"inGame"`
	GameID       int64             `json:"gameId,omitempty"`
	GameMode     string            `json:"gameMode,omitempty"`
	QueueID      int               `json:"queueId,omitempty"`
	StartTime    int64             `json:"startTime,omitempty"`
	Length       int64             `json:"length,omitempty"`
	Participants []LiveParticipant `json:"participants,omitempty"`
	Bans         []LiveBan         `json:"bans,omitempty"`
}

type FeaturedGames struct {
	Games           []LiveGame `json:"games"`
	RefreshInterval int64      `json:"refreshInterval,omitempty"`
}

// BuildRef names an item, rune, tree or spell referenced by a build.
type BuildRef struct {
	ID   int    `json:"id"`
	Name string `json:"name,omitempty"`
	Icon string `json:"icon,omitempty"`
}

type ChampionBuild struct {
	Champion      string     `json:"champion"`
	Role          string     `json:"role"`
	Source        string     `json:"source"`
	Keystone      BuildRef   `json:"keystone"`
	SecondaryTree BuildRef   `json:"secondaryTree"`
	Summoners     []BuildRef `json:"summoners"`
	CoreItems     []BuildRef `json:"coreItems"`
	Boots         BuildRef   `json:"boots"`
	Situational   []BuildRef `json:"situational"`
	WinRate       float64    `json:"winRate"`
	PickRate      float64    `json:"pickRate"`
	Games         int        `json:"games"`
}

type LiveRecommendations struct {
	InGame          bool             `json:"inGame"`
	Message         string           `json:"message,omitempty"`
	Game            *LiveGame        `json:"game,omitempty"`
	Recommendations *Recommendations `json:"recommendations,omitempty"`
	Build           *ChampionBuild   `json:"build,omitempty"`
}

type StatusNotice struct {
	ID        int64  `json:"id"`
	Severity  string `json:"severity,omitempty"`
	State     string `json:"state,omitempty"`
	Title     string `json:"title"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// PlatformStatus is "online", "maintenance", "incident", or "unknown" when Riot could not be reached.
type PlatformStatus struct {
	Region       string         `json:"region"`
	Status       string         `json:"status"`
	Name         string         `json:"name,omitempty"`
	Error        string         `json:"error,omitempty"`
	Maintenances []StatusNotice `json:"maintenances"`
	Incidents    []StatusNotice `json:"incidents"`
}
