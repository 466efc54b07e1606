package riot

import (
	"errors"
	"time"
)

type Account struct {
	Puuid    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

func (a *Account) validate() error {
	if a.Puuid == "" {
		return errors.New("account without puuid")
	}
	return nil
}

type Summoner struct {
	ID            string `json:"id"`
	AccountID     string `json:"accountId"`
	Puuid         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	RevisionDate  int64  `json:"revisionDate"`
	SummonerLevel int    `json:"summonerLevel"`
}

func (s *Summoner) validate() error {
	if s.Puuid == "" && s.ID == "" {
		return errors.New("summoner without identifiers")
	}
	return nil
}

type LeagueEntry struct {
	LeagueID     string `json:"leagueId"`
	SummonerID   string `json:"summonerId"`
	Puuid        string `json:"puuid"`
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
	Veteran      bool   `json:"veteran"`
	FreshBlood   bool   `json:"freshBlood"`
	Inactive     bool   `json:"inactive"`
}

type LeagueList struct {
	LeagueID string       `json:"leagueId"`
	Tier     string       `json:"tier"`
	Queue    string       `json:"queue"`
	Name     string       `json:"name"`
	Entries  []LeagueItem `json:"entries"`
}

type LeagueItem struct {
	SummonerID   string `json:"summonerId"`
	Puuid        string `json:"puuid"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
	HotStreak    bool   `json:"hotStreak"`
	Veteran      bool   `json:"veteran"`
	FreshBlood   bool   `json:"freshBlood"`
	Inactive     bool   `json:"inactive"`
}

type ChampionMastery struct {
	Puuid                        string `json:"puuid"`
	ChampionID                   int    `json:"championId"`
	ChampionLevel                int    `json:"championLevel"`
	ChampionPoints               int    `json:"championPoints"`
	LastPlayTime                 int64  `json:"lastPlayTime"`
	ChampionPointsSinceLastLevel int    `json:"championPointsSinceLastLevel"`
	ChampionPointsUntilNextLevel int    `json:"championPointsUntilNextLevel"`
}

type Match struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     MatchInfo     `json:"info"`
}

type MatchMetadata struct {
	MatchID      string   `json:"matchId"`
	DataVersion  string   `json:"dataVersion"`
	Participants []string `json:"participants"`
}

type MatchInfo struct {
	GameCreation     int64         `json:"gameCreation"`
	GameDuration     int64         `json:"gameDuration"`
	GameEndTimestamp int64         `json:"gameEndTimestamp"`
	GameMode         string        `json:"gameMode"`
	GameType         string        `json:"gameType"`
	GameVersion      string        `json:"gameVersion"`
	MapID            int           `json:"mapId"`
	PlatformID       string        `json:"platformId"`
	QueueID          int           `json:"queueId"`
	Participants     []Participant `json:"participants"`
	Teams            []Team        `json:"teams"`
}

func (m *Match) validate() error {
	if m.Metadata.MatchID == "" {
		return errors.New("match without matchId")
	}
	if len(m.Info.Participants) == 0 {
		return errors.New("match without participants")
	}
	return nil
}

// Duration normalizes gameDuration, which older matches report in milliseconds.
func (i MatchInfo) Duration() time.Duration {
	if i.GameEndTimestamp == 0 && i.GameDuration > 100_000 {
		return time.Duration(i.GameDuration) * time.Millisecond
	}
	return time.Duration(i.GameDuration) * time.Second
}

// Participant returns the record of puuid in the match, or nil.
func (m *Match) Participant(puuid string) *Participant {
	for i := range m.Info.Participants {
		if m.Info.Participants[i].Puuid == puuid {
			return &m.Info.Participants[i]
		}
	}
	return nil
}

type Team struct {
	TeamID int   `json:"teamId"`
	Win    bool  `json:"win"`
	Bans   []Ban `json:"bans"`
}

type Ban struct {
	ChampionID int `json:"championId"`
	PickTurn   int `json:"pickTurn"`
}

type Participant struct {
	Puuid          string `json:"puuid"`
	RiotIDGameName string `json:"riotIdGameName"`
	RiotIDTagline  string `json:"riotIdTagline"`
	SummonerName   string `json:"summonerName"`
	ChampionID     int    `json:"championId"`
	ChampionName   string `json:"championName"`
	ChampLevel     int    `json:"champLevel"`
	TeamID         int    `json:"teamId"`
	TeamPosition   string `json:"teamPosition"`
	Win            bool   `json:"win"`

	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`

	TotalMinionsKilled          int `json:"totalMinionsKilled"`
	NeutralMinionsKilled        int `json:"neutralMinionsKilled"`
	GoldEarned                  int `json:"goldEarned"`
	TotalDamageDealtToChampions int `json:"totalDamageDealtToChampions"`
	VisionScore                 int `json:"visionScore"`

	Item0 int `json:"item0"`
	Item1 int `json:"item1"`
	Item2 int `json:"item2"`
	Item3 int `json:"item3"`
	Item4 int `json:"item4"`
	Item5 int `json:"item5"`
	Item6 int `json:"item6"`

	Summoner1ID int `json:"summoner1Id"`
	Summoner2ID int `json:"summoner2Id"`

	Perks Perks `json:"perks"`
}

type Perks struct {
	Styles []PerkStyle `json:"styles"`
}

type PerkStyle struct {
	Description string          `json:"description"`
	Style       int             `json:"style"`
	Selections  []PerkSelection `json:"selections"`
}

type PerkSelection struct {
	Perk int `json:"perk"`
}

func (p *Participant) CS() int {
	return p.TotalMinionsKilled + p.NeutralMinionsKilled
}

// Items returns the non-empty item slots, trinket included.
func (p *Participant) Items() []int {
	slots := [7]int{p.Item0, p.Item1, p.Item2, p.Item3, p.Item4, p.Item5, p.Item6}
	items := make([]int, 0, len(slots))
	for _, id := range slots {
		if id != 0 {
			items = append(items, id)
		}
	}
	return items
}

// SpellPair returns both summoner spells in ascending order so D/F swaps count as one pair.
func (p *Participant) SpellPair() [2]int {
	a, b := p.Summoner1ID, p.Summoner2ID
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// Keystone is the first selection of the primary style, 0 when absent.
func (p *Participant) Keystone() int {
	if len(p.Perks.Styles) == 0 || len(p.Perks.Styles[0].Selections) == 0 {
		return 0
	}
	return p.Perks.Styles[0].Selections[0].Perk
}

type CurrentGame struct {
	GameID            int64                    `json:"gameId"`
	GameMode          string                   `json:"gameMode"`
	GameType          string                   `json:"gameType"`
	GameQueueConfigID int                      `json:"gameQueueConfigId"`
	GameStartTime     int64                    `json:"gameStartTime"`
	GameLength        int64                    `json:"gameLength"`
	MapID             int                      `json:"mapId"`
	PlatformID        string                   `json:"platformId"`
	Participants      []CurrentGameParticipant `json:"participants"`
	BannedChampions   []BannedChampion         `json:"bannedChampions"`
}

type CurrentGameParticipant struct {
	Puuid      string `json:"puuid"`
	RiotID     string `json:"riotId"`
	ChampionID int    `json:"championId"`
	TeamID     int    `json:"teamId"`
	Spell1ID   int    `json:"spell1Id"`
	Spell2ID   int    `json:"spell2Id"`
	Bot        bool   `json:"bot"`
	Perks      struct {
		PerkIDs      []int `json:"perkIds"`
		PerkStyle    int   `json:"perkStyle"`
		PerkSubStyle int   `json:"perkSubStyle"`
	} `json:"perks"`
}

type BannedChampion struct {
	ChampionID int `json:"championId"`
	TeamID     int `json:"teamId"`
	PickTurn   int `json:"pickTurn"`
}

// MatchIDsQuery holds the optional filters of the match id listing. Zero values are omitted.
type MatchIDsQuery struct {
	Start int
	Count int
	Queue int
	Type  string
}

type Timeline struct {
	Metadata MatchMetadata `json:"metadata"`
	Info     TimelineInfo  `json:"info"`
}

func (t *Timeline) validate() error {
	if t.Metadata.MatchID == "" {
		return errors.New("timeline without matchId")
	}
	return nil
}

type TimelineInfo struct {
	FrameInterval int64           `json:"frameInterval"`
	GameID        int64           `json:"gameId"`
	Frames        []TimelineFrame `json:"frames"`
	Participants  []struct {
		ParticipantID int    `json:"participantId"`
		Puuid         string `json:"puuid"`
	} `json:"participants"`
}

// TimelineFrame keys participant frames by participant id ("1".."10").
type TimelineFrame struct {
	Timestamp         int64                       `json:"timestamp"`
	ParticipantFrames map[string]ParticipantFrame `json:"participantFrames"`
	Events            []TimelineEvent             `json:"events"`
}

type ParticipantFrame struct {
	ParticipantID       int `json:"participantId"`
	Level               int `json:"level"`
	CurrentGold         int `json:"currentGold"`
	TotalGold           int `json:"totalGold"`
	XP                  int `json:"xp"`
	MinionsKilled       int `json:"minionsKilled"`
	JungleMinionsKilled int `json:"jungleMinionsKilled"`
}

// TimelineEvent keeps the common event fields; type-specific fields beyond these are dropped.
type TimelineEvent struct {
	Type          string `json:"type"`
	Timestamp     int64  `json:"timestamp"`
	ParticipantID int    `json:"participantId,omitempty"`
	KillerID      int    `json:"killerId,omitempty"`
	VictimID      int    `json:"victimId,omitempty"`
	ItemID        int    `json:"itemId,omitempty"`
	TeamID        int    `json:"teamId,omitempty"`
	MonsterType   string `json:"monsterType,omitempty"`
	BuildingType  string `json:"buildingType,omitempty"`
}

type FeaturedGames struct {
	GameList              []CurrentGame `json:"gameList"`
	ClientRefreshInterval int64         `json:"clientRefreshInterval"`
}

type PlatformStatus struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Locales      []string      `json:"locales"`
	Maintenances []StatusEntry `json:"maintenances"`
	Incidents    []StatusEntry `json:"incidents"`
}

func (p *PlatformStatus) validate() error {
	if p.ID == "" {
		return errors.New("platform status without id")
	}
	return nil
}

type StatusEntry struct {
	ID                int64           `json:"id"`
	MaintenanceStatus string          `json:"maintenance_status"`
	IncidentSeverity  string          `json:"incident_severity"`
	Titles            []StatusContent `json:"titles"`
	Updates           []StatusUpdate  `json:"updates"`
	CreatedAt         string          `json:"created_at"`
	UpdatedAt         string          `json:"updated_at"`
}

type StatusContent struct {
	Locale  string `json:"locale"`
	Content string `json:"content"`
}

type StatusUpdate struct {
	ID           int64           `json:"id"`
	Author       string          `json:"author"`
	Translations []StatusContent `json:"translations"`
	CreatedAt    string          `json:"created_at"`
}

// Title returns the entry title in locale, falling back to the first title.
func (e StatusEntry) Title(locale string) string {
	for _, t := range e.Titles {
		if t.Locale == locale {
			return t.Content
		}
	}
	if len(e.Titles) > 0 {
		return e.Titles[0].Content
	}
	return ""
}
