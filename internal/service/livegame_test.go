package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"lol-tracker/internal/riot"

	"github.com/rs/zerolog"
)

func newLiveGameService(r *fakeRiot) *LiveGameService {
	return NewLiveGameService(r, fakeStatic{}, newMatchService(r), zerolog.Nop())
}

func TestLiveGame_NotInGame(t *testing.T) {
	r := &fakeRiot{
		activeGame: func(region, p string) (*riot.CurrentGame, error) { return nil, statusErr(http.StatusNotFound) },
	}

	live, err := newLiveGameService(r).Current(context.Background(), "na1", puuid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if live.InGame || len(live.Participants) != 0 {
		t.Errorf("live = %+v, want not in game", live)
	}
}

func TestLiveGame_Enriched(t *testing.T) {
	game := &riot.CurrentGame{
		GameID:            99,
		GameMode:          "CLASSIC",
		GameQueueConfigID: 420,
		Participants: []riot.CurrentGameParticipant{
			{Puuid: puuid, RiotID: "Player#LAN", ChampionID: 64, TeamID: 100, Spell1ID: 4, Spell2ID: 11},
			{Puuid: "other", ChampionID: 777, TeamID: 200},
		},
		BannedChampions: []riot.BannedChampion{
			{ChampionID: 12, TeamID: 100},
			{ChampionID: -1, TeamID: 200},
		},
	}
	game.Participants[0].Perks.PerkIDs = []int{8010, 9111}

	r := &fakeRiot{
		activeGame: func(region, p string) (*riot.CurrentGame, error) { return game, nil },
	}

	live, err := newLiveGameService(r).Current(context.Background(), "na1", puuid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !live.InGame || live.GameID != 99 || live.QueueID != 420 {
		t.Fatalf("live = %+v", live)
	}

	me := live.Participants[0]
	if me.ChampionName != "Lee Sin" || me.Keystone != 8010 || me.KeystoneName != "Conqueror" {
		t.Errorf("participant = %+v", me)
	}
	if live.Participants[1].ChampionName != "Champion 777" {
		t.Errorf("unknown champion name = %q", live.Participants[1].ChampionName)
	}
	if len(live.Bans) != 1 || live.Bans[0].ChampionName != "Alistar" {
		t.Errorf("Bans = %+v", live.Bans)
	}
}

func TestLiveGame_UpstreamError(t *testing.T) {
	r := &fakeRiot{
		activeGame: func(region, p string) (*riot.CurrentGame, error) { return nil, statusErr(http.StatusServiceUnavailable) },
	}

	live, err := newLiveGameService(r).Current(context.Background(), "na1", puuid)
	if live != nil {
		t.Errorf("live = %+v, want nil on error", live)
	}
	if riot.StatusOf(err) != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", riot.StatusOf(err))
	}
}

func TestFeaturedGames(t *testing.T) {
	r := &fakeRiot{
		featured: func(region string) (*riot.FeaturedGames, error) {
			return &riot.FeaturedGames{
				ClientRefreshInterval: 300,
				GameList: []riot.CurrentGame{
					{GameID: 1, Participants: []riot.CurrentGameParticipant{{ChampionID: 64, TeamID: 100}}},
					{GameID: 2, BannedChampions: []riot.BannedChampion{{ChampionID: 12, TeamID: 200}}},
				},
			}, nil
		},
	}

	featured := newLiveGameService(r).Featured(context.Background(), "euw1")
	if featured.RefreshInterval != 300 || len(featured.Games) != 2 {
		t.Fatalf("featured = %+v", featured)
	}
	if featured.Games[0].Participants[0].ChampionName != "Lee Sin" || !featured.Games[0].InGame {
		t.Errorf("first game = %+v", featured.Games[0])
	}
	if featured.Games[1].Bans[0].ChampionName != "Alistar" {
		t.Errorf("second game bans = %+v", featured.Games[1].Bans)
	}
}

func TestFeaturedGames_DegradesToEmpty(t *testing.T) {
	r := &fakeRiot{
		featured: func(region string) (*riot.FeaturedGames, error) { return nil, statusErr(http.StatusForbidden) },
	}

	featured := newLiveGameService(r).Featured(context.Background(), "euw1")
	if featured.Games == nil || len(featured.Games) != 0 {
		t.Errorf("featured = %+v, want empty list", featured)
	}
}

func ahriGame() *riot.CurrentGame {
	return &riot.CurrentGame{
		GameID: 7,
		Participants: []riot.CurrentGameParticipant{
			{Puuid: puuid, ChampionID: 103, TeamID: 100, Spell1ID: 4, Spell2ID: 14},
			{Puuid: "ally", ChampionID: 12, TeamID: 100},
			{Puuid: "enemy", ChampionID: 64, TeamID: 200},
		},
	}
}

func TestLiveRecommendations_NotInGame(t *testing.T) {
	r := &fakeRiot{
		activeGame: func(region, p string) (*riot.CurrentGame, error) { return nil, statusErr(http.StatusNotFound) },
	}

	rec, err := newLiveGameService(r).Recommendations(context.Background(), "na1", puuid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.InGame || rec.Message == "" || rec.Build != nil || rec.Recommendations != nil {
		t.Errorf("rec = %+v, want not in game", rec)
	}
}

func TestLiveRecommendations_BuildFromHistoryRole(t *testing.T) {
	var gotCount int
	r := &fakeRiot{
		activeGame: func(region, p string) (*riot.CurrentGame, error) { return ahriGame(), nil },
		matchIDs: func(routing, p string, q riot.MatchIDsQuery) ([]string, error) {
			gotCount = q.Count
			return []string{"NA1_1", "NA1_2"}, nil
		},
		match: func(routing, id string) (*riot.Match, error) {
			return playedMatch(id, riot.Participant{ChampionID: 103, TeamPosition: "MIDDLE", Win: true, Kills: 8, Deaths: 2, Assists: 6}), nil
		},
	}

	rec, err := newLiveGameService(r).Recommendations(context.Background(), "na1", puuid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotCount != 5 {
		t.Errorf("history count = %d, want 5", gotCount)
	}
	if !rec.InGame || rec.Game == nil || rec.Game.GameID != 7 {
		t.Fatalf("rec = %+v", rec)
	}

	b := rec.Build
	if b == nil {
		t.Fatal("expected a build")
	}
	if b.Champion != "Ahri" || b.Role != "MID" || b.Source != "champion" {
		t.Errorf("build = %+v", b)
	}
	if b.Keystone.ID != 8112 || b.Keystone.Name != "Electrocute" {
		t.Errorf("keystone = %+v", b.Keystone)
	}
	if len(b.Summoners) != 2 || b.Summoners[1].Name != "Ignite" {
		t.Errorf("summoners = %+v", b.Summoners)
	}
	if len(b.CoreItems) != 3 || b.CoreItems[0].Name != "Luden's Companion" {
		t.Errorf("core items = %+v", b.CoreItems)
	}

	tips := rec.Recommendations.InGameTips
	if len(tips) != 4 || !strings.Contains(tips[3], "Lee Sin") || strings.Contains(tips[3], "Alistar") {
		t.Errorf("in-game tips = %v, want only the enemy team named", tips)
	}
	if len(rec.Recommendations.Strengths) == 0 {
		t.Errorf("recommendations = %+v, want strengths from history", rec.Recommendations)
	}
}

func TestLiveRecommendations_HistoryFailureFallsBackToClassBuild(t *testing.T) {
	game := ahriGame()
	game.Participants[0].ChampionID = 12

	r := &fakeRiot{
		activeGame: func(region, p string) (*riot.CurrentGame, error) { return game, nil },
		matchIDs: func(routing, p string, q riot.MatchIDsQuery) ([]string, error) {
			return nil, errors.New("connection reset")
		},
	}

	rec, err := newLiveGameService(r).Recommendations(context.Background(), "na1", puuid)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Build == nil || rec.Build.Source != "class" || rec.Build.Keystone.ID != 8437 || rec.Build.Role != "TOP" {
		t.Errorf("build = %+v, want tank top class build", rec.Build)
	}
	if len(rec.Recommendations.InGameTips) == 0 {
		t.Error("expected in-game tips without history")
	}
}

func TestLiveRecommendations_UpstreamError(t *testing.T) {
	r := &fakeRiot{
		activeGame: func(region, p string) (*riot.CurrentGame, error) { return nil, statusErr(http.StatusTooManyRequests) },
	}

	_, err := newLiveGameService(r).Recommendations(context.Background(), "na1", puuid)
	if !riot.IsRateLimited(err) {
		t.Errorf("err = %v, want rate limited", err)
	}
}
