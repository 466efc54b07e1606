package service

import (
	"context"

	"lol-tracker/internal/constants"
	"lol-tracker/internal/ddragon"
	"lol-tracker/internal/domain"
	"lol-tracker/internal/riot"
	"lol-tracker/internal/stats"

	"github.com/rs/zerolog"
)

const notInGameMessage = "player is not in a game"

type LiveGameService struct {
	riot    Riot
	static  StaticData
	matches *MatchService
	logger  zerolog.Logger
}

func NewLiveGameService(riot Riot, static StaticData, matches *MatchService, logger zerolog.Logger) *LiveGameService {
	return &LiveGameService{riot: riot, static: static, matches: matches, logger: logger}
}

// Current reports the active game of puuid. Not being in a game is a normal result, not an error.
func (s *LiveGameService) Current(ctx context.Context, region, puuid string) (*domain.LiveGame, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.UpstreamTimeout)
	defer cancel()

	game, err := s.activeGame(ctx, region, puuid)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return &domain.LiveGame{InGame: false}, nil
	}
	live := toLiveGame(game, s.static.Catalog(ctx))
	return &live, nil
}

// activeGame returns nil, nil when the player is not in a game.
func (s *LiveGameService) activeGame(ctx context.Context, region, puuid string) (*riot.CurrentGame, error) {
	game, err := s.riot.ActiveGame(ctx, region, puuid)
	if riot.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		s.logger.Warn().Err(err).Str("puuid", puuid).Str("region", region).Msg("failed to fetch active game")
		return nil, err
	}
	return game, nil
}

// Featured lists the region's featured games. Upstream failures degrade to an empty list.
func (s *LiveGameService) Featured(ctx context.Context, region string) *domain.FeaturedGames {
	ctx, cancel := context.WithTimeout(ctx, constants.UpstreamTimeout)
	defer cancel()

	out := &domain.FeaturedGames{Games: []domain.LiveGame{}}
	featured, err := s.riot.FeaturedGames(ctx, region)
	if err != nil {
		s.logger.Warn().Err(err).Str("region", region).Msg("failed to fetch featured games")
		return out
	}

	catalog := s.static.Catalog(ctx)
	out.RefreshInterval = featured.ClientRefreshInterval
	for i := range featured.GameList {
		out.Games = append(out.Games, toLiveGame(&featured.GameList[i], catalog))
	}
	return out
}

// Recommendations combines the active game with advice drawn from the player's last few matches
// and a suggested build for the champion they are playing.
func (s *LiveGameService) Recommendations(ctx context.Context, region, puuid string) (*domain.LiveRecommendations, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	game, err := s.activeGame(ctx, region, puuid)
	if err != nil {
		return nil, err
	}
	if game == nil {
		return &domain.LiveRecommendations{InGame: false, Message: notInGameMessage}, nil
	}

	var matches []*riot.Match
	history, err := s.matches.GetMatchHistory(ctx, region, puuid, riot.MatchIDsQuery{Count: constants.LiveHistoryCount})
	if err != nil {
		s.logger.Warn().Err(err).Str("puuid", puuid).Msg("live recommendations without match history")
	} else {
		matches = history.Matches
	}

	catalog := s.static.Catalog(ctx)
	live := toLiveGame(game, catalog)
	perf := stats.Analyze(matches, puuid)

	rec := stats.Recommend(perf)
	rec.InGameTips = stats.InGameTips(enemyChampions(game, puuid, catalog))

	out := &domain.LiveRecommendations{
		InGame:          true,
		Game:            &live,
		Recommendations: rec,
	}
	if me := participantOf(game, puuid); me != nil {
		role := ""
		if perf != nil {
			role = perf.PreferredRole
		}
		out.Build = championBuild(catalog, me.ChampionID, role)
	}

	s.logger.Info().
		Str("puuid", puuid).
		Int64("game_id", game.GameID).
		Int("history", len(matches)).
		Msg("live recommendations assembled")
	return out, nil
}

func toLiveGame(game *riot.CurrentGame, catalog *ddragon.Catalog) domain.LiveGame {
	live := domain.LiveGame{
		InGame:       true,
		GameID:       game.GameID,
		GameMode:     game.GameMode,
		QueueID:      game.GameQueueConfigID,
		StartTime:    game.GameStartTime,
		Length:       game.GameLength,
		Participants: make([]domain.LiveParticipant, 0, len(game.Participants)),
		Bans:         make([]domain.LiveBan, 0, len(game.BannedChampions)),
	}
	for _, p := range game.Participants {
		lp := domain.LiveParticipant{
			Puuid:        p.Puuid,
			RiotID:       p.RiotID,
			TeamID:       p.TeamID,
			ChampionID:   p.ChampionID,
			ChampionName: catalog.ChampionName(p.ChampionID),
			ChampionIcon: catalog.ChampionIcon(p.ChampionID),
			Spells:       [2]int{p.Spell1ID, p.Spell2ID},
			SpellIcons:   [2]string{catalog.SpellIcon(p.Spell1ID), catalog.SpellIcon(p.Spell2ID)},
			Bot:          p.Bot,
		}
		if len(p.Perks.PerkIDs) > 0 {
			lp.Keystone = p.Perks.PerkIDs[0]
			lp.KeystoneName = catalog.RuneName(lp.Keystone)
		}
		live.Participants = append(live.Participants, lp)
	}
	for _, b := range game.BannedChampions {
		// -1 marks an empty ban slot
		if b.ChampionID <= 0 {
			continue
		}
		live.Bans = append(live.Bans, domain.LiveBan{
			ChampionID:   b.ChampionID,
			ChampionName: catalog.ChampionName(b.ChampionID),
			TeamID:       b.TeamID,
		})
	}
	return live
}

func participantOf(game *riot.CurrentGame, puuid string) *riot.CurrentGameParticipant {
	for i := range game.Participants {
		if game.Participants[i].Puuid == puuid {
			return &game.Participants[i]
		}
	}
	return nil
}

// enemyChampions names the champions on the team opposing puuid. Nil when puuid is not a participant.
func enemyChampions(game *riot.CurrentGame, puuid string, catalog *ddragon.Catalog) []string {
	me := participantOf(game, puuid)
	if me == nil {
		return nil
	}
	var out []string
	for _, p := range game.Participants {
		if p.TeamID != me.TeamID {
			out = append(out, catalog.ChampionName(p.ChampionID))
		}
	}
	return out
}

func championBuild(catalog *ddragon.Catalog, championID int, role string) *domain.ChampionBuild {
	champ, ok := catalog.Champions[championID]
	if !ok {
		return nil
	}
	b, source := stats.BuildFor(champ.ID, champ.Tags, role)

	perk := func(id int) domain.BuildRef {
		return domain.BuildRef{ID: id, Name: catalog.RuneName(id), Icon: catalog.RuneIcon(id)}
	}
	item := func(id int) domain.BuildRef {
		return domain.BuildRef{ID: id, Name: catalog.ItemName(id), Icon: catalog.ItemIcon(id)}
	}
	items := func(ids []int) []domain.BuildRef {
		out := make([]domain.BuildRef, 0, len(ids))
		for _, id := range ids {
			out = append(out, item(id))
		}
		return out
	}

	build := &domain.ChampionBuild{
		Champion:      champ.Name,
		Role:          b.Role,
		Source:        source,
		Keystone:      perk(b.Keystone),
		SecondaryTree: perk(b.SecondaryTree),
		Summoners:     make([]domain.BuildRef, 0, len(b.Summoners)),
		CoreItems:     items(b.CoreItems),
		Boots:         item(b.Boots),
		Situational:   items(b.Situational),
		WinRate:       b.WinRate,
		PickRate:      b.PickRate,
		Games:         b.Games,
	}
	for _, id := range b.Summoners {
		build.Summoners = append(build.Summoners, domain.BuildRef{ID: id, Name: catalog.SpellName(id), Icon: catalog.SpellIcon(id)})
	}
	return build
}
