// Package normalize maps raw NHL game feeds onto the entities the store persists.
// It performs no I/O.
package normalize

import (
	"fmt"
	"math"
	"strings"

	"github.com/hockey-db/hockey-db/internal/core/hockey"
	"github.com/hockey-db/hockey-db/internal/source/nhl"
)

// Game maps one game feed to a NormalizedGame.
// Plays keep their source order. A play without coordinates gets nil X and Y, and a
// play without players gets no InvolvedPlayer rows. Any missing required field
// returns a *MalformedRecordError.
func Game(feed *nhl.GameFeed) (*hockey.NormalizedGame, error) {
	if feed == nil || feed.GamePk == nil {
		return nil, &MalformedRecordError{Field: "gamePk"}
	}
	gameID := *feed.GamePk

	game, err := mapGame(gameID, &feed.GameData)
	if err != nil {
		return nil, err
	}

	plays := feed.LiveData.Plays.AllPlays
	events := make([]hockey.Event, 0, len(plays))
	for i := range plays {
		evt, err := mapPlay(gameID, i, &plays[i])
		if err != nil {
			return nil, err
		}
		events = append(events, evt)
	}

	return &hockey.NormalizedGame{Game: game, Events: events}, nil
}

func mapGame(gameID int64, data *nhl.GameData) (hockey.Game, error) {
	missing := func(field string) error {
		return &MalformedRecordError{GameID: gameID, Field: "gameData." + field}
	}

	if data.Teams == nil || data.Teams.Home == nil || data.Teams.Home.ID == nil {
		return hockey.Game{}, missing("teams.home.id")
	}
	if data.Teams.Away == nil || data.Teams.Away.ID == nil {
		return hockey.Game{}, missing("teams.away.id")
	}
	if data.Venue == nil || strings.TrimSpace(data.Venue.Name) == "" {
		return hockey.Game{}, missing("venue.name")
	}
	if data.Game == nil || data.Game.Type == "" {
		return hockey.Game{}, missing("game.type")
	}
	if data.Game.Season == "" {
		return hockey.Game{}, missing("game.season")
	}
	if data.DateTime == nil || data.DateTime.DateTime == nil {
		return hockey.Game{}, missing("datetime.dateTime")
	}

	return hockey.Game{
		ID:         gameID,
		HomeTeamID: *data.Teams.Home.ID,
		AwayTeamID: *data.Teams.Away.ID,
		Arena:      data.Venue.Name,
		Type:       data.Game.Type,
		Season:     data.Game.Season,
		DateTime:   *data.DateTime.DateTime,
	}, nil
}

func mapPlay(gameID int64, i int, play *nhl.Play) (hockey.Event, error) {
	prefix := fmt.Sprintf("liveData.plays.allPlays[%d].", i)
	missing := func(field string) error {
		return &MalformedRecordError{GameID: gameID, Field: prefix + field}
	}

	about := play.About
	if about == nil {
		return hockey.Event{}, missing("about")
	}
	if about.EventIdx == nil {
		return hockey.Event{}, missing("about.eventIdx")
	}
	if about.Period == nil {
		return hockey.Event{}, missing("about.period")
	}
	if about.PeriodType == "" {
		return hockey.Event{}, missing("about.periodType")
	}
	if about.DateTime == nil {
		return hockey.Event{}, missing("about.dateTime")
	}
	if play.Result == nil || play.Result.EventTypeID == "" {
		return hockey.Event{}, missing("result.eventTypeId")
	}

	periodTime, err := hockey.ParsePeriodTime(about.PeriodTime)
	if err != nil {
		return hockey.Event{}, &MalformedRecordError{GameID: gameID, Field: prefix + "about.periodTime", Err: err}
	}

	players := make([]hockey.InvolvedPlayer, 0, len(play.Players))
	for j, p := range play.Players {
		if p.Player.ID == 0 {
			return hockey.Event{}, missing(fmt.Sprintf("players[%d].player.id", j))
		}
		players = append(players, hockey.InvolvedPlayer{
			PlayerID: p.Player.ID,
			Type:     p.PlayerType,
		})
	}

	return hockey.Event{
		Index: *about.EventIdx,
		Type:  play.Result.EventTypeID,
		X:     roundCoordinate(play.Coordinates.X),
		Y:     roundCoordinate(play.Coordinates.Y),
		Period: hockey.Period{
			Number: *about.Period,
			Type:   about.PeriodType,
		},
		PeriodTime: periodTime,
		DateTime:   *about.DateTime,
		Players:    players,
	}, nil
}

// roundCoordinate keeps "no location" distinct from zero.
func roundCoordinate(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(math.Round(*v))
	return &n
}
