package nhl

import "time"

// StatusFinal is the schedule detailedState of a completed game.
const StatusFinal = "Final"

// Schedule is the /schedule response. Games are grouped by calendar date.
type Schedule struct {
	Dates []ScheduleDate `json:"dates"`
}

type ScheduleDate struct {
	Date  string          `json:"date"`
	Games []ScheduledGame `json:"games"`
}

type ScheduledGame struct {
	GamePk int64      `json:"gamePk"`
	Status GameStatus `json:"status"`
}

type GameStatus struct {
	AbstractGameState string `json:"abstractGameState"`
	DetailedState     string `json:"detailedState"`
}

// GameFeed is the /game/{id}/feed/live response, reduced to the fields ingestion reads.
// Pointer fields are required by the normalizer; a nil pointer means the source omitted it.
type GameFeed struct {
	GamePk   *int64   `json:"gamePk"`
	GameData GameData `json:"gameData"`
	LiveData LiveData `json:"liveData"`
}

type GameData struct {
	Game     *GameInfo     `json:"game"`
	DateTime *GameDateTime `json:"datetime"`
	Teams    *Teams        `json:"teams"`
	Venue    *Venue        `json:"venue"`
}

type GameInfo struct {
	Pk     int64  `json:"pk"`
	Season string `json:"season"`
	Type   string `json:"type"`
}

type GameDateTime struct {
	DateTime *time.Time `json:"dateTime"`
}

type Teams struct {
	Away *TeamRef `json:"away"`
	Home *TeamRef `json:"home"`
}

type TeamRef struct {
	ID   *int64 `json:"id"`
	Name string `json:"name,omitempty"`
}

type Venue struct {
	Name string `json:"name"`
}

type LiveData struct {
	Plays Plays `json:"plays"`
}

type Plays struct {
	AllPlays []Play `json:"allPlays"`
}

// Play is one entry of liveData.plays.allPlays.
// Players is absent for plays without participants (period start, stoppage, ...),
// and Coordinates is empty for plays without a rink location.
type Play struct {
	Players     []PlayerRole `json:"players,omitempty"`
	Result      *PlayResult  `json:"result"`
	About       *PlayAbout   `json:"about"`
	Coordinates Coordinates  `json:"coordinates"`
}

type PlayerRole struct {
	Player     PlayerRef `json:"player"`
	PlayerType string    `json:"playerType"`
}

type PlayerRef struct {
	ID       int64  `json:"id"`
	FullName string `json:"fullName,omitempty"`
}

type PlayResult struct {
	Event       string `json:"event,omitempty"`
	EventTypeID string `json:"eventTypeId"`
}

type PlayAbout struct {
	EventIdx   *int       `json:"eventIdx"`
	Period     *int       `json:"period"`
	PeriodType string     `json:"periodType"`
	PeriodTime string     `json:"periodTime"`
	DateTime   *time.Time `json:"dateTime"`
}

// Coordinates are sent as JSON numbers, sometimes with a fractional part.
type Coordinates struct {
	X *float64 `json:"x,omitempty"`
	Y *float64 `json:"y,omitempty"`
}
