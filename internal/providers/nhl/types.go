package nhl

import (
	"bytes"
	"encoding/json"
)

// localized decodes both plain strings and the upstream {"default": "..."} form.
type localized string

func (l *localized) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*l = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = localized(s)
		return nil
	}
	var obj struct {
		Default string `json:"default"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*l = localized(obj.Default)
	return nil
}

type sideResponse struct {
	Abbrev     string    `json:"abbrev"`
	Score      int       `json:"score"`
	CommonName localized `json:"commonName"`
}

type periodDescriptorResponse struct {
	Number     int    `json:"number"`
	PeriodType string `json:"periodType"`
}

type goalResponse struct {
	Period                  int                      `json:"period"`
	PeriodDescriptor        periodDescriptorResponse `json:"periodDescriptor"`
	TimeInPeriod            string                   `json:"timeInPeriod"`
	TeamAbbrev              localized                `json:"teamAbbrev"`
	FirstName               localized                `json:"firstName"`
	LastName                localized                `json:"lastName"`
	Name                    localized                `json:"name"`
	Strength                string                   `json:"strength"`
	HighlightClipSharingURL string                   `json:"highlightClipSharingUrl"`
}

type gameResponse struct {
	ID           int64          `json:"id"`
	GameDate     string         `json:"gameDate"`
	StartTimeUTC string         `json:"startTimeUTC"`
	GameState    string         `json:"gameState"`
	HomeTeam     sideResponse   `json:"homeTeam"`
	AwayTeam     sideResponse   `json:"awayTeam"`
	Goals        []goalResponse `json:"goals"`
}

type scheduleResponse struct {
	Games []gameResponse `json:"games"`
}

type scoreResponse struct {
	CurrentDate string         `json:"currentDate"`
	Games       []gameResponse `json:"games"`
}

type playResponse struct {
	TypeDescKey      string                   `json:"typeDescKey"`
	PeriodDescriptor periodDescriptorResponse `json:"periodDescriptor"`
	TimeInPeriod     string                   `json:"timeInPeriod"`
	Details          struct {
		ShotType string `json:"shotType"`
	} `json:"details"`
}

type playByPlayResponse struct {
	ID    int64          `json:"id"`
	Plays []playResponse `json:"plays"`
}

type standingResponse struct {
	TeamAbbrev     localized `json:"teamAbbrev"`
	TeamName       localized `json:"teamName"`
	TeamCommonName localized `json:"teamCommonName"`
}

type standingsResponse struct {
	Standings []standingResponse `json:"standings"`
}
