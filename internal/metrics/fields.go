package metrics

// Common metric attribute keys to keep telemetry consistent/searchable.
const (
	AttrMethod   = "method"
	AttrPath     = "path"
	AttrStatus   = "status"
	AttrProvider = "provider"
	AttrUnit     = "unit"
	AttrCacheHit = "hit"
)

// Unit kinds reported through RecordUnitFailure.
const (
	UnitDay      = "day"
	UnitTeam     = "team"
	UnitTemplate = "template"
	UnitPlays    = "play_by_play"
)
