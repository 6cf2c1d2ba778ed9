package events

// Canonical names for the default session protocol
const (
	RestPreStart     = "rest_pre_start"
	RestPreEnd       = "rest_pre_end"
	MeasurementStart = "measurement_start"
	MeasurementEnd   = "measurement_end"
	PauseStart       = "pause_start"
	PauseEnd         = "pause_end"
	RestPostStart    = "rest_post_start"
	RestPostEnd      = "rest_post_end"
)

var defaultNames = []string{
	RestPreStart, RestPreEnd,
	MeasurementStart, MeasurementEnd,
	PauseStart, PauseEnd,
	RestPostStart, RestPostEnd,
}

// defaultSynonyms covers the label variants seen across logger exports.
// Patterns are matched against folded labels, so lowercase only
var defaultSynonyms = map[string][]string{
	RestPreStart: {
		`rest[ _-]?pre[ _-]?start`,
		`pre[ _-]?rest[ _-]?start`,
		`baseline[ _-]?start`,
		`ruhe[ _-]?vorher[ _-]?start`,
	},
	RestPreEnd: {
		`rest[ _-]?pre[ _-]?end`,
		`pre[ _-]?rest[ _-]?end`,
		`baseline[ _-]?end`,
		`ruhe[ _-]?vorher[ _-]?ende`,
	},
	MeasurementStart: {
		`measurement[ _-]?start`,
		`task[ _-]?start`,
		`messung[ _-]?start`,
	},
	MeasurementEnd: {
		`measurement[ _-]?end`,
		`task[ _-]?end`,
		`messung[ _-]?ende`,
	},
	PauseStart: {
		`pause[ _-]?start`,
		`break[ _-]?start`,
	},
	PauseEnd: {
		`pause[ _-]?end`,
		`break[ _-]?end`,
	},
	RestPostStart: {
		`rest[ _-]?post[ _-]?start`,
		`post[ _-]?rest[ _-]?start`,
		`ruhe[ _-]?nachher[ _-]?start`,
	},
	RestPostEnd: {
		`rest[ _-]?post[ _-]?end`,
		`post[ _-]?rest[ _-]?end`,
		`ruhe[ _-]?nachher[ _-]?ende`,
	},
}

// DefaultCatalogue returns the built-in protocol catalogue. Panics only
// on a programmer error in the built-in patterns
func DefaultCatalogue() *Catalogue {
	c, err := NewCatalogue(defaultNames, defaultSynonyms)
	if err != nil {
		panic(err)
	}
	return c
}
