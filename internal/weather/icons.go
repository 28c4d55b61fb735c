package weather

// NoConnectionIcon replaces the weather glyph when a visible refresh fails.
const NoConnectionIcon = "⚠"

type iconGroup struct {
	glyph string
	codes []string
}

var iconGroups = []iconGroup{
	{"☀️", []string{"clear"}},
	{"⛅", []string{"partly_cloudy"}},
	{"⛈", []string{"tstorm"}},
	{"🌤", []string{"mostly_clear"}},
	{"🌥", []string{"mostly_cloudy"}},
	{"☁️", []string{"cloudy"}},
	{"🌧", []string{"rain_heavy", "rain", "rain_light", "drizzle"}},
	{"🌨", []string{
		"snow_heavy",
		"snow",
		"snow_light",
		"flurries",
		"freezing_rain_heavy",
		"freezing_rain",
		"freezing_rain_light",
		"freezing_drizzle",
		"ice_pellets_heavy",
		"ice_pellets",
		"ice_pellets_light",
	}},
	{"🌫", []string{"fog", "fog_light"}},
}

var iconByCode = buildIconIndex()

func buildIconIndex() map[string]string {
	idx := make(map[string]string)
	for _, g := range iconGroups {
		for _, code := range g.codes {
			idx[code] = g.glyph
		}
	}
	return idx
}

// Icon returns the glyph for a condition code, or "" when the code is unmapped.
func Icon(code string) string {
	return iconByCode[code]
}
