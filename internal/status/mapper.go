// Package status picks the Telegram custom-emoji status for an observation.
package status

import "weatherstatus/internal/weather"

// Emoji identifies one custom emoji: a stable key for logging plus the
// Telegram document ID the account API expects.
type Emoji struct {
	Key        string
	DocumentID int64
}

var (
	sunClear           = Emoji{Key: "sun_clear", DocumentID: 5469947168523558652}
	sunFewClouds       = Emoji{Key: "sun_few_clouds", DocumentID: 5283075860188898177}
	sunScatteredClouds = Emoji{Key: "sun_scattered_clouds", DocumentID: 5283197442123114023}
	moonClear          = Emoji{Key: "moon_clear", DocumentID: 5188452705546281155}
	cloudBroken        = Emoji{Key: "cloud_broken", DocumentID: 5283155153875116393}
	cloudOvercast      = Emoji{Key: "cloud_overcast", DocumentID: 5287571024500498635}
	showersDay         = Emoji{Key: "showers_rain_day", DocumentID: 5283097055852503586}
	rain               = Emoji{Key: "rain", DocumentID: 5283243028905994049}
	thunderstorm       = Emoji{Key: "thunderstorm", DocumentID: 5282939632416206153}
	thunderstormLight  = Emoji{Key: "thunderstorm_light", DocumentID: 5282731554135615450}
	snow               = Emoji{Key: "snow", DocumentID: 5431895003821513760}
)

// Fallback is used for any condition outside the table, day or night, so an
// unexpected provider value never stalls an update.
var Fallback = cloudOvercast

var dayEmoji = map[weather.Condition]Emoji{
	weather.Thunderstorm:      thunderstorm,
	weather.LightThunderstorm: thunderstormLight,
	weather.Showers:           showersDay,
	weather.Rain:              rain,
	weather.Snow:              snow,
	weather.Clear:             sunClear,
	weather.FewClouds:         sunFewClouds,
	weather.ScatteredClouds:   sunScatteredClouds,
	weather.BrokenClouds:      cloudBroken,
	weather.Overcast:          cloudOvercast,
}

// nightEmoji overrides the day choice for conditions whose glyph only makes
// sense in daylight.
var nightEmoji = map[weather.Condition]Emoji{
	weather.Clear:           moonClear,
	weather.FewClouds:       cloudBroken,
	weather.ScatteredClouds: cloudBroken,
	weather.Showers:         rain,
}

// Select maps a condition and day/night flag onto an emoji. Total: unknown
// conditions resolve to Fallback.
func Select(cond weather.Condition, isDaytime bool) Emoji {
	if !isDaytime {
		if e, ok := nightEmoji[cond]; ok {
			return e
		}
	}
	if e, ok := dayEmoji[cond]; ok {
		return e
	}
	return Fallback
}
