package weather

import "time"

// Condition is the coarse classification derived from the provider's
// numeric condition code.
type Condition string

const (
	Thunderstorm      Condition = "thunderstorm"
	LightThunderstorm Condition = "thunderstorm_light"
	Showers           Condition = "showers"
	Rain              Condition = "rain"
	Snow              Condition = "snow"
	Clear             Condition = "clear"
	FewClouds         Condition = "few_clouds"
	ScatteredClouds   Condition = "scattered_clouds"
	BrokenClouds      Condition = "broken_clouds"
	Overcast          Condition = "overcast"
	Unknown           Condition = "unknown"
)

// Observation is a single normalized reading of current conditions.
// It is produced per poll and discarded after the status update.
type Observation struct {
	City       string
	Condition  Condition
	Code       int
	TempC      float64
	IsDaytime  bool
	ObservedAt time.Time
}

// conditionFromCode maps OpenWeatherMap condition codes
// (https://openweathermap.org/weather-conditions) onto the coarse set.
var conditionFromCode = map[int]Condition{
	200: Thunderstorm, 201: Thunderstorm, 202: Thunderstorm,
	210: LightThunderstorm, 211: LightThunderstorm, 212: Thunderstorm,

	300: Showers, 301: Showers, 302: Rain,
	310: Showers, 311: Rain, 312: Rain,

	500: Showers, 501: Rain, 502: Rain, 503: Rain,
	511: Snow, 520: Showers, 521: Showers,

	600: Snow, 601: Snow, 602: Snow, 611: Snow,

	800: Clear, 801: FewClouds, 802: ScatteredClouds,
	803: BrokenClouds, 804: Overcast,
}

// ConditionFromCode returns the coarse condition for a provider code.
// Codes outside the table map to Unknown; the status mapper decides the
// fallback, so an unexpected provider value never stalls an update.
func ConditionFromCode(code int) Condition {
	if c, ok := conditionFromCode[code]; ok {
		return c
	}
	return Unknown
}

// isDaytime resolves the day/night flag from the provider's sunrise and
// sunset timestamps: sunrise inclusive, sunset exclusive. When the provider
// omits them, it falls back to the local wall clock, treating 06:00-21:00
// as day.
func isDaytime(sunrise, sunset int64, now time.Time) bool {
	if sunrise > 0 && sunset > 0 {
		ts := now.Unix()
		return ts >= sunrise && ts < sunset
	}

	hour := now.Local().Hour()
	return hour >= 6 && hour < 21
}
