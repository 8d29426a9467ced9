// Package view projects backend responses onto display models. Nothing here
// touches the terminal; the tui package styles the results.
package view

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jask/labdesk/internal/client"
)

// UnknownCondition is shown for any weather code outside the table.
const UnknownCondition = "Unknown"

// WMO weather interpretation codes (WW). The table is closed: lookups that
// miss render UnknownCondition instead of failing.
var conditionLabels = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	71: "Slight snow",
	73: "Moderate snow",
	75: "Heavy snow",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

// ConditionLabel maps a weather code to its label.
func ConditionLabel(code float64) string {
	if code != math.Trunc(code) {
		return UnknownCondition
	}
	if label, ok := conditionLabels[int(code)]; ok {
		return label
	}
	return UnknownCondition
}

// Weather is the rendered weather card.
type Weather struct {
	Location    string
	Temperature int
	Condition   string
	Wind        string
	Days        []Day
}

// Day is one row of the daily forecast.
type Day struct {
	Date      time.Time
	Max       float64
	Min       float64
	Condition string
}

// Label renders the day as "Mon 02".
func (d Day) Label() string { return d.Date.Format("Mon 02") }

// High and Low are the day's extremes rounded like the current temperature.
func (d Day) High() int { return roundHalfUp(d.Max) }

func (d Day) Low() int { return roundHalfUp(d.Min) }

// ProjectWeather builds the weather card from a success body.
func ProjectWeather(r client.WeatherResponse) Weather {
	loc := strings.TrimSpace(r.City)
	if country := strings.TrimSpace(r.Country); country != "" {
		loc += ", " + country
	}
	return Weather{
		Location:    loc,
		Temperature: roundHalfUp(r.Current.Temperature),
		Condition:   ConditionLabel(r.Current.WeatherCode),
		Wind:        strconv.FormatFloat(r.Current.WindSpeed, 'f', -1, 64),
		Days:        projectDays(r.Daily),
	}
}

func projectDays(d client.DailyForecast) []Day {
	var out []Day
	for i, raw := range d.Time {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			continue
		}
		day := Day{Date: date, Condition: UnknownCondition}
		if i < len(d.TemperatureMax) {
			day.Max = d.TemperatureMax[i]
		}
		if i < len(d.TemperatureMin) {
			day.Min = d.TemperatureMin[i]
		}
		if i < len(d.WeatherCode) {
			day.Condition = ConditionLabel(d.WeatherCode[i])
		}
		out = append(out, day)
	}
	return out
}

// roundHalfUp rounds .5 towards +Inf.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
