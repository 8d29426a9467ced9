package client

// ChatRequest is the body of POST /chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required"`
}

// ChatResponse is the success body of POST /chat.
type ChatResponse struct {
	Response string `json:"response"`
}

// WeatherQuery is sent as the query string of GET /api/weather.
type WeatherQuery struct {
	City string `json:"city" validate:"required"`
}

// WeatherResponse is the success body of GET /api/weather.
type WeatherResponse struct {
	City    string         `json:"city"`
	Country string         `json:"country"`
	Current CurrentWeather `json:"current"`
	Daily   DailyForecast  `json:"daily"`
}

// CurrentWeather mirrors open-meteo's current_weather block.
type CurrentWeather struct {
	Temperature   float64 `json:"temperature"`
	WeatherCode   float64 `json:"weathercode"`
	WindSpeed     float64 `json:"windspeed"`
	WindDirection float64 `json:"winddirection"`
	Time          string  `json:"time"`
}

// DailyForecast mirrors open-meteo's columnar daily block. Columns may be
// missing or of unequal length.
type DailyForecast struct {
	Time           []string  `json:"time"`
	TemperatureMax []float64 `json:"temperature_2m_max"`
	TemperatureMin []float64 `json:"temperature_2m_min"`
	WeatherCode    []float64 `json:"weathercode"`
}

// SimilarityRequest is the body of POST /predict.
type SimilarityRequest struct {
	Sentence1 string `json:"sentence1" validate:"required"`
	Sentence2 string `json:"sentence2" validate:"required"`
}

// SimilarityResponse is the success body of POST /predict.
type SimilarityResponse struct {
	SimilarityScore float64 `json:"similarity_score"`
	IsParaphrase    bool    `json:"is_paraphrase"`
	Verdict         string  `json:"verdict"`
}

type errorBody struct {
	Error string `json:"error"`
}
