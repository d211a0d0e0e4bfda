package tool_getweather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/vpittamp/graphpilot/src/assistant"
)

// Tool name constant
const Name = "get_weather"

const weatherPrompt = `Get the weather information for a given city.

WHEN TO USE THIS TOOL:
- Use when the user asks about current weather conditions in a city

HOW TO USE:
- Provide the name of the city

LIMITATIONS:
- Only current conditions are returned, no forecast`

var (
	geocodeURL  = "https://geocoding-api.open-meteo.com/v1/search"
	forecastURL = "https://api.open-meteo.com/v1/forecast"
)

// WeatherInput represents the parameters for get_weather
type WeatherInput struct {
	City string `json:"city" required:"true" description:"The name of the city."`
}

// WeatherOutput represents the response from get_weather
type WeatherOutput struct {
	City        string  `json:"city" description:"The resolved city name"`
	Temperature float64 `json:"temperature" description:"Current temperature"`
	Unit        string  `json:"unit" description:"Temperature unit"`
	WindSpeed   float64 `json:"wind_speed" description:"Current wind speed in km/h"`
	Conditions  string  `json:"conditions" description:"Current conditions description"`
}

// Tool returns the get_weather tool definition using GenericTool
func Tool(client *http.Client) (assistant.Tool, error) {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return assistant.NewGenericTool(Name, weatherPrompt,
		func(ctx context.Context, input WeatherInput) (WeatherOutput, error) {
			return fetchWeather(ctx, client, input.City)
		})
}

type geocodeResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

type forecastResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

func fetchWeather(ctx context.Context, client *http.Client, city string) (WeatherOutput, error) {
	var geo geocodeResponse
	query := url.Values{"name": {city}, "count": {"1"}}
	if err := getJSON(ctx, client, geocodeURL+"?"+query.Encode(), &geo); err != nil {
		return WeatherOutput{}, fmt.Errorf("failed to resolve city: %w", err)
	}
	if len(geo.Results) == 0 {
		return WeatherOutput{}, fmt.Errorf("unknown city: %s", city)
	}
	place := geo.Results[0]

	var forecast forecastResponse
	query = url.Values{
		"latitude":        {fmt.Sprintf("%f", place.Latitude)},
		"longitude":       {fmt.Sprintf("%f", place.Longitude)},
		"current_weather": {"true"},
	}
	if err := getJSON(ctx, client, forecastURL+"?"+query.Encode(), &forecast); err != nil {
		return WeatherOutput{}, fmt.Errorf("failed to fetch weather: %w", err)
	}

	return WeatherOutput{
		City:        place.Name,
		Temperature: forecast.CurrentWeather.Temperature,
		Unit:        "°C",
		WindSpeed:   forecast.CurrentWeather.WindSpeed,
		Conditions:  describeWeatherCode(forecast.CurrentWeather.WeatherCode),
	}, nil
}

func getJSON(ctx context.Context, client *http.Client, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("request failed with status code: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// describeWeatherCode maps WMO weather codes to short descriptions.
func describeWeatherCode(code int) string {
	switch {
	case code == 0:
		return "clear sky"
	case code <= 3:
		return "partly cloudy"
	case code <= 48:
		return "fog"
	case code <= 57:
		return "drizzle"
	case code <= 67:
		return "rain"
	case code <= 77:
		return "snow"
	case code <= 82:
		return "rain showers"
	case code <= 86:
		return "snow showers"
	default:
		return "thunderstorm"
	}
}
