package tool_getweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vpittamp/graphpilot/src/aisdk"
)

func TestGetWeather(t *testing.T) {
	geo := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Berlin", r.URL.Query().Get("name"))
		w.Write([]byte(`{"results":[{"name":"Berlin","latitude":52.52,"longitude":13.4}]}`))
	}))
	defer geo.Close()

	forecast := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		w.Write([]byte(`{"current_weather":{"temperature":18.5,"windspeed":11.2,"weathercode":2}}`))
	}))
	defer forecast.Close()

	oldGeo, oldForecast := geocodeURL, forecastURL
	geocodeURL, forecastURL = geo.URL, forecast.URL
	defer func() { geocodeURL, forecastURL = oldGeo, oldForecast }()

	tool, err := Tool(geo.Client())
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		ID:   "call-1",
		Type: "function",
		Function: aisdk.FunctionCall{
			Name:      Name,
			Arguments: []byte(`{"city":"Berlin"}`),
		},
	})
	require.NoError(t, err)
	require.False(t, resp.IsError, string(resp.Content))
	assert.Contains(t, string(resp.Content), `"city":"Berlin"`)
	assert.Contains(t, string(resp.Content), "18.5")
	assert.Contains(t, string(resp.Content), "partly cloudy")
}

func TestGetWeatherMissingCity(t *testing.T) {
	tool, err := Tool(nil)
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		Function: aisdk.FunctionCall{Name: Name, Arguments: []byte(`{}`)},
	})
	require.NoError(t, err)
	assert.True(t, resp.IsError)
	assert.Contains(t, string(resp.Content), "city")
}

func TestDescribeWeatherCode(t *testing.T) {
	assert.Equal(t, "clear sky", describeWeatherCode(0))
	assert.Equal(t, "partly cloudy", describeWeatherCode(3))
	assert.Equal(t, "rain", describeWeatherCode(63))
	assert.Equal(t, "thunderstorm", describeWeatherCode(95))
}
