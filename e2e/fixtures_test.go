//go:build e2e && unix

package main

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const londonBody = `{
  "message": "accurate",
  "cod": "200",
  "count": 2,
  "list": [
    {
      "id": 2643743, "name": "London", "dt": 1704164645,
      "coord": {"lat": 51.5085, "lon": -0.1257},
      "main": {"temp": 11.2, "feels_like": 10.4, "temp_min": 10, "temp_max": 12, "pressure": 1012, "humidity": 81},
      "wind": {"speed": 4.1, "deg": 80},
      "clouds": {"all": 90},
      "sys": {"country": "GB"},
      "weather": [{"id": 804, "main": "Clouds", "description": "overcast clouds", "icon": "04d"}]
    },
    {
      "id": 6058560, "name": "London", "dt": 1704164645,
      "coord": {"lat": 42.9834, "lon": -81.233},
      "main": {"temp": -2.5, "feels_like": -6, "temp_min": -3, "temp_max": -1, "pressure": 1020, "humidity": 70},
      "wind": {"speed": 2.6, "deg": 250},
      "clouds": {"all": 0},
      "sys": {"country": "CA"},
      "weather": [{"id": 800, "main": "Clear", "description": "clear sky", "icon": "01n"}]
    }
  ]
}`

// weatherServer fakes the city search endpoint. "London" matches two
// cities, "Slowtown" answers after a delay, "Nowhere" is a 404 and every
// other query matches nothing.
type weatherServer struct {
	*httptest.Server
	requests atomic.Int64
}

func newWeatherServer(t *testing.T) *weatherServer {
	t.Helper()
	ws := &weatherServer{}
	ws.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws.requests.Add(1)
		q := r.URL.Query()
		switch {
		case q.Get("appid") != "e2e-key":
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"cod":401,"message":"Invalid API key."}`))
		case q.Get("q") == "London":
			_, _ = w.Write([]byte(londonBody))
		case q.Get("q") == "Slowtown":
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
				return
			}
			_, _ = w.Write([]byte(londonBody))
		case q.Get("q") == "Nowhere":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"cod":"404","message":"city not found"}`))
		default:
			_, _ = w.Write([]byte(`{"message":"accurate","cod":"200","count":0,"list":[]}`))
		}
	}))
	t.Cleanup(ws.Close)
	return ws
}
