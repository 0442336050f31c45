package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyBaseURL  = "https://api.spotify.com/v1"
)

// spotifyTrack mirrors the fields of the Spotify track object this
// client consumes. Response shapes follow
// https://developer.spotify.com/documentation/web-api/reference/
type spotifyTrack struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name   string `json:"name"`
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
	ExternalURLs struct {
		Spotify string `json:"spotify"`
	} `json:"external_urls"`
}

type searchResponse struct {
	Tracks struct {
		Items []spotifyTrack `json:"items"`
		Total int            `json:"total"`
	} `json:"tracks"`
}

// SpotifyClient searches the Spotify catalog using the
// client-credentials flow. The underlying HTTP client refreshes the
// application token as needed.
type SpotifyClient struct {
	baseURL    string
	market     string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewSpotifyClient builds a catalog client authenticated with the given
// application credentials.
func NewSpotifyClient(clientID, clientSecret, market string) *SpotifyClient {
	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyTokenURL,
	}
	return &SpotifyClient{
		baseURL:    spotifyBaseURL,
		market:     market,
		httpClient: conf.Client(context.Background()),
		limiter:    rate.NewLimiter(rate.Limit(10), 10),
	}
}

// Search queries /v1/search for tracks at the given offset.
func (c *SpotifyClient) Search(ctx context.Context, query string, offset, limit int) ([]Track, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))
	params.Set("offset", strconv.Itoa(offset))
	if c.market != "" {
		params.Set("market", c.market)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, 0, fmt.Errorf("%w: search returned %d: %s",
			ErrUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, 0, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}

	tracks := make([]Track, 0, len(result.Tracks.Items))
	for _, item := range result.Tracks.Items {
		t := Track{
			ID:    item.ID,
			Title: item.Name,
			Album: item.Album.Name,
			URL:   item.ExternalURLs.Spotify,
		}
		if len(item.Artists) > 0 {
			names := make([]string, 0, len(item.Artists))
			for _, a := range item.Artists {
				names = append(names, a.Name)
			}
			t.Artist = strings.Join(names, ", ")
		}
		if len(item.Album.Images) > 0 {
			t.Image = item.Album.Images[0].URL
		}
		tracks = append(tracks, t)
	}
	return tracks, result.Tracks.Total, nil
}
