package pokeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"creature_packs/internal/domain"
)

// ErrNotFound is returned when the provider has no resource for an id.
var ErrNotFound = errors.New("pokeapi: resource not found")

// Client talks to a PokeAPI-compatible creature data provider.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a provider client. baseURL should point at the API root,
// e.g. "https://pokeapi.co/api/v2".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NamedResource is the provider's {name, url} reference shape.
type NamedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Location is a provider location, the backing resource for one booster pack.
type Location struct {
	ID    int             `json:"id"`
	Name  string          `json:"name"`
	Areas []NamedResource `json:"areas"`
}

// ListLocationIDs returns up to limit location ids in provider order.
func (c *Client) ListLocationIDs(ctx context.Context, limit int) ([]int, error) {
	var page struct {
		Results []NamedResource `json:"results"`
	}
	url := fmt.Sprintf("%s/location?limit=%d", c.baseURL, limit)
	if err := c.getJSON(ctx, url, &page); err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(page.Results))
	for _, r := range page.Results {
		id, err := resourceID(r.URL)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetLocation fetches a single location by id.
func (c *Client) GetLocation(ctx context.Context, id int) (*Location, error) {
	var loc Location
	url := fmt.Sprintf("%s/location/%d", c.baseURL, id)
	if err := c.getJSON(ctx, url, &loc); err != nil {
		return nil, err
	}
	return &loc, nil
}

// GetLocationStock resolves the creatures encounterable in a location. Each
// species appears once, with its base experience as the stock weight. The
// result may be empty: some locations have no encounters at all.
func (c *Client) GetLocationStock(ctx context.Context, loc *Location) ([]domain.CreatureStock, error) {
	seen := make(map[int]bool)
	var stock []domain.CreatureStock

	for _, area := range loc.Areas {
		var areaData struct {
			Encounters []struct {
				Pokemon NamedResource `json:"pokemon"`
			} `json:"pokemon_encounters"`
		}
		if err := c.getJSON(ctx, area.URL, &areaData); err != nil {
			return nil, err
		}

		for _, enc := range areaData.Encounters {
			speciesID, err := resourceID(enc.Pokemon.URL)
			if err != nil || seen[speciesID] {
				continue
			}
			seen[speciesID] = true

			var creature struct {
				ID             int    `json:"id"`
				Name           string `json:"name"`
				BaseExperience int64  `json:"base_experience"`
			}
			url := fmt.Sprintf("%s/pokemon/%d", c.baseURL, speciesID)
			if err := c.getJSON(ctx, url, &creature); err != nil {
				return nil, err
			}

			stock = append(stock, domain.CreatureStock{
				SpeciesID: creature.ID,
				Name:      creature.Name,
				XP:        creature.BaseExperience,
			})
		}
	}

	return stock, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("pokeapi: %s - %s", resp.Status, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// resourceID extracts the numeric id from a provider resource URL such as
// "https://pokeapi.co/api/v2/pokemon/25/".
func resourceID(url string) (int, error) {
	trimmed := strings.TrimRight(url, "/")
	idx := strings.LastIndex(trimmed, "/")
	if idx < 0 {
		return 0, fmt.Errorf("pokeapi: malformed resource url %q", url)
	}
	return strconv.Atoi(trimmed[idx+1:])
}
