// Package pokeapi implements the PokeAPI creature lookup behind the pokedex app.
package pokeapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"fetchkit/internal/cache"
	"fetchkit/internal/core"
	"fetchkit/internal/httpclient"
)

const (
	// DefaultBaseURL is the public PokeAPI endpoint
	DefaultBaseURL = "https://pokeapi.co/api/v2"

	// DefaultTimeout bounds a single lookup request
	DefaultTimeout = 20 * time.Second

	// MaxMoves caps the rendered move list
	MaxMoves = 15

	// maxBodySize guards against runaway responses
	maxBodySize = 10 * 1024 * 1024 // 10 MB
)

// Client queries PokeAPI for creature summaries, optionally through a cache.
type Client struct {
	baseURL string
	http    *http.Client
	cache   cache.Cache
}

// New creates a client. An empty baseURL uses the public API, a nil
// httpClient gets the default 20-second-timeout client, and a nil c disables
// caching.
func New(baseURL string, httpClient *http.Client, c cache.Cache) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = httpclient.NewWithTimeout(DefaultTimeout)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		cache:   c,
	}
}

// Normalize reduces a submitted name to the lookup key: trimmed and lowercased.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup fetches the summary for name. The name is normalized before the
// request. Cache failures degrade to a fresh upstream lookup, never to an error.
func (c *Client) Lookup(ctx context.Context, name string) (*Creature, error) {
	key := Normalize(name)

	if cached := c.fromCache(ctx, key); cached != nil {
		lookupsTotal.WithLabelValues("cache_hit").Inc()
		return cached, nil
	}

	reqURL := fmt.Sprintf("%s/pokemon/%s", c.baseURL, url.PathEscape(key))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		lookupsTotal.WithLabelValues(string(core.ErrorKindNetwork)).Inc()
		return nil, core.NewNetworkError(fmt.Sprintf("Error de red consultando PokeAPI: %v", err), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		lookupsTotal.WithLabelValues(string(core.ErrorKindNotFound)).Inc()
		return nil, core.NewNotFoundError(fmt.Sprintf("No se encontró el Pokémon '%s' (HTTP %d).", key, resp.StatusCode))
	}

	limited := io.LimitReader(resp.Body, maxBodySize+1)
	raw, err := io.ReadAll(limited)
	if err != nil {
		return nil, core.NewNetworkError(fmt.Sprintf("Error de red consultando PokeAPI: %v", err), err)
	}
	if len(raw) > maxBodySize {
		return nil, fmt.Errorf("response body too large (exceeds %d bytes)", maxBodySize)
	}

	creature := parseCreature(key, raw)
	c.toCache(ctx, key, creature)
	lookupsTotal.WithLabelValues("success").Inc()
	return creature, nil
}

func (c *Client) fromCache(ctx context.Context, key string) *Creature {
	if c.cache == nil {
		return nil
	}
	raw, err := c.cache.Get(ctx, key)
	if err != nil {
		slog.Warn("creature cache read failed", "key", key, "error", err)
		return nil
	}
	if raw == nil {
		return nil
	}
	var creature Creature
	if err := json.Unmarshal(raw, &creature); err != nil {
		slog.Warn("creature cache entry corrupt", "key", key, "error", err)
		return nil
	}
	return &creature
}

func (c *Client) toCache(ctx context.Context, key string, creature *Creature) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(creature)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, raw); err != nil {
		slog.Warn("creature cache write failed", "key", key, "error", err)
	}
}

// parseCreature extracts the rendered summary from a raw PokeAPI response.
func parseCreature(key string, raw []byte) *Creature {
	creature := &Creature{Name: key}
	if name := gjson.GetBytes(raw, "name"); name.Exists() {
		creature.Name = name.String()
	}

	for _, t := range gjson.GetBytes(raw, "types.#.type.name").Array() {
		creature.Types = append(creature.Types, t.String())
	}

	moves := gjson.GetBytes(raw, "moves.#.move.name").Array()
	if len(moves) > MaxMoves {
		moves = moves[:MaxMoves]
	}
	for _, m := range moves {
		creature.Moves = append(creature.Moves, m.String())
	}

	creature.Sprites = Sprites{
		FrontDefault: spriteURL(raw, "front_default"),
		FrontShiny:   spriteURL(raw, "front_shiny"),
		BackDefault:  spriteURL(raw, "back_default"),
		BackShiny:    spriteURL(raw, "back_shiny"),
	}
	return creature
}

func spriteURL(raw []byte, slot string) *string {
	v := gjson.GetBytes(raw, "sprites."+slot)
	if !v.Exists() || v.Type == gjson.Null {
		return nil
	}
	s := v.String()
	return &s
}
