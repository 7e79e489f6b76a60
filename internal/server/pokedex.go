package server

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"fetchkit/internal/core"
	"fetchkit/internal/pokeapi"
)

// PokedexHandler serves the creature lookup form.
type PokedexHandler struct {
	client *pokeapi.Client
}

// NewPokedex creates the handler behind the pokedex app.
func NewPokedex(client *pokeapi.Client) *PokedexHandler {
	return &PokedexHandler{client: client}
}

// Register implements App
func (h *PokedexHandler) Register(e *echo.Echo) {
	e.GET("/", h.Index)
	e.POST("/", h.Lookup)
}

// pokedexPage is the template payload for the lookup page.
type pokedexPage struct {
	Name     string
	Error    string
	Creature *pokeapi.Creature
}

// Index renders the empty lookup form.
func (h *PokedexHandler) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "pokedex.html", pokedexPage{})
}

// Lookup handles a submitted creature name. An empty submission never reaches
// the network; it re-renders the form with a prompt.
func (h *PokedexHandler) Lookup(c echo.Context) error {
	name := pokeapi.Normalize(c.FormValue("pokemon"))
	page := pokedexPage{Name: name}
	if name == "" {
		page.Error = "Ingresa un nombre de Pokémon."
		return c.Render(http.StatusOK, "pokedex.html", page)
	}

	creature, err := h.client.Lookup(c.Request().Context(), name)
	if err != nil {
		slog.Warn("creature lookup failed",
			"request_id", requestID(c), "name", name, "error", err)
		page.Error = core.DisplayMessage(err)
		return c.Render(http.StatusOK, "pokedex.html", page)
	}

	page.Creature = creature
	return c.Render(http.StatusOK, "pokedex.html", page)
}
