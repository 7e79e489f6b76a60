//go:build e2e

package e2e

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPokedexLookup(t *testing.T) {
	t.Run("serves the search form", func(t *testing.T) {
		resp, err := http.Get(pokedexURL + "/")
		require.NoError(t, err)
		defer closeBody(resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := pageText(t, resp)
		assert.Contains(t, body, `name="pokemon"`)
	})

	t.Run("renders creature summary", func(t *testing.T) {
		pokeAPI.Reset()

		resp := postForm(t, pokedexURL, "pokemon", "  PiKaChu  ")
		defer closeBody(resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := pageText(t, resp)

		assert.Contains(t, body, "pikachu")
		assert.Contains(t, body, "electric")
		assert.Contains(t, body, "mega-punch")
		assert.Contains(t, body, "thunder-shock")
		assert.Contains(t, body, "quick-attack")
		assert.Contains(t, body, "https://sprites.test/pikachu/front.png")
		assert.Contains(t, body, "https://sprites.test/pikachu/front-shiny.png")
		assert.Contains(t, body, "https://sprites.test/pikachu/back.png")
		assert.NotContains(t, body, "back_shiny")

		// Input was trimmed and lowercased before reaching the upstream
		reqs := pokeAPI.Requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, "/pokemon/pikachu", reqs[0].Path)
	})

	t.Run("renders multiple types", func(t *testing.T) {
		resp := postForm(t, pokedexURL, "pokemon", "gyarados")
		defer closeBody(resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := pageText(t, resp)

		assert.Contains(t, body, "water")
		assert.Contains(t, body, "flying")
		assert.Contains(t, body, "https://sprites.test/gyarados/front.png")
		assert.NotContains(t, body, "front-shiny")
	})

	t.Run("empty input never reaches the upstream", func(t *testing.T) {
		pokeAPI.Reset()

		for _, input := range []string{"", "   "} {
			resp := postForm(t, pokedexURL, "pokemon", input)
			body := pageText(t, resp)
			closeBody(resp)

			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Contains(t, body, "Ingresa un nombre de Pokémon.")
		}
		assert.Equal(t, 0, pokeAPI.RequestCount())
	})

	t.Run("unknown creature", func(t *testing.T) {
		resp := postForm(t, pokedexURL, "pokemon", "missingno")
		defer closeBody(resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := pageText(t, resp)
		assert.Contains(t, body, "No se encontró el Pokémon 'missingno' (HTTP 404).")
	})

	t.Run("upstream failure surfaces the status", func(t *testing.T) {
		pokeAPI.FailNextWithStatus(http.StatusInternalServerError)

		resp := postForm(t, pokedexURL, "pokemon", "pikachu")
		defer closeBody(resp)

		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := pageText(t, resp)
		assert.Contains(t, body, "No se encontró el Pokémon 'pikachu' (HTTP 500).")
	})
}
