package pokeapi

// Creature is the summary the viewer renders for one lookup.
type Creature struct {
	Name    string   `json:"name"`
	Types   []string `json:"types"`
	Moves   []string `json:"moves"`
	Sprites Sprites  `json:"sprites"`
}

// Sprites holds the four rendered sprite slots. PokeAPI returns null for
// slots a creature does not have, so each URL is a pointer.
type Sprites struct {
	FrontDefault *string `json:"front_default"`
	FrontShiny   *string `json:"front_shiny"`
	BackDefault  *string `json:"back_default"`
	BackShiny    *string `json:"back_shiny"`
}
