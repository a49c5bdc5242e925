package pokeapi

type NamedResource struct {
	Name string `json:"name"`
	Url  string `json:"url"`
}

type PokemonListResult struct {
	Count    int32           `json:"count"`
	Next     *string         `json:"next"`
	Previous *string         `json:"previous"`
	Results  []NamedResource `json:"results"`
}

// NextURL returns the cursor for the following page, or "" when the listing is exhausted.
func (r *PokemonListResult) NextURL() string {
	if r.Next == nil {
		return ""
	}
	return *r.Next
}

type PokemonTypeEntry struct {
	Name string `json:"name"`
}

type PokemonType struct {
	Slot int32            `json:"slot"`
	Type PokemonTypeEntry `json:"type"`
}

type PokemonStatEntry struct {
	Name string `json:"name"`
}

type PokemonStat struct {
	BaseStat int32            `json:"base_stat"`
	Stat     PokemonStatEntry `json:"stat"`
}

type PokemonArtwork struct {
	FrontDefault string `json:"front_default"`
}

type PokemonOtherSprites struct {
	OfficialArtwork PokemonArtwork `json:"official-artwork"`
}

type PokemonSprites struct {
	FrontDefault string              `json:"front_default"`
	Other        PokemonOtherSprites `json:"other"`
}

type PokemonCries struct {
	Latest string `json:"latest"`
	Legacy string `json:"legacy"`
}

type PokemonResponseSpecies struct {
	Name string `json:"name"`
	Url  string `json:"url"`
}

type PokemonResponse struct {
	Id      int32                  `json:"id"`
	Name    string                 `json:"name"`
	Weight  int32                  `json:"weight"`
	Height  int32                  `json:"height"`
	Sprites PokemonSprites         `json:"sprites"`
	Stats   []PokemonStat          `json:"stats"`
	Types   []PokemonType          `json:"types"`
	Cries   PokemonCries           `json:"cries"`
	Species PokemonResponseSpecies `json:"species"`
}

// TypeNames returns the type names in slot order.
func (p *PokemonResponse) TypeNames() []string {
	names := make([]string, 0, len(p.Types))
	for _, t := range p.Types {
		names = append(names, t.Type.Name)
	}
	return names
}

// Artwork prefers the official artwork and falls back to the default front sprite.
func (p *PokemonResponse) Artwork() string {
	if p.Sprites.Other.OfficialArtwork.FrontDefault != "" {
		return p.Sprites.Other.OfficialArtwork.FrontDefault
	}
	return p.Sprites.FrontDefault
}

type PokemonSpecies struct {
	Name       string        `json:"name"`
	Generation NamedResource `json:"generation"`
}

type PokemonGeneration struct {
	Id   int32  `json:"id"`
	Name string `json:"name"`
}
