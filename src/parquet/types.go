package parquet

import (
	"github.com/kyohenrique/pokedex/src/pokeapi"
)

// Pokemon is one export row. A Pokémon with two types yields two rows.
type Pokemon struct {
	Id             int32  `parquet:"name=id, type=INT32"`
	Name           string `parquet:"name=name, type=BYTE_ARRAY, convertedtype=UTF8"`
	Weight         int32  `parquet:"name=weight, type=INT32"`
	Height         int32  `parquet:"name=height, type=INT32"`
	Type           string `parquet:"name=type, type=BYTE_ARRAY, convertedtype=UTF8"`
	Slot           int32  `parquet:"name=slot, type=INT32"`
	Generation     int32  `parquet:"name=generation, type=INT32"`
	Hp             int32  `parquet:"name=hp, type=INT32"`
	Attack         int32  `parquet:"name=attack, type=INT32"`
	Defense        int32  `parquet:"name=defense, type=INT32"`
	SpecialAttack  int32  `parquet:"name=special_attack, type=INT32"`
	SpecialDefense int32  `parquet:"name=special_defense, type=INT32"`
	Speed          int32  `parquet:"name=speed, type=INT32"`
	Artwork        string `parquet:"name=artwork, type=BYTE_ARRAY, convertedtype=UTF8"`
	Cry            string `parquet:"name=cry, type=BYTE_ARRAY, convertedtype=UTF8"`
}

// ToPokemon flattens a detail response into one row per type. A response
// without types still yields a single row with an empty type.
func ToPokemon(response *pokeapi.PokemonResponse, generation int32) []Pokemon {
	base := Pokemon{
		Id:         response.Id,
		Name:       response.Name,
		Weight:     response.Weight,
		Height:     response.Height,
		Generation: generation,
		Artwork:    response.Artwork(),
		Cry:        response.Cries.Latest,
	}
	for _, stat := range response.Stats {
		switch stat.Stat.Name {
		case "hp":
			base.Hp = stat.BaseStat
		case "attack":
			base.Attack = stat.BaseStat
		case "defense":
			base.Defense = stat.BaseStat
		case "special-attack":
			base.SpecialAttack = stat.BaseStat
		case "special-defense":
			base.SpecialDefense = stat.BaseStat
		case "speed":
			base.Speed = stat.BaseStat
		}
	}
	if len(response.Types) == 0 {
		return []Pokemon{base}
	}
	rows := make([]Pokemon, 0, len(response.Types))
	for _, t := range response.Types {
		row := base
		row.Type = t.Type.Name
		row.Slot = t.Slot
		rows = append(rows, row)
	}
	return rows
}
