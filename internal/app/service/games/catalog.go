package games

import "github.com/juegotea/backend/pkg/types"

// catalog is the static game table. Games ship with the frontend; the backend
// only needs ids and tiers to gate access.
var catalog = []*types.Game{
	{ID: "lectura-basica", Title: "Lectura Básica", Category: "reading", Description: "Primeras palabras y sílabas", Tier: types.GameTierFree},
	{ID: "colores-primarios", Title: "Colores Primarios", Category: "colors", Description: "Reconocer los colores primarios", Tier: types.GameTierFree},
	{ID: "animales-granja", Title: "Animales de la Granja", Category: "animals", Description: "Sonidos y nombres de animales", Tier: types.GameTierFree},
	{ID: "lectura-avanzada", Title: "Lectura Avanzada", Category: "reading", Description: "Frases completas y comprensión", Tier: types.GameTierPremium},
	{ID: "mezcla-colores", Title: "Mezcla de Colores", Category: "colors", Description: "Combinar colores secundarios", Tier: types.GameTierPremium},
	{ID: "animales-selva", Title: "Animales de la Selva", Category: "animals", Description: "Hábitats y animales salvajes", Tier: types.GameTierPremium},
	{ID: "memoria-visual", Title: "Memoria Visual", Category: "memory", Description: "Parejas de tarjetas ilustradas", Tier: types.GameTierPremium},
	{ID: "secuencias", Title: "Secuencias", Category: "logic", Description: "Ordenar pasos de rutinas diarias", Tier: types.GameTierPremium},
}

// GameByID returns the catalog entry, or nil for unknown ids.
func GameByID(id string) *types.Game {
	for _, g := range catalog {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func Catalog() []*types.Game {
	return catalog
}
