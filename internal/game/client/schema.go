package client

import (
	"github.com/invopop/jsonschema"

	"github.com/mage-knight-digital/MageKnight-sub005/internal/game/validactions"
)

// Schema describes ClientGameState for UI code generators.
func Schema() *jsonschema.Schema {
	return reflect(new(ClientGameState),
		"Mage Knight Client State",
		"Game state as seen by one player. Other hands and all decks are reduced to counts.")
}

// ValidActionsSchema describes the valid-actions menu.
func ValidActionsSchema() *jsonschema.Schema {
	return reflect(new(validactions.ValidActions),
		"Mage Knight Valid Actions",
		"Actions the player may submit right now, discriminated by mode.")
}

func reflect(v any, title, description string) *jsonschema.Schema {
	reflector := jsonschema.Reflector{
		RequiredFromJSONSchemaTags: true,
	}
	schema := reflector.Reflect(v)
	schema.Title = title
	schema.Description = description
	return schema
}
