package domain

import "github.com/louisbranch/servicerecord/internal/core/dice"

var names = [...]string{
	"Zara Xylo", "Orion Pax", "Nova Kin", "Elexis Vortex",
	"Jaxon Starfire", "Lyra Nebulae", "Nyx Solaris", "Ryker Quantum",
	"Elara Galaxy", "Caelum Void", "Vega Stardust", "Draco Cosmos",
	"Aurora Hyperdrive", "Cassius Meteor", "Astra Comet", "Kaius Eclipse",
	"Seren Andromeda", "Altair Nebular", "Selene Astraeus", "Maximus Ion",
}

// RandomName picks one of the fixed character names.
func RandomName(r dice.Roller) string {
	return names[r.Pick(len(names))]
}
