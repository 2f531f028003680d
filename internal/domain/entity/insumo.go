package entity

import "time"

// Unidades de compra admitidas para un insumo. kg y l son unidades de entrada:
// internamente todo se guarda en la unidad mínima (g, ml o unidad).
const (
	UnitKg   = "kg"
	UnitL    = "l"
	UnitG    = "g"
	UnitMl   = "ml"
	UnitUnit = "unit"
)

// Insumo es una materia prima del catálogo (harina, leche, cajas...).
// El costo vigente no se guarda aquí: se deriva de sus lotes.
type Insumo struct {
	ID        string
	UserID    string
	Name      string
	UnitType  string // kg | l | g | ml | unit
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidUnitType indica si el tipo de unidad es uno de los admitidos.
func ValidUnitType(u string) bool {
	switch u {
	case UnitKg, UnitL, UnitG, UnitMl, UnitUnit:
		return true
	}
	return false
}
