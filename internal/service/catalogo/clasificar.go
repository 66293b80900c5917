package catalogo

import (
	"strings"

	"embotelladora-backend/internal/constants"
	"embotelladora-backend/internal/storage"
)

// ClasificarTipoParo deriva la categoría de un tipo de paro a partir de su
// nombre. Se usa una sola vez, al dar de alta el tipo en el catálogo; las
// consultas posteriores leen la categoría guardada y nunca vuelven a
// inferir sobre texto libre.
func ClasificarTipoParo(nombre string) string {
	n := strings.ToLower(strings.TrimSpace(nombre))

	for _, palabra := range constants.PalabrasMantenimiento {
		if strings.Contains(n, palabra) {
			return storage.CategoriaMantenimiento
		}
	}

	for _, palabra := range constants.PalabrasCalidad {
		if strings.Contains(n, palabra) {
			return storage.CategoriaCalidad
		}
	}

	return storage.CategoriaOperacion
}

// CategoriaValida acepta sólo las tres categorías del catálogo.
func CategoriaValida(categoria string) bool {
	switch categoria {
	case storage.CategoriaMantenimiento, storage.CategoriaCalidad, storage.CategoriaOperacion:
		return true
	}
	return false
}
