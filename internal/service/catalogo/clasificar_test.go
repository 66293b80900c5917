package catalogo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"embotelladora-backend/internal/storage"
)

func TestClasificarTipoParo(t *testing.T) {
	tests := []struct {
		nombre string
		want   string
	}{
		{"Mantenimiento preventivo", storage.CategoriaMantenimiento},
		{"Falla mecánica en llenadora", storage.CategoriaMantenimiento},
		{"AVERÍA ELÉCTRICA", storage.CategoriaMantenimiento},
		{"Lubricación de cadenas", storage.CategoriaMantenimiento},
		{"Rechazo de calidad", storage.CategoriaCalidad},
		{"Desviación de torque en tapas", storage.CategoriaCalidad},
		{"Contaminación en línea", storage.CategoriaCalidad},
		{"Merma de jarabe", storage.CategoriaCalidad},
		{"Cambio de formato", storage.CategoriaOperacion},
		{"Falta de personal", storage.CategoriaOperacion},
		{"Espera de montacargas", storage.CategoriaOperacion},
		{"", storage.CategoriaOperacion},
		{"   ", storage.CategoriaOperacion},
	}

	for _, tt := range tests {
		t.Run(tt.nombre, func(t *testing.T) {
			assert.Equal(t, tt.want, ClasificarTipoParo(tt.nombre))
		})
	}
}

func TestCategoriaValida(t *testing.T) {
	assert.True(t, CategoriaValida(storage.CategoriaMantenimiento))
	assert.True(t, CategoriaValida(storage.CategoriaCalidad))
	assert.True(t, CategoriaValida(storage.CategoriaOperacion))

	assert.False(t, CategoriaValida(""))
	assert.False(t, CategoriaValida("logistica"))
	assert.False(t, CategoriaValida("Mantenimiento"))
}
