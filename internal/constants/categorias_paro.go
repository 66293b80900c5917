package constants

// Palabras clave para clasificar un tipo de paro al darlo de alta en el
// catálogo. La comparación es por subcadena sobre el nombre normalizado a
// minúsculas; lo que no coincide con ninguna lista cae en operación.
var (
	PalabrasMantenimiento = []string{
		"mantenimiento",
		"mantto",
		"mecanic",
		"electric",
		"averia",
		"avería",
		"falla",
		"lubricacion",
		"lubricación",
	}

	PalabrasCalidad = []string{
		"calidad",
		"defecto",
		"rechazo",
		"inocuidad",
		"desviacion",
		"desviación",
		"contaminacion",
		"contaminación",
		"merma",
	}
)
