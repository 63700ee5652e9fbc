package http

import (
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
)

// SwaggerUI devuelve el middleware de documentación para filePath, o nil si el
// archivo no existe. El middleware de gofiber/contrib entra en pánico con un
// FilePath inexistente, así que el servicio solo lo monta cuando hay documento;
// sin él, arranca igual con /docs deshabilitado.
func SwaggerUI(filePath, title string) fiber.Handler {
	if _, err := os.Stat(filePath); err != nil {
		return nil
	}
	return swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: filePath,
		Path:     "docs",
		Title:    title,
	})
}
