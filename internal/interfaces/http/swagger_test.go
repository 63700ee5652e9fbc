package http_test

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	httpapi "github.com/jhoicas/retail-suite/internal/interfaces/http"
)

func TestSwaggerUISinDocumentoNoMontaNada(t *testing.T) {
	// sin documento el servicio debe arrancar igual, nunca entrar en pánico
	handler := httpapi.SwaggerUI(filepath.Join(t.TempDir(), "no-existe.json"), "Test")
	assert.Nil(t, handler)
}

func TestSwaggerUIConDocumentoSirveLaDocumentacion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swagger.json")
	spec := `{"swagger":"2.0","info":{"title":"Test","version":"1.0"},"paths":{}}`
	require.NoError(t, os.WriteFile(path, []byte(spec), 0o644))

	handler := httpapi.SwaggerUI(path, "Test")
	require.NotNil(t, handler)

	app := fiber.New()
	app.Use(handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/docs", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestSwaggerUIDocumentosDelRepoExisten(t *testing.T) {
	// los dos mains montan estos archivos con rutas relativas al raíz del módulo
	root := filepath.Join("..", "..", "..")
	for _, name := range []string{"inventory-swagger.json", "sales-swagger.json"} {
		_, err := os.Stat(filepath.Join(root, "docs", name))
		assert.NoError(t, err, "docs/%s debe existir", name)
	}
}
