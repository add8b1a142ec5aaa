package command

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type autocompletingCommand struct {
	Command
}

func (a *autocompletingCommand) Autocomplete(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"choices": []string{"1h", "1d"}})
}

func newTestRouter(registry *Registry) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	RegisterRoutes(engine.Group("/api"), registry)
	return engine
}

func TestRegistrySchemas(t *testing.T) {
	registry := NewRegistry()
	registry.Register(
		New(Schema{Name: "block", Type: TypeChatInput}, func(c *gin.Context) {}),
		New(Schema{Name: "reply", Type: TypeMessage}, func(c *gin.Context) {}),
	)

	schemas := registry.Schemas()
	require.Len(t, schemas, 2)
	assert.Equal(t, "block", schemas[0].Name)
	assert.Equal(t, TypeMessage, schemas[1].Type)
}

func TestRegistryListEndpoint(t *testing.T) {
	registry := NewRegistry()
	registry.Register(New(Schema{Name: "block", Type: TypeChatInput}, func(c *gin.Context) {}))
	engine := newTestRouter(registry)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/commands", nil)
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"block"`)
}

func TestRegistryAutocomplete(t *testing.T) {
	registry := NewRegistry()
	registry.Register(&autocompletingCommand{
		Command: New(Schema{Name: "block", Type: TypeChatInput}, func(c *gin.Context) {}),
	})
	registry.Register(New(Schema{Name: "reply", Type: TypeMessage}, func(c *gin.Context) {}))
	engine := newTestRouter(registry)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/commands/block/autocomplete", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1h")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/commands/reply/autocomplete", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/commands/missing/autocomplete", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
