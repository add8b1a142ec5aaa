package command

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Registry exposes the declarative schemas of all registered commands and
// routes autocomplete requests to the commands that support it.
type Registry struct {
	commands []Command
}

func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) Register(cmds ...Command) {
	r.commands = append(r.commands, cmds...)
}

func (r *Registry) Schemas() []Schema {
	schemas := make([]Schema, 0, len(r.commands))
	for _, cmd := range r.commands {
		schemas = append(schemas, cmd.Schema())
	}
	return schemas
}

func (r *Registry) find(name string) Command {
	for _, cmd := range r.commands {
		if cmd.Schema().Name == name {
			return cmd
		}
	}
	return nil
}

func (r *Registry) list(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"commands": r.Schemas()})
}

func (r *Registry) autocomplete(c *gin.Context) {
	name := c.Param("name")
	cmd := r.find(name)
	if cmd == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown command"})
		return
	}
	ac, ok := cmd.(Autocompleter)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "command has no autocomplete"})
		return
	}
	ac.Autocomplete(c)
}
