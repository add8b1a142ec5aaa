package command

import "github.com/gin-gonic/gin"

type Type string

const (
	TypeChatInput Type = "chat_input"
	TypeMessage   Type = "message"
)

type Option struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Type         string `json:"type"`
	Required     bool   `json:"required"`
	Autocomplete bool   `json:"autocomplete"`
}

type Schema struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Type        Type     `json:"type"`
	Options     []Option `json:"options,omitempty"`
}

// Command is the capability contract every front-end command satisfies: a
// declarative schema plus an entry point. Commands that suggest input values
// implement Autocompleter as well.
type Command interface {
	Schema() Schema
	Handle(c *gin.Context)
}

type Autocompleter interface {
	Autocomplete(c *gin.Context)
}

type static struct {
	schema Schema
	handle gin.HandlerFunc
}

// New builds a Command from a schema and a handler for front-ends that do
// not need their own type.
func New(schema Schema, handle gin.HandlerFunc) Command {
	return &static{schema: schema, handle: handle}
}

func (s *static) Schema() Schema {
	return s.schema
}

func (s *static) Handle(c *gin.Context) {
	s.handle(c)
}
