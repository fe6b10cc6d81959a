package httpapi

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/graph-gophers/graphql-go"
	"go.uber.org/zap"
)

//go:embed schema.graphql
var schemaSDL string

// NewSchema parses the embedded schema and binds it to r. It panics if the
// resolver does not satisfy the schema.
func NewSchema(r *Resolver) *graphql.Schema {
	return graphql.MustParseSchema(schemaSDL, r, graphql.Logger(panicLogger{log: r.log}))
}

// panicLogger routes resolver panics recovered by graphql-go to zap.
type panicLogger struct {
	log *zap.Logger
}

func (l panicLogger) LogPanic(_ context.Context, value interface{}) {
	l.log.Error("graphql resolver panic", zap.String("panic", fmt.Sprint(value)), zap.Stack("stack"))
}
