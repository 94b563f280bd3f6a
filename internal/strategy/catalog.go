package strategy

import (
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/quantdesk/quantdesk/internal/core"
)

// Catalog is the registry of available strategies.
type Catalog struct {
	mu     sync.RWMutex
	defs   map[string]Definition
	logger *zap.Logger
}

// NewCatalog creates an empty strategy catalog.
func NewCatalog(logger ...*zap.Logger) *Catalog {
	var l *zap.Logger
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0]
	} else {
		l = zap.NewNop()
	}
	return &Catalog{
		defs:   make(map[string]Definition),
		logger: l,
	}
}

// NewDefaultCatalog creates a catalog with all built-in strategies registered.
func NewDefaultCatalog(logger ...*zap.Logger) *Catalog {
	c := NewCatalog(logger...)
	c.Register(crossoverDefinition())
	c.Register(rsiDefinition())
	c.Register(macdDefinition())
	c.Register(bollingerDefinition())
	return c
}

// Register adds a strategy definition to the catalog.
func (c *Catalog) Register(def Definition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.defs[def.Name] = def
	c.logger.Debug("strategy registered", zap.String("strategy", def.Name))
}

// Get retrieves a definition by name.
func (c *Catalog) Get(name string) (Definition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.defs[name]
	return def, ok
}

// Definitions returns all registered definitions sorted by name.
func (c *Catalog) Definitions() []Definition {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Definition, 0, len(c.defs))
	for _, def := range c.defs {
		result = append(result, def)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// Signals resolves a strategy by name, binds the parameters, and evaluates
// the candle sequence. Unregistered names fail with UnknownStrategy.
func (c *Catalog) Signals(name string, params ParameterSet, candles []core.Candle) ([]core.Signal, error) {
	def, ok := c.Get(name)
	if !ok {
		return nil, core.ErrUnknownStrategy
	}

	strat, err := def.Build(params)
	if err != nil {
		return nil, err
	}

	return strat.Signals(candles)
}
