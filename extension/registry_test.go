package extension

import (
	"testing"

	"github.com/jpl-au/glossd/internal/config"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

// testExtension is a minimal Extension implementation for testing.
type testExtension struct {
	name string
}

func (e testExtension) Name() string               { return e.name }
func (e testExtension) Commands() []*cobra.Command { return nil }
func (e testExtension) MCPTools() []MCPTool        { return nil }

func TestRegister_PanicOnDuplicate(t *testing.T) {
	name := "test-duplicate-panic"
	Register(testExtension{name: name})

	assert.PanicsWithValue(t, "extension already registered: "+name, func() {
		Register(testExtension{name: name})
	})
}

func TestRegister_Order(t *testing.T) {
	Register(testExtension{name: "test-order-a"})
	Register(testExtension{name: "test-order-b"})

	names := Names()
	ia, ib := -1, -1
	for i, n := range names {
		switch n {
		case "test-order-a":
			ia = i
		case "test-order-b":
			ib = i
		}
	}
	assert.GreaterOrEqual(t, ia, 0)
	assert.Equal(t, ia+1, ib)
	assert.Len(t, All(), len(names))

	assert.Equal(t, "test-order-a", Get("test-order-a").Name())
	assert.Nil(t, Get("missing"))
}

func TestNewContext(t *testing.T) {
	cfg := &config.Config{}
	ctx := NewContext(nil, nil, cfg)
	assert.Nil(t, ctx.Service())
	assert.Nil(t, ctx.DB())
	assert.Same(t, cfg, ctx.Config())
}
