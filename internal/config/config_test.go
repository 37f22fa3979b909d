package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/pthm/hxcontent/lib/cloneid"
)

func TestDefaultsValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "clone-id", cfg.CloneAttr)
	assert.Equal(t, "content-", cfg.IDPrefix)
	assert.Equal(t, "data-hx-context", cfg.ContextAttr)
	assert.False(t, cfg.Sensitive)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"empty clone attr", func(c *Config) { c.CloneAttr = "" }, "clone_attr must not be empty"},
		{"bad context attr", func(c *Config) { c.ContextAttr = "data ctx" }, "not a valid attribute name"},
		{"same attrs", func(c *Config) { c.ContextAttr = c.CloneAttr }, "must differ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewRegistryUsesConfig(t *testing.T) {
	cfg := Defaults()
	cfg.CloneAttr = "data-clone"
	cfg.IDPrefix = "row-"

	reg := cfg.NewRegistry(zap.NewNop())

	div := &html.Node{Type: html.ElementNode, Data: "div"}
	reg.Normalize(div)

	var buf strings.Builder
	require.NoError(t, html.Render(&buf, div))
	assert.Equal(t, `<div data-clone="row-0"></div>`, buf.String())
}

func TestNewRegistryDefaultPrefixSharesCounter(t *testing.T) {
	a := Defaults().NewRegistry(zap.NewNop())
	b := Defaults().NewRegistry(zap.NewNop())
	assert.Same(t, cloneid.Default(), a.Counter())
	assert.Same(t, a.Counter(), b.Counter())

	custom := Defaults()
	custom.IDPrefix = "row-"
	assert.NotSame(t, cloneid.Default(), custom.NewRegistry(zap.NewNop()).Counter())
}
