// Package config provides configuration types and defaults for the
// hxcontent command.
package config

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pthm/hxcontent"
	"github.com/pthm/hxcontent/lib/cloneid"
)

// Config holds all configuration options for hxcontent.
type Config struct {
	CloneAttr   string `mapstructure:"clone_attr"`   // attribute stamped by normalize
	IDPrefix    string `mapstructure:"id_prefix"`    // prefix of stamped clone ids
	ContextAttr string `mapstructure:"context_attr"` // attribute holding sealed contexts
	Key         string `mapstructure:"key"`          // snapshot signing/encryption key
	Sensitive   bool   `mapstructure:"sensitive"`    // encrypt snapshots instead of signing
	Debug       bool   `mapstructure:"debug"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		CloneAttr:   hxcontent.DefaultCloneAttr,
		IDPrefix:    cloneid.DefaultPrefix,
		ContextAttr: hxcontent.DefaultContextAttr,
	}
}

// Validate checks that attribute names are usable.
func (c Config) Validate() error {
	var errs []error
	if err := validAttr("clone_attr", c.CloneAttr); err != nil {
		errs = append(errs, err)
	}
	if err := validAttr("context_attr", c.ContextAttr); err != nil {
		errs = append(errs, err)
	}
	if c.CloneAttr != "" && c.CloneAttr == c.ContextAttr {
		errs = append(errs, fmt.Errorf("clone_attr and context_attr must differ (both %q)", c.CloneAttr))
	}
	return errors.Join(errs...)
}

func validAttr(field, name string) error {
	if name == "" {
		return fmt.Errorf("%s must not be empty", field)
	}
	if strings.ContainsAny(name, " \t\n\"'>/=") {
		return fmt.Errorf("%s %q is not a valid attribute name", field, name)
	}
	return nil
}

// NewRegistry builds a registry configured from c.
func (c Config) NewRegistry(logger *zap.Logger) *hxcontent.Registry {
	opts := []hxcontent.Option{
		hxcontent.WithLogger(logger),
		hxcontent.WithCloneAttr(c.CloneAttr),
		hxcontent.WithContextAttr(c.ContextAttr),
	}
	// A custom prefix needs its own counter; the default one stays shared.
	if c.IDPrefix != "" && c.IDPrefix != cloneid.DefaultPrefix {
		opts = append(opts, hxcontent.WithCounter(cloneid.New(c.IDPrefix)))
	}
	return hxcontent.NewRegistry([]byte(c.Key), opts...)
}
