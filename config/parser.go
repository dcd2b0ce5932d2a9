package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config is implemented by the top level configuration of a binary.
// Its binders are configured in order after the configuration file
type Config interface {
	Use() string
	EnvPrefix() string
	Binders() []Binder
}

// Parser resolves every key from, in order of precedence, the command
// line, the environment and the configuration file
type Parser struct {
	Config Config

	cmd     *cobra.Command
	v       *viper.Viper
	binders []Binder
}

// Parse parses args and configures the binders. A parser can only
// be used once
func (p *Parser) Parse(args []string) error {
	flags := p.cmd.PersistentFlags()
	if flags.Parsed() {
		return ErrAlreadyParsed
	}

	if err := flags.Parse(args); err != nil {
		return ErrParseFlags{Cause: err}
	}

	for _, b := range p.binders {
		if err := b.Configure(p.v); err != nil {
			return err
		}
	}

	return nil
}

// Usage prints the flags accepted by the parser
func (p *Parser) Usage() error {
	return p.cmd.Usage()
}

// Generate registers the flags of config and returns a parser for it.
// Key store.bolt.path is read from flag --store.bolt.path or from
// <PREFIX>_STORE_BOLT_PATH
func Generate(config Config) (*Parser, error) {
	v := viper.New()
	v.SetEnvPrefix(config.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// the file is configured first so its values are visible to
	// every other binder
	binders := append([]Binder{&ConfigFile{}}, config.Binders()...)

	cmd := &cobra.Command{Use: config.Use()}
	for _, b := range binders {
		if err := b.Bind(v, cmd); err != nil {
			return nil, errors.Wrap(err, "failed to bind flags")
		}
	}

	if err := v.BindPFlags(cmd.PersistentFlags()); err != nil {
		return nil, errors.Wrap(err, "failed to bind flags to viper")
	}

	return &Parser{Config: config, cmd: cmd, v: v, binders: binders}, nil
}
