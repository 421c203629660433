/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"dirpx.dev/jfx/apis"
	"dirpx.dev/jfx/config"
	"dirpx.dev/jfx/internal/report"
)

// errConflicts is returned when at least one type failed to resolve.
var errConflicts = errors.New("jfx: unresolvable types found")

// settings is the merged view of flags, JFX_* environment variables and the
// optional config file.
type settings struct {
	Compat    bool   `mapstructure:"compat"`
	NativeTag string `mapstructure:"native-tag"`
	CompatTag string `mapstructure:"compat-tag"`
	Format    string `mapstructure:"format"`
	Verbose   bool   `mapstructure:"verbose"`
	Dump      bool   `mapstructure:"dump"`
}

// resolution returns the apis.Config the settings select.
func (s settings) resolution() apis.Config {
	return config.NewConfig(
		config.WithCompatibilityVocabulary(s.Compat),
		config.WithNativeTagKey(s.NativeTag),
		config.WithCompatibilityTagKey(s.CompatTag),
	)
}

// app carries per-invocation state shared by subcommands.
type app struct {
	v   *viper.Viper
	cfg settings
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}

	root := &cobra.Command{
		Use:   "jfx",
		Short: "Inspect JSON member metadata resolution",
		Long: `jfx resolves serialized member names and the extension data member of
types described in snapshot files (yaml, toml or json), under the Native and
Compatibility tag vocabularies.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "config file (yaml or toml)")
	pf.Bool("compat", config.DefaultUseCompatibilityVocabulary, "enable the compatibility vocabulary")
	pf.String("native-tag", config.DefaultNativeTagKey, "struct tag key of the native vocabulary")
	pf.String("compat-tag", config.DefaultCompatibilityTagKey, "struct tag key of the compatibility vocabulary")
	pf.StringP("format", "f", "json", "output format: "+strings.Join(report.Formats, "|"))
	pf.BoolP("verbose", "v", false, "debug logging")
	pf.Bool("dump", false, "dump parsed member sets to stderr")

	root.AddCommand(newResolveCmd(a))
	root.AddCommand(newCheckCmd(a))
	root.AddCommand(newVersionCmd())
	return root
}

// load merges configuration sources and builds the logger.
func (a *app) load(cmd *cobra.Command) error {
	a.v.SetEnvPrefix("JFX")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if path := a.v.GetString("config"); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("jfx: read config: %w", err)
		}
	}
	if err := a.v.Unmarshal(&a.cfg); err != nil {
		return fmt.Errorf("jfx: decode config: %w", err)
	}

	zc := zap.NewDevelopmentConfig()
	zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if a.cfg.Verbose {
		zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	log, err := zc.Build()
	if err != nil {
		// Fall back to nop logger
		log = zap.NewNop()
	}
	a.log = log
	return nil
}
