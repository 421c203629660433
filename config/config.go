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

package config

import (
	"dirpx.dev/jfx/apis"
)

const (
	// DefaultUseCompatibilityVocabulary represents the default for UseCompatibilityVocabulary.
	// Compatibility tags are inert unless explicitly enabled.
	DefaultUseCompatibilityVocabulary = false
	// DefaultNativeTagKey represents the default for NativeTagKey.
	DefaultNativeTagKey = "json"
	// DefaultCompatibilityTagKey represents the default for CompatibilityTagKey.
	DefaultCompatibilityTagKey = "mapstructure"
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure tag keys are usable.
	return Normalize(cfg)
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		UseCompatibilityVocabulary: DefaultUseCompatibilityVocabulary,
		NativeTagKey:               DefaultNativeTagKey,
		CompatibilityTagKey:        DefaultCompatibilityTagKey,
	}
}

// Normalize fills empty tag keys of cfg with their defaults.
func Normalize(cfg apis.Config) apis.Config {
	if cfg.NativeTagKey == "" {
		cfg.NativeTagKey = DefaultNativeTagKey
	}
	if cfg.CompatibilityTagKey == "" {
		cfg.CompatibilityTagKey = DefaultCompatibilityTagKey
	}
	return cfg
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithCompatibilityVocabulary sets the UseCompatibilityVocabulary option.
func WithCompatibilityVocabulary(use bool) Option {
	return func(c *apis.Config) {
		c.UseCompatibilityVocabulary = use
	}
}

// WithNativeTagKey sets the NativeTagKey option.
// An empty key resets to the default.
func WithNativeTagKey(key string) Option {
	return func(c *apis.Config) {
		if key == "" {
			c.NativeTagKey = DefaultNativeTagKey
			return
		}
		c.NativeTagKey = key
	}
}

// WithCompatibilityTagKey sets the CompatibilityTagKey option.
// An empty key resets to the default.
func WithCompatibilityTagKey(key string) Option {
	return func(c *apis.Config) {
		if key == "" {
			c.CompatibilityTagKey = DefaultCompatibilityTagKey
			return
		}
		c.CompatibilityTagKey = key
	}
}
