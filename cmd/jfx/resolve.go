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
	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dirpx.dev/jfx/apis"
	"dirpx.dev/jfx/builder"
	"dirpx.dev/jfx/internal/report"
	"dirpx.dev/jfx/internal/snapshot"
)

func newResolveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve FILE...",
		Short: "Resolve member names and the extension member of every type",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reports, failed, err := a.resolveFiles(cmd, args, []apis.Config{a.cfg.resolution()})
			if err != nil {
				return err
			}
			if err := report.Encode(cmd.OutOrStdout(), a.cfg.Format, reports); err != nil {
				return err
			}
			if failed > 0 {
				return errConflicts
			}
			return nil
		},
	}
}

// resolveFiles assembles every type of every snapshot under each mode.
// It returns one report per (type, mode) and the number of failures.
func (a *app) resolveFiles(cmd *cobra.Command, paths []string, modes []apis.Config) ([]report.Report, int, error) {
	b := builder.New()
	var (
		reports []report.Report
		failed  int
	)
	for _, p := range paths {
		f, err := snapshot.Load(p)
		if err != nil {
			return nil, 0, err
		}
		a.log.Debug("snapshot loaded", zap.String("path", p), zap.Int("types", len(f.Types)))

		for _, t := range f.Types {
			sets, err := t.Sets()
			if err != nil {
				return nil, 0, err
			}
			if a.cfg.Dump {
				spew.Fdump(cmd.ErrOrStderr(), sets)
			}
			for _, mode := range modes {
				md, err := b.Assemble(t.Name, sets, mode)
				if err != nil {
					failed++
					a.log.Debug("type rejected", zap.String("type", t.Name), zap.Bool("compat", mode.UseCompatibilityVocabulary), zap.Error(err))
					reports = append(reports, report.FromError(t.Name, mode, err))
					continue
				}
				reports = append(reports, report.FromMetadata(md))
			}
		}
	}
	return reports, failed, nil
}
