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
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"dirpx.dev/jfx/apis"
	"dirpx.dev/jfx/config"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Verify every type resolves with the compatibility vocabulary off and on",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base := a.cfg.resolution()
			modes := []apis.Config{
				config.NewConfig(
					config.WithNativeTagKey(base.NativeTagKey),
					config.WithCompatibilityTagKey(base.CompatibilityTagKey),
				),
				config.NewConfig(
					config.WithCompatibilityVocabulary(true),
					config.WithNativeTagKey(base.NativeTagKey),
					config.WithCompatibilityTagKey(base.CompatibilityTagKey),
				),
			}

			reports, failed, err := a.resolveFiles(cmd, args, modes)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			ok := color.New(color.FgGreen)
			bad := color.New(color.FgRed, color.Bold)
			for _, r := range reports {
				if r.Error != "" {
					bad.Fprint(out, "CONFLICT")
					fmt.Fprintf(out, " %s (compat=%t): %s\n", r.Type, r.Compat, r.Error)
					continue
				}
				ok.Fprint(out, "ok      ")
				fmt.Fprintf(out, " %s (compat=%t)", r.Type, r.Compat)
				if r.Extension != "" {
					fmt.Fprintf(out, " extension=%s", r.Extension)
				}
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "%d checks, %d conflicts\n", len(reports), failed)

			if failed > 0 {
				return errConflicts
			}
			return nil
		},
	}
}
