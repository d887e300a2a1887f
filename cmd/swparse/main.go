// Copyright 2022 gorse Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gorse-io/swparse"
)

var command = &cobra.Command{
	Use:  "swparse header-dir",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fakeGameServer, _ := cmd.PersistentFlags().GetBool("fake-gameserver")
		debug, _ := cmd.PersistentFlags().GetBool("debug")
		warnSpacing, _ := cmd.PersistentFlags().GetBool("warn-spacing")

		var opts []swparse.Option
		if fakeGameServer {
			opts = append(opts, swparse.WithFakeGameServerInterfaces())
		}
		if debug {
			logger := logrus.New()
			logger.SetLevel(logrus.DebugLevel)
			opts = append(opts, swparse.WithPrintDebug(), swparse.WithLogger(logger))
		}
		if warnSpacing {
			opts = append(opts, swparse.WithWarnSpacing())
		}

		p, err := swparse.Parse(args[0], opts...)
		if err != nil {
			_, _ = fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		report(p)
	},
}

func report(p *swparse.Parser) {
	var structs, callbacks, interfaces, unions, enums int
	for _, f := range p.Files {
		structs += len(f.Structs)
		callbacks += len(f.Callbacks)
		interfaces += len(f.Interfaces)
		unions += len(f.Unions)
		enums += len(f.Enums)
	}

	fmt.Printf("files:       %d\n", len(p.Files))
	fmt.Printf("structs:     %d\n", structs)
	fmt.Printf("callbacks:   %d\n", callbacks)
	fmt.Printf("interfaces:  %d\n", interfaces)
	fmt.Printf("unions:      %d\n", unions)
	fmt.Printf("enums:       %d\n", enums)
	fmt.Printf("typedefs:    %d\n", len(p.Typedefs))
	fmt.Printf("ignored:     %d\n", len(p.IgnoredStructs))

	fmt.Printf("packsize-aware structs: %d\n", len(p.PackSizeAwareStructs))
	for _, name := range p.PackSizeAwareStructs {
		fmt.Printf("  %s\n", name)
	}

	diags := p.Diagnostics()
	fmt.Printf("diagnostics: %d\n", len(diags))
	for _, d := range diags {
		fmt.Printf("  [%s] %s:%d: %s\n", d.Kind, d.File, d.Line, d.Message)
	}
}

func init() {
	command.PersistentFlags().Bool("fake-gameserver", false, "derive ISteamGameServer interfaces from their ISteam counterparts")
	command.PersistentFlags().Bool("debug", false, "print debug tracing for the pack-awareness classifier")
	command.PersistentFlags().Bool("warn-spacing", false, "warn about missing whitespace around parentheses in interface functions")
}

func main() {
	if err := command.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
