// Copyright 2025 The LUCI Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/maruel/subcommands"

	"go.chromium.org/luci/common/cli"
	"go.chromium.org/luci/common/data/text"
	"go.chromium.org/luci/common/errors"
	luciflag "go.chromium.org/luci/common/flag"
	"go.chromium.org/luci/common/logging"

	"go.chromium.org/crosrelevancy/portage/ebuild"
	"go.chromium.org/crosrelevancy/portage/overlay"
	"go.chromium.org/crosrelevancy/relevancy"
)

func cmdRelevantTargets() *subcommands.Command {
	return &subcommands.Command{
		UsageLine: "relevant-targets [flags] PATH [PATH...]",
		ShortDesc: "lists build targets affected by the changed paths",
		LongDesc: text.Doc(`
			Lists build targets affected by the changed paths.

			Paths must be relative to the checkout root, e.g.
			"chromite/lib/cros_build_lib.py". Each relevant board is logged
			with the reason it is relevant.
		`),
		CommandRun: func() subcommands.CommandRun {
			r := &relevantTargetsRun{}
			r.Flags.StringVar(&r.checkout, "checkout", "", text.Doc(`
				Path to the ChromeOS checkout root.
				Defaults to the current directory.
			`))
			r.Flags.Var(luciflag.StringSlice(&r.boards), "board", text.Doc(`
				Board to evaluate. Can be specified multiple times.
				Defaults to all boards with an overlay in the checkout.
			`))
			r.Flags.BoolVar(&r.publicOnly, "public", false,
				"Evaluate boards as public: ignore private overlays and profiles.")
			return r
		},
	}
}

type relevantTargetsRun struct {
	subcommands.CommandRunBase
	checkout   string
	boards     []string
	publicOnly bool
}

func (r *relevantTargetsRun) Run(a subcommands.Application, args []string, env subcommands.Env) int {
	ctx := cli.GetContext(a, r, env)
	if err := r.run(ctx, args); err != nil {
		fmt.Fprintf(os.Stderr, "cros-relevancy: %s\n", err)
		return 1
	}
	return 0
}

func (r *relevantTargetsRun) run(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return errors.New("at least one changed path is required")
	}
	checkout := r.checkout
	if checkout == "" {
		var err error
		if checkout, err = os.Getwd(); err != nil {
			return err
		}
	}

	finder := overlay.NewFSFinder(checkout)
	boards := r.boards
	if len(boards) == 0 {
		var err error
		if boards, err = finder.ListBoards(ctx); err != nil {
			return err
		}
		if len(boards) == 0 {
			return errors.Fmt("no board overlays found under %s; is it a ChromeOS checkout?", checkout)
		}
	}

	targets := make([]relevancy.BuildTarget, len(boards))
	for i, b := range boards {
		targets[i] = relevancy.BuildTarget{Name: b, Public: r.publicOnly}
	}

	ev := &relevancy.Evaluator{
		Finder:   finder,
		Packages: ebuild.NewFSEnumerator(checkout),
	}
	return ev.Run(ctx, targets, paths, func(t relevancy.BuildTarget, reason relevancy.Reason) bool {
		logging.Infof(ctx, "%s (Reason: %s)", t.Name, reason)
		return true
	})
}
