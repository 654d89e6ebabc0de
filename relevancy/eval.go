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

// Package relevancy decides which build targets are affected by a set of
// changed paths, and why.
//
// A path can make a target relevant four ways, in fixed precedence order:
// an explicit path rule (chromite core files, versioned kernel trees), a
// profile of the target's overlay inheritance chain, an overlay of that
// chain, or a cros-workon package owning the path. Profile matching is a
// deliberate over-approximation: any profile of any overlay in the chain
// counts, whether or not the target's active profile selection includes it.
// A false positive costs one extra build; a false negative ships an untested
// image.
package relevancy

import (
	"context"
	"sort"

	"go.chromium.org/luci/common/data/stringset"
	"go.chromium.org/luci/common/logging"

	"go.chromium.org/crosrelevancy/portage/ebuild"
	"go.chromium.org/crosrelevancy/portage/overlay"
)

// Evaluator computes build target relevancy over one checkout.
//
// It memoizes overlay chains, profile lists and package listings in
// read-through caches keyed by target/overlay identity, so repeated
// evaluations against unchanged checkout state are cheap. The caches make it
// single-threaded only; do not share an Evaluator between goroutines.
type Evaluator struct {
	// Finder answers overlay topology queries.
	Finder overlay.Finder

	// Packages enumerates cros-workon packages per overlay.
	Packages ebuild.Enumerator

	chains   map[targetKey][]*overlay.Overlay
	profiles map[string][]*overlay.Profile
	workon   map[string][]*ebuild.SourceInfo
}

// TargetReason is one relevant build target with its highest-priority reason.
type TargetReason struct {
	Target BuildTarget
	Reason Reason
}

// Run evaluates targets in order against the changed paths and calls cb for
// each relevant one with its reason. Computation is driven lazily by the
// callback: overlay and package I/O for a target happens only when the scan
// reaches it, and returning false from cb stops the run. Each target is
// reported at most once; once a target is known relevant its remaining paths
// are skipped.
//
// Any invalid path fails the whole call with InvalidPathError before any
// target is evaluated. A target whose overlay chain or package metadata
// cannot be resolved is skipped with a logged warning.
func (e *Evaluator) Run(ctx context.Context, targets []BuildTarget, paths []string, cb func(BuildTarget, Reason) bool) error {
	norm := make([]string, len(paths))
	for i, p := range paths {
		np, err := NormalizePath(p)
		if err != nil {
			return err
		}
		norm[i] = np
	}

	emitted := map[targetKey]struct{}{}
	for _, t := range targets {
		if _, ok := emitted[t.key()]; ok {
			continue
		}
		reason, err := e.evalTarget(ctx, t, norm)
		if err != nil {
			logging.Warningf(ctx, "skipping build target %q: %s", t.Name, err)
			continue
		}
		if reason == nil {
			continue
		}
		emitted[t.key()] = struct{}{}
		if !cb(t, reason) {
			return nil
		}
	}
	return nil
}

// RelevantBuildTargets is the eager form of Run.
func (e *Evaluator) RelevantBuildTargets(ctx context.Context, targets []BuildTarget, paths []string) ([]TargetReason, error) {
	var out []TargetReason
	err := e.Run(ctx, targets, paths, func(t BuildTarget, r Reason) bool {
		out = append(out, TargetReason{Target: t, Reason: r})
		return true
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// evalTarget scans paths in order and returns the first reason making t
// relevant, or nil if none does.
func (e *Evaluator) evalTarget(ctx context.Context, t BuildTarget, paths []string) (Reason, error) {
	for _, p := range paths {
		c := classify(p)
		switch c.bucket {
		case bucketPathRule:
			if c.rule.appliesTo == nil || c.rule.appliesTo(p, t) {
				return &PathRuleReason{Path: p, Pattern: c.rule.pattern}, nil
			}

		case bucketProfile:
			chain, err := e.chain(ctx, t)
			if err != nil {
				return nil, err
			}
			for _, o := range chain {
				profiles, err := e.overlayProfiles(ctx, o)
				if err != nil {
					return nil, err
				}
				for _, prof := range profiles {
					if prof.Contains(p) {
						return &ProfileReason{Path: p, ProfileDir: prof.Dir, Overlay: o.Name}, nil
					}
				}
			}

		case bucketOverlay:
			chain, err := e.chain(ctx, t)
			if err != nil {
				return nil, err
			}
			for _, o := range chain {
				if o.Contains(p) {
					return &OverlayReason{Path: p, Overlay: o.Name}, nil
				}
			}

		case bucketPackage:
			chain, err := e.chain(ctx, t)
			if err != nil {
				return nil, err
			}
			atoms, err := e.owningPackages(ctx, chain, p)
			if err != nil {
				return nil, err
			}
			if len(atoms) > 0 {
				return &PackageReason{Path: p, Packages: atoms}, nil
			}
		}
	}
	return nil, nil
}

// chain resolves the overlay inheritance chain of a target, most specific
// first: board overlay, private variant for non-public targets, then parents
// transitively. Private overlays never enter a public target's chain. Cycles
// in parent files are tolerated.
func (e *Evaluator) chain(ctx context.Context, t BuildTarget) ([]*overlay.Overlay, error) {
	k := t.key()
	if c, ok := e.chains[k]; ok {
		return c, nil
	}

	board, err := e.Finder.BoardOverlay(ctx, t.Name)
	if err != nil {
		return nil, err
	}
	queue := []*overlay.Overlay{board}
	if !t.Public {
		priv, err := e.Finder.PrivateBoardOverlay(ctx, t.Name)
		if err != nil {
			return nil, err
		}
		if priv != nil {
			queue = append(queue, priv)
		}
	}

	seen := stringset.New(len(queue))
	var chain []*overlay.Overlay
	for len(queue) > 0 {
		o := queue[0]
		queue = queue[1:]
		if o.Private && t.Public {
			continue
		}
		if !seen.Add(o.Dir) {
			continue
		}
		chain = append(chain, o)
		parents, err := e.Finder.Parents(ctx, o)
		if err != nil {
			return nil, err
		}
		queue = append(queue, parents...)
	}

	if e.chains == nil {
		e.chains = map[targetKey][]*overlay.Overlay{}
	}
	e.chains[k] = chain
	return chain, nil
}

func (e *Evaluator) overlayProfiles(ctx context.Context, o *overlay.Overlay) ([]*overlay.Profile, error) {
	if p, ok := e.profiles[o.Dir]; ok {
		return p, nil
	}
	p, err := e.Finder.Profiles(ctx, o)
	if err != nil {
		return nil, err
	}
	if e.profiles == nil {
		e.profiles = map[string][]*overlay.Profile{}
	}
	e.profiles[o.Dir] = p
	return p, nil
}

func (e *Evaluator) overlayWorkon(ctx context.Context, o *overlay.Overlay) ([]*ebuild.SourceInfo, error) {
	if w, ok := e.workon[o.Dir]; ok {
		return w, nil
	}
	w, err := e.Packages.WorkonPackages(ctx, o)
	if err != nil {
		return nil, err
	}
	if e.workon == nil {
		e.workon = map[string][]*ebuild.SourceInfo{}
	}
	e.workon[o.Dir] = w
	return w, nil
}

// owningPackages returns the sorted set of packages in the chain's overlays
// whose declared subtrees cover p.
func (e *Evaluator) owningPackages(ctx context.Context, chain []*overlay.Overlay, p string) ([]ebuild.Atom, error) {
	seen := stringset.New(0)
	var atoms []ebuild.Atom
	for _, o := range chain {
		infos, err := e.overlayWorkon(ctx, o)
		if err != nil {
			return nil, err
		}
		for _, si := range infos {
			if si.OwnsPath(p) && seen.Add(si.Atom.String()) {
				atoms = append(atoms, si.Atom)
			}
		}
	}
	sort.Slice(atoms, func(i, j int) bool { return atoms[i].String() < atoms[j].String() })
	return atoms, nil
}
