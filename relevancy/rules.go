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

package relevancy

import "strings"

// bucket is the structural category of a changed path. It decides which
// matching machinery runs, and thereby the precedence of reason kinds:
// explicit path rules beat profile matches beat overlay matches beat package
// ownership.
type bucket int

const (
	bucketUnmatched bucket = iota
	bucketPathRule
	bucketProfile
	bucketOverlay
	bucketPackage
)

// pathRule is one entry of the explicit path rule table.
type pathRule struct {
	// pattern is the human-readable rendering of the rule, reported in the
	// emitted reason.
	pattern string

	// match reports whether the rule covers the path.
	match func(p string) bool

	// appliesTo optionally restricts which build targets the rule marks
	// relevant. nil means all targets.
	appliesTo func(p string, t BuildTarget) bool
}

// pathRules is the explicit rule table, evaluated in order; the first match
// wins. Rules here outrank profile, overlay and package matching.
var pathRules = []*pathRule{
	{
		// Core build tooling affects every target. Its tests do not ship in
		// any image.
		pattern: "chromite/** (excluding unittests)",
		match: func(p string) bool {
			return underDir(p, "chromite") && !strings.HasSuffix(p, "_unittest.py")
		},
	},
	{
		pattern: "src/scripts/**",
		match:   func(p string) bool { return underDir(p, "src/scripts") },
	},
	{
		pattern: "src/third_party/kernel/v*/**",
		match:   func(p string) bool { return kernelPathVersion(p) != "" },
		appliesTo: func(p string, t BuildTarget) bool {
			return t.KernelVersion != "" && t.KernelVersion == kernelPathVersion(p)
		},
	},
	{
		pattern: "src/third_party/coreboot/**",
		match:   func(p string) bool { return underDir(p, "src/third_party/coreboot") },
	},
}

// overlayTreeRoots are the checkout directories that hold overlays. Paths
// under them classify as overlay or profile changes, never as project source.
var overlayTreeRoots = []string{
	"src/overlays",
	"src/private-overlays",
	"src/third_party/chromiumos-overlay",
	"src/third_party/portage-stable",
	"src/third_party/eclass-overlay",
}

type classification struct {
	bucket bucket

	// rule is the matched rule for bucketPathRule.
	rule *pathRule
}

// classify buckets a normalized changed path. It is a pure function of the
// path; target-specific restrictions live in the matched rule's appliesTo.
func classify(p string) classification {
	for _, r := range pathRules {
		if r.match(p) {
			return classification{bucket: bucketPathRule, rule: r}
		}
	}
	switch {
	case inOverlayTree(p):
		if strings.Contains(p, "/profiles/") || strings.HasSuffix(p, "/profiles") {
			return classification{bucket: bucketProfile}
		}
		return classification{bucket: bucketOverlay}
	case underDir(p, "src"):
		return classification{bucket: bucketPackage}
	}
	return classification{bucket: bucketUnmatched}
}

func inOverlayTree(p string) bool {
	for _, root := range overlayTreeRoots {
		if underDir(p, root) {
			return true
		}
	}
	return false
}

// kernelPathVersion extracts "6.1" from "src/third_party/kernel/v6.1/...".
// Returns "" for paths outside versioned kernel checkouts.
func kernelPathVersion(p string) string {
	const prefix = "src/third_party/kernel/"
	if !strings.HasPrefix(p, prefix) {
		return ""
	}
	seg, _, _ := strings.Cut(p[len(prefix):], "/")
	if len(seg) > 1 && seg[0] == 'v' {
		return seg[1:]
	}
	return ""
}
