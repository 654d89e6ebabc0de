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

// Package ebuild maps source paths to the cros-workon packages that build
// them, using the CROS_WORKON metadata declared by 9999 ebuilds.
package ebuild

import (
	"context"
	"strings"

	"go.chromium.org/crosrelevancy/portage/overlay"
)

// Atom identifies a package as category/name.
type Atom struct {
	Category string
	Package  string
}

func (a Atom) String() string { return a.Category + "/" + a.Package }

// SourceInfo is the source-tree footprint of one cros-workon package.
type SourceInfo struct {
	// Atom identifies the package.
	Atom Atom

	// Subtrees are the checkout-relative roots of the source trees the
	// package builds from, derived from CROS_WORKON_LOCALNAME and
	// CROS_WORKON_SUBTREE.
	Subtrees []string
}

// OwnsPath reports whether the checkout-relative path is equal to or a
// descendant of any of the package's subtree roots. Matching is per path
// segment: a subtree "src/platform/fake" does not own
// "src/platform/fakeish/x.c".
func (s *SourceInfo) OwnsPath(p string) bool {
	for _, root := range s.Subtrees {
		if p == root || strings.HasPrefix(p, root+"/") {
			return true
		}
	}
	return false
}

// Enumerator lists the cros-workon packages of an overlay.
//
// Implementations own their I/O. A package with malformed workon metadata is
// skipped with a logged warning, never a fatal error.
type Enumerator interface {
	WorkonPackages(ctx context.Context, o *overlay.Overlay) ([]*SourceInfo, error)
}
