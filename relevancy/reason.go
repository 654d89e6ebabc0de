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

import (
	"fmt"
	"strings"

	"go.chromium.org/crosrelevancy/portage/ebuild"
	relevancypb "go.chromium.org/crosrelevancy/relevancy/proto"
)

// Reason says why a build target is relevant to a change set. It is a closed
// sum: the variants below are the only implementations, and consumers may
// type switch exhaustively. At most one Reason is reported per build target,
// the first match in precedence order (path rule > profile > overlay >
// package).
type Reason interface {
	fmt.Stringer

	// ToProto renders the reason for the Build API response.
	ToProto() *relevancypb.Reason

	isReason()
}

// PathRuleReason: an explicit path rule matched, e.g. a chromite core file.
type PathRuleReason struct {
	// Path is the changed path that triggered the rule.
	Path string
	// Pattern is the human-readable pattern of the matched rule.
	Pattern string
}

func (r *PathRuleReason) isReason() {}

func (r *PathRuleReason) String() string {
	return fmt.Sprintf("path %q matches rule %q", r.Path, r.Pattern)
}

func (r *PathRuleReason) ToProto() *relevancypb.Reason {
	return &relevancypb.Reason{
		Trigger: &relevancypb.Reason_PathRule_{
			PathRule: &relevancypb.Reason_PathRule{Path: r.Path, Pattern: r.Pattern},
		},
	}
}

// ProfileReason: the changed path is inside a profile belonging to an overlay
// of the target's inheritance chain.
type ProfileReason struct {
	Path       string
	ProfileDir string
	Overlay    string
}

func (r *ProfileReason) isReason() {}

func (r *ProfileReason) String() string {
	return fmt.Sprintf("path %q is in profile %q of overlay %q", r.Path, r.ProfileDir, r.Overlay)
}

func (r *ProfileReason) ToProto() *relevancypb.Reason {
	return &relevancypb.Reason{
		Trigger: &relevancypb.Reason_Profile_{
			Profile: &relevancypb.Reason_Profile{
				Path:       r.Path,
				ProfileDir: r.ProfileDir,
				Overlay:    r.Overlay,
			},
		},
	}
}

// OverlayReason: the changed path is inside an overlay of the target's
// inheritance chain (metadata, make.conf and the like).
type OverlayReason struct {
	Path    string
	Overlay string
}

func (r *OverlayReason) isReason() {}

func (r *OverlayReason) String() string {
	return fmt.Sprintf("path %q is in overlay %q", r.Path, r.Overlay)
}

func (r *OverlayReason) ToProto() *relevancypb.Reason {
	return &relevancypb.Reason{
		Trigger: &relevancypb.Reason_Overlay_{
			Overlay: &relevancypb.Reason_Overlay{Path: r.Path, Overlay: r.Overlay},
		},
	}
}

// PackageReason: the changed path is owned by cros-workon packages of the
// target's overlay chain.
type PackageReason struct {
	Path string
	// Packages are the owning packages, sorted, at least one.
	Packages []ebuild.Atom
}

func (r *PackageReason) isReason() {}

func (r *PackageReason) String() string {
	atoms := make([]string, len(r.Packages))
	for i, a := range r.Packages {
		atoms[i] = a.String()
	}
	return fmt.Sprintf("path %q is owned by package(s) %s", r.Path, strings.Join(atoms, ", "))
}

func (r *PackageReason) ToProto() *relevancypb.Reason {
	atoms := make([]string, len(r.Packages))
	for i, a := range r.Packages {
		atoms[i] = a.String()
	}
	return &relevancypb.Reason{
		Trigger: &relevancypb.Reason_Package_{
			Package: &relevancypb.Reason_Package{Path: r.Path, Packages: atoms},
		},
	}
}
