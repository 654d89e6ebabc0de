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

package ebuild

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.chromium.org/luci/common/data/stringset"
	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"

	"go.chromium.org/crosrelevancy/portage/overlay"
)

var workonVars = stringset.NewFromSlice(
	"CROS_WORKON_PROJECT",
	"CROS_WORKON_LOCALNAME",
	"CROS_WORKON_SUBTREE",
)

// chromiumosOverlayDir hosts packages whose CROS_WORKON_LOCALNAME is
// relative to src/third_party rather than src.
const chromiumosOverlayDir = "src/third_party/chromiumos-overlay"

// NewFSEnumerator returns an Enumerator scanning 9999 ebuilds of a ChromeOS
// checkout rooted at root.
func NewFSEnumerator(root string) Enumerator {
	return &fsEnumerator{root: root}
}

type fsEnumerator struct {
	root string
}

func (f *fsEnumerator) WorkonPackages(ctx context.Context, o *overlay.Overlay) ([]*SourceInfo, error) {
	pattern := filepath.Join(f.root, filepath.FromSlash(o.Dir), "*", "*", "*-9999.ebuild")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Fmt("enumerating workon ebuilds of %s: %w", o.Name, err)
	}

	var infos []*SourceInfo
	for _, m := range matches {
		pkgDir := filepath.Dir(m)
		atom := Atom{
			Category: filepath.Base(filepath.Dir(pkgDir)),
			Package:  filepath.Base(pkgDir),
		}
		data, err := os.ReadFile(m)
		if err != nil {
			logging.Warningf(ctx, "%s: reading %s: %s; skipping package", atom, m, err)
			continue
		}
		si, err := parseSourceInfo(atom, string(data), o)
		if err != nil {
			logging.Warningf(ctx, "%s: %s; skipping package", atom, err)
			continue
		}
		infos = append(infos, si)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Atom.String() < infos[j].Atom.String() })
	return infos, nil
}

// parseSourceInfo derives the subtree roots of one package from its 9999
// ebuild text. CROS_WORKON_SUBTREE entries are space-separated directories
// relative to the corresponding CROS_WORKON_LOCALNAME; an absent or empty
// entry means the whole localname tree.
func parseSourceInfo(atom Atom, content string, o *overlay.Overlay) (*SourceInfo, error) {
	vars := parseVars(content, workonVars)
	localnames := vars["CROS_WORKON_LOCALNAME"]
	if len(localnames) == 0 {
		return nil, errors.New("no CROS_WORKON_LOCALNAME in 9999 ebuild")
	}
	subtrees := vars["CROS_WORKON_SUBTREE"]

	prefix := "src"
	if o.Dir == chromiumosOverlayDir {
		prefix = "src/third_party"
	}

	var roots []string
	for i, ln := range localnames {
		if ln == "" || strings.Contains(ln, "$") {
			return nil, errors.Fmt("malformed CROS_WORKON_LOCALNAME entry %q", ln)
		}
		base := path.Clean(path.Join(prefix, ln))
		var st string
		if i < len(subtrees) {
			st = subtrees[i]
		}
		fields := strings.Fields(st)
		if len(fields) == 0 {
			roots = append(roots, base)
			continue
		}
		for _, sub := range fields {
			roots = append(roots, path.Join(base, sub))
		}
	}
	return &SourceInfo{Atom: atom, Subtrees: roots}, nil
}
