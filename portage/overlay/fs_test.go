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

package overlay

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/testing/ftt"
	"go.chromium.org/luci/common/testing/truth/assert"
	"go.chromium.org/luci/common/testing/truth/should"
)

func writeFile(t testing.TB, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// fakeCheckout writes a minimal checkout with a board overlay inheriting a
// baseboard, plus a private variant of the board.
func fakeCheckout(t testing.TB) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, root, "src/overlays/overlay-fake/metadata/layout.conf", "repo-name = fake\n")
	writeFile(t, root, "src/overlays/overlay-fake/profiles/base/make.defaults", "")
	writeFile(t, root, "src/overlays/overlay-fake/profiles/base/parent", "baseboard-fake:base\n")

	writeFile(t, root, "src/overlays/baseboard-fake/metadata/layout.conf", "repo-name = baseboard-fake\n")
	writeFile(t, root, "src/overlays/baseboard-fake/profiles/base/make.defaults", "")

	writeFile(t, root, "src/private-overlays/overlay-fake-private/metadata/layout.conf", "repo-name = fake-private\n")
	writeFile(t, root, "src/private-overlays/overlay-fake-private/profiles/base/make.defaults", "")

	return root
}

func TestFSFinder(t *testing.T) {
	t.Parallel()

	ftt.Run("With a fake checkout", t, func(t *ftt.Test) {
		ctx := context.Background()
		root := fakeCheckout(t)
		f := NewFSFinder(root)

		t.Run("BoardOverlay", func(t *ftt.Test) {
			o, err := f.BoardOverlay(ctx, "fake")
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, o.Name, should.Equal("fake"))
			assert.Loosely(t, o.Dir, should.Equal("src/overlays/overlay-fake"))
			assert.Loosely(t, o.Private, should.BeFalse)
		})

		t.Run("BoardOverlay of unknown board", func(t *ftt.Test) {
			_, err := f.BoardOverlay(ctx, "nonexistent")
			assert.Loosely(t, errors.Is(err, ErrUnknownBoard), should.BeTrue)
		})

		t.Run("PrivateBoardOverlay", func(t *ftt.Test) {
			o, err := f.PrivateBoardOverlay(ctx, "fake")
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, o.Name, should.Equal("fake-private"))
			assert.Loosely(t, o.Private, should.BeTrue)

			t.Run("absent", func(t *ftt.Test) {
				o, err := f.PrivateBoardOverlay(ctx, "faux")
				assert.Loosely(t, err, should.BeNil)
				assert.Loosely(t, o, should.BeNil)
			})
		})

		t.Run("Parents by repo name", func(t *ftt.Test) {
			o, err := f.BoardOverlay(ctx, "fake")
			assert.Loosely(t, err, should.BeNil)

			parents, err := f.Parents(ctx, o)
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, parents, should.HaveLength(1))
			assert.Loosely(t, parents[0].Name, should.Equal("baseboard-fake"))
		})

		t.Run("Parents by relative path", func(t *ftt.Test) {
			writeFile(t, root, "src/overlays/overlay-faux/profiles/base/parent",
				"../../../baseboard-fake/profiles/base\n")
			o, err := f.BoardOverlay(ctx, "faux")
			assert.Loosely(t, err, should.BeNil)

			parents, err := f.Parents(ctx, o)
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, parents, should.HaveLength(1))
			assert.Loosely(t, parents[0].Dir, should.Equal("src/overlays/baseboard-fake"))
		})

		t.Run("Parents skips unknown repo names", func(t *ftt.Test) {
			writeFile(t, root, "src/overlays/overlay-fake/profiles/base/parent",
				"no-such-repo:base\nbaseboard-fake:base\n")
			o, err := f.BoardOverlay(ctx, "fake")
			assert.Loosely(t, err, should.BeNil)

			parents, err := f.Parents(ctx, o)
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, parents, should.HaveLength(1))
			assert.Loosely(t, parents[0].Name, should.Equal("baseboard-fake"))
		})

		t.Run("Parents without a parent file", func(t *ftt.Test) {
			o, err := f.BoardOverlay(ctx, "fake")
			assert.Loosely(t, err, should.BeNil)
			parents, err := f.Parents(ctx, parentless(t, root, o))
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, parents, should.BeNil)
		})

		t.Run("Profiles", func(t *ftt.Test) {
			writeFile(t, root, "src/overlays/overlay-fake/profiles/kernel-6_1/make.defaults", "")
			writeFile(t, root, "src/overlays/overlay-fake/profiles/notes/README.md", "not a profile")

			o, err := f.BoardOverlay(ctx, "fake")
			assert.Loosely(t, err, should.BeNil)

			profiles, err := f.Profiles(ctx, o)
			assert.Loosely(t, err, should.BeNil)

			var dirs []string
			for _, p := range profiles {
				dirs = append(dirs, p.Dir)
			}
			assert.That(t, dirs, should.Match([]string{
				"src/overlays/overlay-fake/profiles/base",
				"src/overlays/overlay-fake/profiles/kernel-6_1",
			}))
		})

		t.Run("ListBoards", func(t *ftt.Test) {
			boards, err := f.ListBoards(ctx)
			assert.Loosely(t, err, should.BeNil)
			assert.That(t, boards, should.Match([]string{"fake"}))
		})
	})
}

// parentless points o at a copy without a parent file.
func parentless(t testing.TB, root string, o *Overlay) *Overlay {
	t.Helper()
	if err := os.Remove(filepath.Join(root, filepath.FromSlash(o.Dir), "profiles", "base", "parent")); err != nil {
		t.Fatal(err)
	}
	return o
}

func TestContains(t *testing.T) {
	t.Parallel()

	ftt.Run("Overlay.Contains matches whole path segments", t, func(t *ftt.Test) {
		o := &Overlay{Name: "a", Dir: "src/overlays/overlay-a"}
		assert.Loosely(t, o.Contains("src/overlays/overlay-a"), should.BeTrue)
		assert.Loosely(t, o.Contains("src/overlays/overlay-a/metadata/layout.conf"), should.BeTrue)
		assert.Loosely(t, o.Contains("src/overlays/overlay-ab/metadata/layout.conf"), should.BeFalse)
	})
}

func TestLayoutConfValue(t *testing.T) {
	t.Parallel()

	ftt.Run("layoutConfValue", t, func(t *ftt.Test) {
		conf := "masters = portage-stable chromiumos\nrepo-name = fake\nuse-manifests = true\n"
		assert.Loosely(t, layoutConfValue(conf, "repo-name"), should.Equal("fake"))
		assert.Loosely(t, layoutConfValue(conf, "masters"), should.Equal("portage-stable chromiumos"))
		assert.Loosely(t, layoutConfValue(conf, "thin-manifests"), should.BeEmpty)
	})
}
