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
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/logging"
)

// Directories scanned for overlays when resolving repo names in parent files.
var overlayRoots = []string{
	"src/overlays",
	"src/private-overlays",
}

// Standalone overlays that boards commonly inherit from.
var standaloneOverlays = []string{
	"src/third_party/chromiumos-overlay",
	"src/third_party/portage-stable",
	"src/third_party/eclass-overlay",
}

// NewFSFinder returns a Finder reading overlay topology from a ChromeOS
// checkout rooted at root.
func NewFSFinder(root string) Finder {
	return &fsFinder{root: root}
}

type fsFinder struct {
	root string

	indexOnce  sync.Once
	byRepoName map[string]*Overlay
}

func (f *fsFinder) BoardOverlay(ctx context.Context, board string) (*Overlay, error) {
	dir := "src/overlays/overlay-" + board
	o, err := f.readOverlay(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, errors.Fmt("board %q has no overlay at %s: %w", board, dir, ErrUnknownBoard)
	case err != nil:
		return nil, err
	}
	return o, nil
}

func (f *fsFinder) PrivateBoardOverlay(ctx context.Context, board string) (*Overlay, error) {
	dir := "src/private-overlays/overlay-" + board + "-private"
	o, err := f.readOverlay(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, err
	}
	return o, nil
}

func (f *fsFinder) Parents(ctx context.Context, o *Overlay) ([]*Overlay, error) {
	parentFile := path.Join(o.Dir, "profiles", "base", "parent")
	data, err := os.ReadFile(filepath.Join(f.root, filepath.FromSlash(parentFile)))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, errors.Fmt("reading %s: %w", parentFile, err)
	}

	var parents []*Overlay
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		var parent *Overlay
		if repo, _, ok := strings.Cut(line, ":"); ok {
			// "<repo-name>:<profile>" form.
			parent = f.overlayByRepoName(ctx, repo)
			if parent == nil {
				logging.Warningf(ctx, "%s: repo %q not found in checkout; skipping", parentFile, repo)
				continue
			}
		} else {
			// Path relative to the profile directory.
			resolved := path.Join(o.Dir, "profiles", "base", line)
			i := strings.Index(resolved, "/profiles/")
			if i < 0 {
				logging.Warningf(ctx, "%s: cannot locate overlay of parent profile %q; skipping", parentFile, line)
				continue
			}
			parent, err = f.readOverlay(resolved[:i])
			if err != nil {
				logging.Warningf(ctx, "%s: reading parent overlay of %q: %s; skipping", parentFile, line, err)
				continue
			}
		}
		parents = append(parents, parent)
	}
	return parents, nil
}

func (f *fsFinder) Profiles(ctx context.Context, o *Overlay) ([]*Profile, error) {
	profilesDir := filepath.Join(f.root, filepath.FromSlash(o.Dir), "profiles")
	var profiles []*Profile
	err := filepath.WalkDir(profilesDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if _, err := os.Stat(filepath.Join(p, "make.defaults")); err != nil {
			return nil
		}
		rel, err := filepath.Rel(f.root, p)
		if err != nil {
			return err
		}
		profiles = append(profiles, &Profile{Overlay: o, Dir: filepath.ToSlash(rel)})
		return nil
	})
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, errors.Fmt("enumerating profiles of %s: %w", o.Name, err)
	}
	return profiles, nil
}

func (f *fsFinder) ListBoards(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(f.root, "src", "overlays"))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, errors.Fmt("listing board overlays: %w", err)
	}

	var boards []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), "overlay-") {
			boards = append(boards, strings.TrimPrefix(e.Name(), "overlay-"))
		}
	}
	return boards, nil
}

// readOverlay reads the overlay at the checkout-relative directory.
// The repo name comes from metadata/layout.conf when present.
func (f *fsFinder) readOverlay(dir string) (*Overlay, error) {
	abs := filepath.Join(f.root, filepath.FromSlash(dir))
	st, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !st.IsDir() {
		return nil, errors.Fmt("overlay path %s is not a directory", dir)
	}

	name := path.Base(dir)
	if data, err := os.ReadFile(filepath.Join(abs, "metadata", "layout.conf")); err == nil {
		if n := layoutConfValue(string(data), "repo-name"); n != "" {
			name = n
		}
	}
	return &Overlay{
		Name:    name,
		Dir:     dir,
		Private: strings.HasPrefix(dir, "src/private-overlays/"),
	}, nil
}

// overlayByRepoName resolves a portage repo name to an overlay, building the
// checkout-wide index on first use.
func (f *fsFinder) overlayByRepoName(ctx context.Context, repo string) *Overlay {
	f.indexOnce.Do(func() {
		f.byRepoName = map[string]*Overlay{}

		add := func(dir string) {
			o, err := f.readOverlay(dir)
			if err != nil {
				if !errors.Is(err, fs.ErrNotExist) {
					logging.Warningf(ctx, "indexing overlay %s: %s", dir, err)
				}
				return
			}
			f.byRepoName[o.Name] = o
		}

		for _, rootDir := range overlayRoots {
			entries, err := os.ReadDir(filepath.Join(f.root, filepath.FromSlash(rootDir)))
			if err != nil {
				continue
			}
			for _, e := range entries {
				if e.IsDir() {
					add(path.Join(rootDir, e.Name()))
				}
			}
		}
		for _, dir := range standaloneOverlays {
			add(dir)
		}
	})
	return f.byRepoName[repo]
}

// layoutConfValue extracts a "key = value" entry from layout.conf content.
func layoutConfValue(content, key string) string {
	for _, line := range strings.Split(content, "\n") {
		k, v, ok := strings.Cut(line, "=")
		if ok && strings.TrimSpace(k) == key {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
