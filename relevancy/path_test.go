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
	"testing"

	"go.chromium.org/luci/common/errors"
	"go.chromium.org/luci/common/testing/ftt"
	"go.chromium.org/luci/common/testing/truth/assert"
	"go.chromium.org/luci/common/testing/truth/should"
)

func TestNormalizePath(t *testing.T) {
	t.Parallel()

	ftt.Run("NormalizePath", t, func(t *ftt.Test) {
		t.Run("accepts clean relative paths", func(t *ftt.Test) {
			p, err := NormalizePath("chromite/lib/cros_build_lib.py")
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, p, should.Equal("chromite/lib/cros_build_lib.py"))
		})

		t.Run("normalizes trailing slashes and dot segments", func(t *ftt.Test) {
			p, err := NormalizePath("chromite/lib/")
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, p, should.Equal("chromite/lib"))

			p, err = NormalizePath("./src/platform/fake//x.c")
			assert.Loosely(t, err, should.BeNil)
			assert.Loosely(t, p, should.Equal("src/platform/fake/x.c"))
		})

		t.Run("rejects absolute paths", func(t *ftt.Test) {
			_, err := NormalizePath("/mnt/host/source/chromite/run_tests")
			var ipe *InvalidPathError
			assert.Loosely(t, errors.As(err, &ipe), should.BeTrue)
			assert.Loosely(t, ipe.Reason, should.ContainSubstring("absolute"))
		})

		t.Run("rejects paths escaping the checkout", func(t *ftt.Test) {
			_, err := NormalizePath("../other-checkout/file")
			var ipe *InvalidPathError
			assert.Loosely(t, errors.As(err, &ipe), should.BeTrue)

			_, err = NormalizePath("src/../../file")
			assert.Loosely(t, errors.As(err, &ipe), should.BeTrue)
		})

		t.Run("rejects empty and backslashed paths", func(t *ftt.Test) {
			_, err := NormalizePath("")
			assert.Loosely(t, err, should.NotBeNil)

			_, err = NormalizePath(`src\platform\fake`)
			assert.Loosely(t, err, should.NotBeNil)
		})
	})
}
