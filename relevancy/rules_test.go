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

	"go.chromium.org/luci/common/testing/ftt"
	"go.chromium.org/luci/common/testing/truth/assert"
	"go.chromium.org/luci/common/testing/truth/should"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	ftt.Run("classify", t, func(t *ftt.Test) {
		t.Run("chromite core files hit the path rule table", func(t *ftt.Test) {
			c := classify("chromite/lib/cros_build_lib.py")
			assert.Loosely(t, c.bucket, should.Equal(bucketPathRule))
			assert.Loosely(t, c.rule.pattern, should.ContainSubstring("chromite"))
		})

		t.Run("chromite unittests match nothing", func(t *ftt.Test) {
			c := classify("chromite/lib/cros_build_lib_unittest.py")
			assert.Loosely(t, c.bucket, should.Equal(bucketUnmatched))
		})

		t.Run("src/scripts and coreboot are path rules", func(t *ftt.Test) {
			assert.Loosely(t, classify("src/scripts/build_library/build_image_util.sh").bucket, should.Equal(bucketPathRule))
			assert.Loosely(t, classify("src/third_party/coreboot/payloads/Makefile").bucket, should.Equal(bucketPathRule))
		})

		t.Run("versioned kernel trees are target-restricted path rules", func(t *ftt.Test) {
			c := classify("src/third_party/kernel/v6.1/drivers/foo.c")
			assert.Loosely(t, c.bucket, should.Equal(bucketPathRule))
			assert.Loosely(t, c.rule.appliesTo, should.NotBeNil)
			assert.Loosely(t, c.rule.appliesTo("src/third_party/kernel/v6.1/drivers/foo.c", BuildTarget{Name: "fake", KernelVersion: "6.1"}), should.BeTrue)
			assert.Loosely(t, c.rule.appliesTo("src/third_party/kernel/v6.1/drivers/foo.c", BuildTarget{Name: "fake", KernelVersion: "5.15"}), should.BeFalse)
			assert.Loosely(t, c.rule.appliesTo("src/third_party/kernel/v6.1/drivers/foo.c", BuildTarget{Name: "fake"}), should.BeFalse)
		})

		t.Run("profile paths in overlay trees", func(t *ftt.Test) {
			c := classify("src/overlays/baseboard-fake/profiles/base/make.defaults")
			assert.Loosely(t, c.bucket, should.Equal(bucketProfile))
		})

		t.Run("other overlay tree paths", func(t *ftt.Test) {
			assert.Loosely(t, classify("src/overlays/overlay-fake/metadata/layout.conf").bucket, should.Equal(bucketOverlay))
			assert.Loosely(t, classify("src/private-overlays/overlay-fake-private/make.conf").bucket, should.Equal(bucketOverlay))
			assert.Loosely(t, classify("src/third_party/chromiumos-overlay/chromeos-base/fake/fake-9999.ebuild").bucket, should.Equal(bucketOverlay))
		})

		t.Run("project source falls to package ownership", func(t *ftt.Test) {
			assert.Loosely(t, classify("src/platform/fake/subdir/foo.c").bucket, should.Equal(bucketPackage))
		})

		t.Run("everything else is unmatched", func(t *ftt.Test) {
			assert.Loosely(t, classify("docs/README.md").bucket, should.Equal(bucketUnmatched))
			assert.Loosely(t, classify("infra/config/main.star").bucket, should.Equal(bucketUnmatched))
		})

		t.Run("is deterministic", func(t *ftt.Test) {
			p := "src/third_party/kernel/v6.1/Makefile"
			first := classify(p)
			for i := 0; i < 10; i++ {
				again := classify(p)
				assert.Loosely(t, again.bucket, should.Equal(first.bucket))
				assert.Loosely(t, again.rule, should.Equal(first.rule))
			}
		})
	})
}

func TestKernelPathVersion(t *testing.T) {
	t.Parallel()

	ftt.Run("kernelPathVersion", t, func(t *ftt.Test) {
		assert.Loosely(t, kernelPathVersion("src/third_party/kernel/v6.1/foo.c"), should.Equal("6.1"))
		assert.Loosely(t, kernelPathVersion("src/third_party/kernel/v5.15"), should.Equal("5.15"))
		assert.Loosely(t, kernelPathVersion("src/third_party/kernel/upstream/foo.c"), should.BeEmpty)
		assert.Loosely(t, kernelPathVersion("src/third_party/kernels/v6.1/foo.c"), should.BeEmpty)
	})
}
