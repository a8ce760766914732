// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package version

import (
	"runtime"
	"strings"
	"testing"
)

func TestGetUsesLdflagsValues(t *testing.T) {
	oldV, oldC := Version, Commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })
	Version, Commit = "1.4.0", "abc1234"

	info := Get()
	if info.Version != "1.4.0" || info.GitCommit != "abc1234" {
		t.Errorf("Get() = %+v", info)
	}
	if info.GoVersion != runtime.Version() {
		t.Errorf("GoVersion = %q", info.GoVersion)
	}

	s := info.String()
	for _, want := range []string{"rgui version 1.4.0", "commit: abc1234", runtime.GOOS + "/" + runtime.GOARCH} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q; missing %q", s, want)
		}
	}
}
