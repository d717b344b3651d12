package version

import (
	"runtime/debug"
	"strings"
	"testing"
)

// stamp sets the ldflags variables for one test and restores them after.
func stamp(t *testing.T, version, commit, branch, buildTime, goVersion string) {
	t.Helper()
	saved := [...]string{Version, GitCommit, GitBranch, BuildTime, GoVersion}
	t.Cleanup(func() {
		Version, GitCommit, GitBranch, BuildTime, GoVersion = saved[0], saved[1], saved[2], saved[3], saved[4]
	})
	Version, GitCommit, GitBranch, BuildTime, GoVersion = version, commit, branch, buildTime, goVersion
}

func TestGet(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		buildTime   string
		wantRelease bool
		wantYear    int
	}{
		{"unstamped", "dev", "", false, 0},
		{"release", "1.0.0", "2024-01-15T10:30:00Z", true, 2024},
		{"dirty", "1.0.0-dirty", "2023-06-01T00:00:00Z", false, 2023},
		{"unparsable build time", "1.1.0", "yesterday", true, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stamp(t, tc.version, "abc1234", "main", tc.buildTime, "go1.26.0")

			info := Get()
			if info.Version != tc.version || info.IsRelease != tc.wantRelease {
				t.Errorf("unexpected version info: %+v", info)
			}
			if info.GitCommit != "abc1234" || info.GitBranch != "main" || info.GoVersion != "go1.26.0" {
				t.Errorf("ldflags values should win: %+v", info)
			}
			if info.BuildDate.IsZero() {
				t.Fatal("build date should fall back to now")
			}
			if tc.wantYear != 0 && info.BuildDate.Year() != tc.wantYear {
				t.Errorf("expected build year %d, got %d", tc.wantYear, info.BuildDate.Year())
			}
		})
	}
}

func TestFromBuildInfo(t *testing.T) {
	bi := &debug.BuildInfo{
		GoVersion: "go1.26.0",
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.modified", Value: "true"},
			{Key: "vcs.time", Value: "2025-03-04T05:06:07Z"},
		},
	}

	info := &Info{}
	fromBuildInfo(info, bi)
	if info.GitCommit != "0123456" || !info.IsDirty || info.GoVersion != "go1.26.0" {
		t.Errorf("unexpected info from VCS stamps: %+v", info)
	}
	if info.BuildTime != "2025-03-04T05:06:07Z" || info.BuildDate.Month() != 3 {
		t.Errorf("expected the VCS time, got %q", info.BuildTime)
	}

	stamped := &Info{GitCommit: "feedbee", BuildTime: "2024-01-01T00:00:00Z"}
	fromBuildInfo(stamped, bi)
	if stamped.GitCommit != "feedbee" || stamped.BuildTime != "2024-01-01T00:00:00Z" {
		t.Errorf("ldflags values must not be overwritten: %+v", stamped)
	}
}

func TestShort(t *testing.T) {
	stamp(t, "dev", "", "", "", "")
	if got := Short(); !strings.HasPrefix(got, "dev") {
		t.Errorf("expected dev without a stamped commit, got %q", got)
	}

	stamp(t, "1.0.0", "abc1234", "", "2024-01-01T00:00:00Z", "")
	if got := Short(); got != "1.0.0-abc1234" && got != "1.0.0-abc1234-dirty" {
		t.Errorf("expected 1.0.0-abc1234, got %q", got)
	}
}

func TestInfo_Fields(t *testing.T) {
	stamp(t, "2.3.4", "deadbee", "", "", "")

	f := Get().Fields()
	if f["version"] != "2.3.4" || f["git_commit"] != "deadbee" {
		t.Errorf("unexpected fields: %v", f)
	}
}
