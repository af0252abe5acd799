package version

import (
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet(t *testing.T) {
	info := Get()

	assert.NotEmpty(t, info.Version)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestGet_Stamped(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })
	Version = "1.2.3"

	assert.Equal(t, "1.2.3", Get().Short())
}

func TestInfo_String(t *testing.T) {
	out := Info{Version: "1.0.0", Commit: "abc", BuildDate: "today", GoVersion: "go1.24", Platform: "linux/amd64"}.String()

	assert.True(t, strings.HasPrefix(out, "Version:    1.0.0\n"))
	assert.Contains(t, out, "OS/Arch:    linux/amd64")
}
