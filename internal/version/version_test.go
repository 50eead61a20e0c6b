package version

import (
	"bytes"
	"runtime/debug"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// TestVersionStrings ensures Short and Full return non-empty consistent information.
func TestVersionStrings(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Short())
	require.Contains(t, Full(), Short())
	require.Contains(t, Full(), Current().Platform)
}

// TestFillFromSettings prefers injected values over the VCS stamp.
func TestFillFromSettings(t *testing.T) {
	t.Parallel()

	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2026-10-18T07:00:00Z"},
	}

	info := Info{Commit: "none", BuildTime: "unknown"}
	fillFromSettings(&info, settings)
	require.Equal(t, "0123456", info.Commit)
	require.Equal(t, "2026-10-18T07:00:00Z", info.BuildTime)

	injected := Info{Commit: "feedbee", BuildTime: "yesterday"}
	fillFromSettings(&injected, settings)
	require.Equal(t, "feedbee", injected.Commit)
	require.Equal(t, "yesterday", injected.BuildTime)
}

// TestAttachCobraVersionCommand runs the subcommand with and without --short.
func TestAttachCobraVersionCommand(t *testing.T) {
	t.Parallel()

	root := &cobra.Command{Use: "alarm-clock"}
	AttachCobraVersionCommand(root)
	require.Equal(t, Short(), root.Version)

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "commit")

	out.Reset()
	root.SetArgs([]string{"version", "--short"})
	require.NoError(t, root.Execute())
	require.Equal(t, Short()+"\n", out.String())
}
