package adapter

import (
	"errors"
	"testing"

	"github.com/mmcdole/cinelist/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type startCall struct {
	name string
	args []string
}

func newTestOpener(command string, args []string, goos string, inPath bool) (*Opener, *[]startCall) {
	var calls []startCall
	o := NewOpener(command, args, log.NullLogger())
	o.goos = goos
	o.lookup = func(name string) (string, error) {
		if inPath {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
	o.start = func(name string, args ...string) error {
		calls = append(calls, startCall{name: name, args: args})
		return nil
	}
	return o, &calls
}

const posterURL = "https://example.com/poster.jpg"

func TestOpener_SystemDefault(t *testing.T) {
	tests := []struct {
		goos string
		want startCall
	}{
		{"linux", startCall{"xdg-open", []string{posterURL}}},
		{"freebsd", startCall{"xdg-open", []string{posterURL}}},
		{"darwin", startCall{"open", []string{posterURL}}},
		{"windows", startCall{"cmd", []string{"/c", "start", "", posterURL}}},
	}
	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			o, calls := newTestOpener("", nil, tt.goos, true)
			require.NoError(t, o.Open(posterURL))
			require.Len(t, *calls, 1)
			assert.Equal(t, tt.want, (*calls)[0])
		})
	}
}

func TestOpener_ConfiguredCommand(t *testing.T) {
	args := []string{"--scale-down"}
	o, calls := newTestOpener("feh", args, "linux", true)
	require.NoError(t, o.Open(posterURL))
	require.Len(t, *calls, 1)
	assert.Equal(t, startCall{"feh", []string{"--scale-down", posterURL}}, (*calls)[0])

	require.NoError(t, o.Open(posterURL))
	assert.Equal(t, []string{"--scale-down"}, args, "configured args are not modified")
}

func TestOpener_MacAppNotInPath(t *testing.T) {
	o, calls := newTestOpener("Preview", []string{"-x"}, "darwin", false)
	require.NoError(t, o.Open(posterURL))
	require.Len(t, *calls, 1)
	assert.Equal(t, startCall{"open", []string{"-a", "Preview", "--args", "-x", posterURL}}, (*calls)[0])
}

func TestOpener_TrimsURL(t *testing.T) {
	o, calls := newTestOpener("", nil, "linux", true)
	require.NoError(t, o.Open("  "+posterURL+" "))
	require.Len(t, *calls, 1)
	assert.Equal(t, []string{posterURL}, (*calls)[0].args)
}

func TestOpener_InvalidURL(t *testing.T) {
	o, calls := newTestOpener("", nil, "linux", true)
	for _, url := range []string{"", "not a url", "poster.jpg"} {
		assert.ErrorIs(t, o.Open(url), ErrNoPoster, url)
	}
	assert.Empty(t, *calls)
}

func TestOpener_StartFailure(t *testing.T) {
	o, _ := newTestOpener("missing-viewer", nil, "linux", true)
	boom := errors.New("exec: not found")
	o.start = func(string, ...string) error { return boom }

	err := o.Open(posterURL)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "missing-viewer")
}
