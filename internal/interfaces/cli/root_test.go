package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecute_ReleasesResourcesWhenCommandFails(t *testing.T) {
	var flushed, closed int
	a := &app{
		tracerShutdown: func(context.Context) error { flushed++; return nil },
		logCloser:      func() { closed++ },
	}
	root := newRootCmd(a)
	root.AddCommand(&cobra.Command{
		Use:               "boom",
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE:              func(*cobra.Command, []string) error { return errors.New("boom failed") },
	})
	root.SetArgs([]string{"boom"})

	err := a.execute(context.Background(), root)
	require.EqualError(t, err, "boom failed")
	assert.Equal(t, 1, flushed)
	assert.Equal(t, 1, closed)

	a.close()
	assert.Equal(t, 1, flushed)
	assert.Equal(t, 1, closed)
}

func TestMaskKey(t *testing.T) {
	assert.Contains(t, maskKey(""), "not set")
	assert.Equal(t, "****", maskKey("abcd"))
	assert.Equal(t, "********cdef", maskKey("sk-ant-abcdef"))
}
