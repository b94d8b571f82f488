package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mutapath.dev/pkg/mutapath/internal/domain"
	m "mutapath.dev/pkg/mutapath/internal/model"
)

func TestFetchCmd_UsesDefaultSnapshotFile(t *testing.T) {
	mockWorkflow := swapWorkflow(t)

	cmd := newTestRoot(newFetchCmd())

	out := &bytes.Buffer{}
	cmd.SetOut(out)

	mockWorkflow.On("Fetch", mock.Anything, mock.MatchedBy(func(args domain.FetchArgs) bool {
		return args.SnapshotFile == m.Path(defaultSnapshotFile)
	})).Return("deadbeef", nil)

	cmd.SetArgs([]string{"fetch"})
	err := cmd.Execute()
	require.NoError(t, err)

	assert.Contains(t, out.String(), defaultSnapshotFile)
	assert.Contains(t, out.String(), "deadbeef")

	mockWorkflow.AssertExpectations(t)
}

func TestFetchCmd_HonorsSnapshotFlag(t *testing.T) {
	mockWorkflow := swapWorkflow(t)

	cmd := newTestRoot(newFetchCmd())

	mockWorkflow.On("Fetch", mock.Anything, mock.MatchedBy(func(args domain.FetchArgs) bool {
		return args.SnapshotFile == m.Path("custom.json")
	})).Return("deadbeef", nil)

	cmd.SetArgs([]string{"fetch", "--snapshot", "custom.json"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}
