package cmd

import (
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mutapath.dev/pkg/mutapath/internal/domain"
	m "mutapath.dev/pkg/mutapath/internal/model"
)

func TestViewCmd(t *testing.T) {
	mockWorkflow := swapWorkflow(t)

	cmd := newTestRoot(newViewCmd())

	mockWorkflow.On("View", mock.Anything, mock.MatchedBy(func(args domain.ViewArgs) bool {
		return args.Type == m.TypeName("geom::Vec2") && args.Output == m.Path(defaultGuidesDir)
	})).Return(nil)

	cmd.SetArgs([]string{"view", "geom::Vec2"})
	err := cmd.Execute()
	require.NoError(t, err)

	mockWorkflow.AssertExpectations(t)
}

func TestViewCmd_RequiresExactlyOneType(t *testing.T) {
	swapWorkflow(t)

	cmd := newTestRoot(newViewCmd())

	cmd.SetArgs([]string{"view"})
	require.Error(t, cmd.Execute())

	cmd = newTestRoot(newViewCmd())

	cmd.SetArgs([]string{"view", "geom::Vec2", "geom::Shape"})
	require.Error(t, cmd.Execute())
}
