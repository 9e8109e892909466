package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/static-mcpify/internal/core/domain"
	"github.com/custodia-labs/static-mcpify/internal/core/ports/driving"
)

// execute runs the root command with args and returns its output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// resetFlags restores every flag to its default so commands can run
// repeatedly in one process.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// mockInitService implements driving.InitService for testing.
type mockInitService struct {
	req   driving.InitRequest
	types []domain.ContentTypeInfo
	err   error
}

func (m *mockInitService) Init(_ context.Context, req driving.InitRequest) error {
	m.req = req
	return m.err
}

func (m *mockInitService) AvailableContentTypes(_ context.Context) ([]domain.ContentTypeInfo, error) {
	return m.types, m.err
}

// mockBuildService implements driving.BuildService for testing.
// It replays events through the progress callback.
type mockBuildService struct {
	opts   driving.BuildOptions
	events []driving.BuildEvent
	report *driving.BuildReport
	err    error
}

func (m *mockBuildService) Build(_ context.Context, opts driving.BuildOptions) (*driving.BuildReport, error) {
	m.opts = opts
	for _, ev := range m.events {
		if opts.Progress != nil {
			opts.Progress(ev)
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func useInitService(t *testing.T, service driving.InitService) {
	t.Helper()
	original := newInitService
	newInitService = func(string) (driving.InitService, error) { return service, nil }
	t.Cleanup(func() { newInitService = original })
}

func useBuildService(t *testing.T, service driving.BuildService) {
	t.Helper()
	original := newBuildService
	newBuildService = func(string) (driving.BuildService, error) { return service, nil }
	t.Cleanup(func() { newBuildService = original })
}
