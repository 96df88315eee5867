package gcp

import (
	"context"
	"errors"
	"testing"
	"time"

	internal_gcp "github.com/Fedja/cloud-tools/internal/clouds/gcp"
	"github.com/Fedja/cloud-tools/pkg/logger"
	"github.com/Fedja/cloud-tools/pkg/models"
	"github.com/Fedja/cloud-tools/pkg/shell"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap/zapcore"
)

type recordedCall struct {
	name string
	args []string
}

type fakeRunner struct {
	calls    []recordedCall
	exitCode int
	stdout   string
	stderr   string
	block    bool
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) *shell.Output {
	f.calls = append(f.calls, recordedCall{name: name, args: args})
	if f.block {
		<-ctx.Done()
		return shell.NewCompletedOutput(name, args, -1, "", "", ctx.Err())
	}

	var err error
	if f.exitCode != 0 {
		err = errors.New("exit status 1")
	}
	return shell.NewCompletedOutput(name, args, f.exitCode, f.stdout, f.stderr, err)
}

type ClusterCreatorTestSuite struct {
	suite.Suite
	ctx    context.Context
	log    *logger.TestLogger
	runner *fakeRunner
}

func (s *ClusterCreatorTestSuite) SetupTest() {
	s.log = logger.NewTestLogger(s.T())
	s.ctx = logger.IntoContext(context.Background(), s.log.Logger)
	s.runner = &fakeRunner{}
}

func (s *ClusterCreatorTestSuite) TestCreateSuccess() {
	s.runner.stdout = "Waiting for cluster creation operation...done."
	creator := NewClusterCreator(s.runner, ClusterCreatorOptions{IgnoreExisting: true})

	result, err := creator.Create(s.ctx, models.NewClusterConfig("foo"))

	s.Require().NoError(err)
	s.Equal(StatusCreated, result.Status)
	s.Require().Len(s.runner.calls, 1)
	s.Equal("gcloud", s.runner.calls[0].name)
	s.Equal(result.Command.Args, s.runner.calls[0].args)
	s.Contains(s.log.GetLogs(), "Created cluster foo")
}

func (s *ClusterCreatorTestSuite) TestCreateUsesConfiguredBinary() {
	creator := NewClusterCreator(s.runner, ClusterCreatorOptions{GCloudBinary: "/usr/lib/gcloud"})

	_, err := creator.Create(s.ctx, models.NewClusterConfig("foo"))

	s.Require().NoError(err)
	s.Equal("/usr/lib/gcloud", s.runner.calls[0].name)
}

func (s *ClusterCreatorTestSuite) TestUnknownMasterFailsBeforeRunning() {
	cfg := models.NewClusterConfig("foo")
	cfg.MasterMachineType = "bogus-type"
	creator := NewClusterCreator(s.runner, ClusterCreatorOptions{IgnoreExisting: true})

	_, err := creator.Create(s.ctx, cfg)

	s.True(errors.Is(err, internal_gcp.ErrUnknownMachineType))
	s.Empty(s.runner.calls)
}

func (s *ClusterCreatorTestSuite) TestMissingNameFailsBeforeRunning() {
	creator := NewClusterCreator(s.runner, ClusterCreatorOptions{})

	_, err := creator.Create(s.ctx, models.NewClusterConfig(""))

	s.ErrorIs(err, models.ErrMissingClusterName)
	s.Empty(s.runner.calls)
}

func (s *ClusterCreatorTestSuite) TestAlreadyExistsIgnored() {
	s.runner.exitCode = 1
	s.runner.stderr = "ERROR: (gcloud.dataproc.clusters.create) ALREADY_EXISTS: Already exists: Failed to create cluster: Cluster projects/p/regions/global/clusters/foo"
	creator := NewClusterCreator(s.runner, ClusterCreatorOptions{IgnoreExisting: true})

	result, err := creator.Create(s.ctx, models.NewClusterConfig("foo"))

	s.NoError(err)
	s.Equal(StatusAlreadyExists, result.Status)
	s.Contains(s.log.GetLogs(), "Cluster foo already exists, nothing to do")
	entries := s.log.Entries()
	last := entries[len(entries)-1]
	s.Equal(zapcore.WarnLevel, last.Level)
	s.Equal(int64(1), last.ContextMap()["exit_code"])
}

func (s *ClusterCreatorTestSuite) TestAlreadyExistsReported() {
	s.runner.exitCode = 1
	s.runner.stderr = "ERROR: (gcloud.dataproc.clusters.create) Already exists: Failed to create cluster"
	creator := NewClusterCreator(s.runner, ClusterCreatorOptions{IgnoreExisting: false})

	result, err := creator.Create(s.ctx, models.NewClusterConfig("foo"))

	s.ErrorIs(err, ErrClusterAlreadyExists)
	s.Equal(StatusAlreadyExists, result.Status)
}

func (s *ClusterCreatorTestSuite) TestOtherFailuresAreReported() {
	s.runner.exitCode = 1
	s.runner.stderr = "ERROR: (gcloud.dataproc.clusters.create) PERMISSION_DENIED: Request had insufficient authentication scopes."
	creator := NewClusterCreator(s.runner, ClusterCreatorOptions{IgnoreExisting: true})

	_, err := creator.Create(s.ctx, models.NewClusterConfig("foo"))

	var createErr *CreateError
	s.Require().True(errors.As(err, &createErr))
	s.Equal("foo", createErr.Cluster)
	s.Equal(1, createErr.ExitCode)
	s.Contains(createErr.Output, "PERMISSION_DENIED")
	s.Contains(err.Error(), "gcloud exited with status 1")
	s.False(errors.Is(err, ErrClusterAlreadyExists))
}

func (s *ClusterCreatorTestSuite) TestTimeout() {
	s.runner.block = true
	creator := NewClusterCreator(s.runner, ClusterCreatorOptions{Timeout: 20 * time.Millisecond})

	_, err := creator.Create(s.ctx, models.NewClusterConfig("foo"))

	var createErr *CreateError
	s.Require().True(errors.As(err, &createErr))
	s.ErrorIs(err, context.DeadlineExceeded)
	s.Equal(-1, createErr.ExitCode)
}

func (s *ClusterCreatorTestSuite) TestCommandDoesNotRun() {
	creator := NewClusterCreator(s.runner, ClusterCreatorOptions{})

	cmd, err := creator.Command(models.NewClusterConfig("foo"))

	s.Require().NoError(err)
	s.Equal("gcloud", cmd.Name)
	s.Empty(s.runner.calls)
}

func TestClusterCreatorSuite(t *testing.T) {
	suite.Run(t, new(ClusterCreatorTestSuite))
}

func TestIsAlreadyExistsOutput(t *testing.T) {
	s := []struct {
		output   string
		expected bool
	}{
		{"ALREADY_EXISTS: Already exists: Failed to create cluster", true},
		{"Cluster foo already exists", true},
		{"PERMISSION_DENIED", false},
		{"", false},
	}
	for _, tc := range s {
		if got := IsAlreadyExistsOutput(tc.output); got != tc.expected {
			t.Errorf("IsAlreadyExistsOutput(%q) = %v, want %v", tc.output, got, tc.expected)
		}
	}
}
