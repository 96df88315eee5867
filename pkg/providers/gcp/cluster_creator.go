package gcp

import (
	"context"
	"fmt"
	"time"

	"github.com/Fedja/cloud-tools/pkg/logger"
	"github.com/Fedja/cloud-tools/pkg/models"
	"github.com/Fedja/cloud-tools/pkg/shell"
	"go.uber.org/zap"
)

type CreateStatus string

const (
	StatusCreated       CreateStatus = "created"
	StatusAlreadyExists CreateStatus = "already-exists"
)

type CreateResult struct {
	Status  CreateStatus
	Command Command
}

type ClusterCreatorOptions struct {
	// GCloudBinary defaults to DefaultGCloudBinary.
	GCloudBinary string
	// IgnoreExisting turns "cluster already exists" into a successful result.
	IgnoreExisting bool
	// Timeout bounds the gcloud invocation. Zero means no limit.
	Timeout time.Duration
}

// ClusterCreator runs `gcloud dataproc clusters create` and classifies the
// outcome.
type ClusterCreator struct {
	runner  shell.Runner
	options ClusterCreatorOptions
}

func NewClusterCreator(runner shell.Runner, options ClusterCreatorOptions) *ClusterCreator {
	if runner == nil {
		runner = shell.NewExecRunner()
	}
	if options.GCloudBinary == "" {
		options.GCloudBinary = DefaultGCloudBinary
	}
	return &ClusterCreator{runner: runner, options: options}
}

// Command returns what Create would run for cfg, without running it.
func (c *ClusterCreator) Command(cfg models.ClusterConfig) (Command, error) {
	return NewCreateCommand(c.options.GCloudBinary, cfg)
}

// Create validates cfg and runs gcloud once. gcloud's output is discarded
// on success. An "already exists" failure yields StatusAlreadyExists, and
// is an error only when IgnoreExisting is off. Every other failure is a
// *CreateError.
func (c *ClusterCreator) Create(ctx context.Context, cfg models.ClusterConfig) (CreateResult, error) {
	l := logger.FromContext(ctx)

	cmd, err := c.Command(cfg)
	if err != nil {
		return CreateResult{}, err
	}
	l.DebugWithFields("Creating Dataproc cluster",
		zap.String("cluster", cfg.Name),
		zap.String("command", cmd.String()),
	)

	if c.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.options.Timeout)
		defer cancel()
	}

	out := c.runner.Run(ctx, cmd.Name, cmd.Args...)
	if out.Succeeded() {
		l.InfoWithFields(fmt.Sprintf("Created cluster %s", cfg.Name),
			zap.String("zone", cfg.Zone),
			zap.String("master_machine_type", cfg.MasterMachineType),
		)
		return CreateResult{Status: StatusCreated, Command: cmd}, nil
	}

	combined := out.CombinedString()
	if ctx.Err() == nil && out.ExitCode > 0 && IsAlreadyExistsOutput(combined) {
		result := CreateResult{Status: StatusAlreadyExists, Command: cmd}
		if c.options.IgnoreExisting {
			l.WarnWithFields(fmt.Sprintf("Cluster %s already exists, nothing to do", cfg.Name),
				zap.Int("exit_code", out.ExitCode),
			)
			return result, nil
		}
		return result, fmt.Errorf("%w: %s", ErrClusterAlreadyExists, cfg.Name)
	}

	cause := out.Error
	if ctx.Err() != nil {
		cause = ctx.Err()
	}
	l.ErrorWithFields("gcloud failed",
		zap.String("cluster", cfg.Name),
		zap.Int("exit_code", out.ExitCode),
		zap.String("output", combined),
	)
	return CreateResult{Command: cmd}, &CreateError{
		Cluster:  cfg.Name,
		ExitCode: out.ExitCode,
		Output:   combined,
		Err:      cause,
	}
}
