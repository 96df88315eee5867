package gcp

import (
	"github.com/Fedja/cloud-tools/pkg/models"
	"github.com/kballard/go-shellquote"
)

const DefaultGCloudBinary = "gcloud"

// Command is a program and its argument vector. It is never passed
// through a shell.
type Command struct {
	Name string
	Args []string
}

// String renders the command quoted for a POSIX shell, for display only.
func (c Command) String() string {
	return shellquote.Join(append([]string{c.Name}, c.Args...)...)
}

func flagArg(key, value string) string {
	return "--" + key + "=" + value
}

// BuildCreateCommand lays out `gcloud dataproc clusters create` for cfg.
// properties and initActions are the already rendered flag values.
func BuildCreateCommand(
	gcloudBinary string,
	cfg models.ClusterConfig,
	properties string,
	initActions string,
) Command {
	if gcloudBinary == "" {
		gcloudBinary = DefaultGCloudBinary
	}

	args := []string{
		"dataproc", "clusters", "create",
		cfg.Name,
		flagArg(models.KeyImageVersion, cfg.ImageVersion),
		flagArg(models.KeyMasterMachineType, cfg.MasterMachineType),
		flagArg(models.KeyMasterBootDiskSize, cfg.MasterBootDiskSize),
		flagArg(models.KeyNumMasterLocalSSDs, cfg.NumMasterLocalSSDs),
		flagArg(models.KeyNumPreemptibleWorkers, cfg.NumPreemptibleWorkers),
		flagArg(models.KeyNumWorkerLocalSSDs, cfg.NumWorkerLocalSSDs),
		flagArg(models.KeyNumWorkers, cfg.NumWorkers),
		flagArg(models.KeyPreemptibleWorkerBootDiskSize, cfg.PreemptibleWorkerBootDiskSize),
		flagArg(models.KeyWorkerBootDiskSize, cfg.WorkerBootDiskSize),
		flagArg(models.KeyWorkerMachineType, cfg.WorkerMachineType),
		flagArg(models.KeyZone, cfg.Zone),
		flagArg(models.KeyProperties, properties),
		flagArg("initialization-actions", initActions),
	}
	if cfg.Project != "" {
		args = append(args, flagArg(models.KeyProject, cfg.Project))
	}
	if cfg.Region != "" {
		args = append(args, flagArg(models.KeyRegion, cfg.Region))
	}

	return Command{Name: gcloudBinary, Args: args}
}

// NewCreateCommand validates cfg, derives the properties and init actions
// and builds the command. Nothing is executed.
func NewCreateCommand(gcloudBinary string, cfg models.ClusterConfig) (Command, error) {
	if err := cfg.Validate(); err != nil {
		return Command{}, err
	}

	props, err := BuildProperties(cfg.MasterMachineType)
	if err != nil {
		return Command{}, err
	}

	return BuildCreateCommand(
		gcloudBinary,
		cfg,
		MergeProperties(props, cfg.Properties),
		InitializationActions(cfg.VEP),
	), nil
}
