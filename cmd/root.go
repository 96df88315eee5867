package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Fedja/cloud-tools/pkg/display"
	"github.com/Fedja/cloud-tools/pkg/logger"
	"github.com/Fedja/cloud-tools/pkg/models"
	"github.com/Fedja/cloud-tools/pkg/providers/gcp"
	"github.com/Fedja/cloud-tools/pkg/shell"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var VersionNumber = "v0.1.0"

const (
	DefaultConfigName = ".start-cluster"
	DefaultConfigType = "yaml"
)

// clusterFlagKeys are the flags that a config file may also provide.
var clusterFlagKeys = []string{
	models.KeyName,
	models.KeyImageVersion,
	models.KeyMasterMachineType,
	models.KeyMasterBootDiskSize,
	models.KeyNumMasterLocalSSDs,
	models.KeyNumPreemptibleWorkers,
	models.KeyNumWorkerLocalSSDs,
	models.KeyNumWorkers,
	models.KeyPreemptibleWorkerBootDiskSize,
	models.KeyWorkerBootDiskSize,
	models.KeyWorkerMachineType,
	models.KeyZone,
	models.KeyProperties,
	models.KeyVEP,
	models.KeyProject,
	models.KeyRegion,
}

// Dependencies are the collaborators the commands talk to. Zero values
// fall back to running real processes and drawing no spinner.
type Dependencies struct {
	Runner      shell.Runner
	SpinnerFile *os.File
}

type rootOptions struct {
	cfgFile        string
	gcloudBinary   string
	ignoreExisting bool
	dryRun         bool
	output         string
	timeout        time.Duration
	logLevel       string
	logFile        string
	verbose        bool
}

// NewRootCmd builds the start-cluster command with its own viper instance.
func NewRootCmd(deps Dependencies) *cobra.Command {
	opts := &rootOptions{}
	v := viper.New()
	models.SetDefaults(v)

	rootCmd := &cobra.Command{
		Use:   "start-cluster",
		Short: "Start a Dataproc cluster tuned for Spark",
		Long: `start-cluster creates a Google Cloud Dataproc cluster through
'gcloud dataproc clusters create', filling in machine types, disk sizes,
worker counts, Spark/HDFS tuning properties and initialization actions.

Only --name is required. Aliases: --master/-m, --worker/-w,
--n-workers/-nw, --n-pre-workers/-np.`,
		Example: `  start-cluster --name my-cluster
  start-cluster -n my-cluster -m n1-standard-16 -nw 8 --vep
  start-cluster -n my-cluster --dry-run --output table`,
		Version:       VersionNumber,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogger(cmd, opts); err != nil {
				return err
			}
			return initConfig(cmd, v, opts.cfgFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreateCluster(cmd, v, opts, deps)
		},
	}

	flags := rootCmd.Flags()
	flags.SortFlags = false
	flags.SetNormalizeFunc(normalizeFlagAliases)

	flags.StringP(models.KeyName, "n", "", "Name of cluster (required).")
	flags.String(models.KeyImageVersion, models.DefaultImageVersion,
		"Google Dataproc image version.")
	flags.StringP(models.KeyMasterMachineType, "m", models.DefaultMasterMachineType,
		"Master machine type.")
	flags.String(models.KeyMasterBootDiskSize, models.DefaultMasterBootDiskSize,
		"Disk size of master machine.")
	flags.String(models.KeyNumMasterLocalSSDs, models.DefaultNumMasterLocalSSDs,
		"Number of local SSDs to attach to the master machine.")
	flags.String(models.KeyNumPreemptibleWorkers, models.DefaultNumPreemptibleWorkers,
		"Number of preemptible worker machines.")
	flags.String(models.KeyNumWorkerLocalSSDs, models.DefaultNumWorkerLocalSSDs,
		"Number of local SSDs to attach to each worker machine.")
	flags.String(models.KeyNumWorkers, models.DefaultNumWorkers,
		"Number of worker machines.")
	flags.String(models.KeyPreemptibleWorkerBootDiskSize, models.DefaultPreemptibleWorkerBootDiskSize,
		"Disk size of preemptible machines.")
	flags.String(models.KeyWorkerBootDiskSize, models.DefaultWorkerBootDiskSize,
		"Disk size of worker machines.")
	flags.StringP(models.KeyWorkerMachineType, "w", models.DefaultWorkerMachineType,
		"Worker machine type.")
	flags.String(models.KeyZone, models.DefaultZone, "Compute zone for the cluster.")
	flags.String(models.KeyProperties, "",
		"Additional configuration properties for the cluster, appended to the tuned defaults.")
	flags.Bool(models.KeyVEP, false, "Add the VEP initialization action.")
	flags.String(models.KeyProject, "", "Google Cloud project. Uses the gcloud default when empty.")
	flags.String(models.KeyRegion, "", "Dataproc region. Uses the gcloud default when empty.")

	flags.StringVar(&opts.gcloudBinary, "gcloud", gcp.DefaultGCloudBinary,
		"Path to the gcloud binary.")
	flags.BoolVar(&opts.ignoreExisting, "ignore-existing", true,
		"Treat an already existing cluster as success.")
	flags.BoolVar(&opts.dryRun, "dry-run", false,
		"Print the gcloud command instead of running it.")
	flags.StringVarP(&opts.output, "output", "o", display.OutputText,
		fmt.Sprintf("Dry-run output format, one of: %s.", strings.Join(display.OutputFormats, ", ")))
	flags.DurationVar(&opts.timeout, "timeout", 0,
		"Give up on gcloud after this long. Zero waits forever.")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&opts.cfgFile, "config", "",
		fmt.Sprintf("config file (default is $HOME/%s.%s)", DefaultConfigName, DefaultConfigType))
	persistent.StringVar(&opts.logLevel, "log-level", logger.InfoLogLevel,
		"Log level: debug, info, warn or error.")
	persistent.StringVar(&opts.logFile, "log-file", "", "Also write logs to this file.")
	persistent.BoolVarP(&opts.verbose, "verbose", "v", false, "Same as --log-level=debug.")

	for _, key := range clusterFlagKeys {
		cobra.CheckErr(v.BindPFlag(key, flags.Lookup(key)))
	}

	rootCmd.AddCommand(newMachineTypesCmd())

	return rootCmd
}

func initLogger(cmd *cobra.Command, opts *rootOptions) error {
	level := opts.logLevel
	if opts.verbose {
		level = logger.DebugLogLevel
	}

	if err := logger.Initialize(logger.Config{
		Level:         level,
		FilePath:      opts.logFile,
		EnableConsole: true,
		Console:       cmd.ErrOrStderr(),
	}); err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logger.IntoContext(ctx, logger.Get()))
	return nil
}

// initConfig reads in the config file, if any. An explicit --config must
// exist; the default one in $HOME is optional.
func initConfig(cmd *cobra.Command, v *viper.Viper, cfgFile string) error {
	l := logger.FromContext(cmd.Context())

	if cfgFile != "" {
		path, err := homedir.Expand(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to expand config path: %w", err)
		}
		v.SetConfigFile(path)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			l.Debugf("No home directory, skipping default config: %v", err)
			return nil
		}
		v.AddConfigPath(home)
		v.SetConfigType(DefaultConfigType)
		v.SetConfigName(DefaultConfigName)
	}

	if err := models.ReadConfigFile(v); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	l.Debugf("Using config file: %s", v.ConfigFileUsed())
	return nil
}

func runCreateCluster(cmd *cobra.Command, v *viper.Viper, opts *rootOptions, deps Dependencies) error {
	cfg := models.ReadClusterConfigFromViper(v)
	if cfg.Name == "" {
		return fmt.Errorf("%w: pass --name/-n or set name in the config file", models.ErrMissingClusterName)
	}
	if err := display.ValidateOutputFormat(opts.output); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	ctx := cmd.Context()
	l := logger.FromContext(ctx)

	creator := gcp.NewClusterCreator(deps.Runner, gcp.ClusterCreatorOptions{
		GCloudBinary:   opts.gcloudBinary,
		IgnoreExisting: opts.ignoreExisting,
		Timeout:        opts.timeout,
	})

	if opts.dryRun {
		command, err := creator.Command(cfg)
		if err != nil {
			return err
		}
		return display.RenderCommand(cmd.OutOrStdout(), opts.output, cfg, command)
	}

	stop := display.StartSpinner(deps.SpinnerFile, fmt.Sprintf("Creating cluster %s", cfg.Name))
	result, err := creator.Create(ctx, cfg)
	stop()
	if err != nil {
		return err
	}

	l.Debugf("Cluster %s finished with status %s", cfg.Name, result.Status)
	return nil
}

// Execute runs the root command against os.Args. SIGINT and SIGTERM
// cancel a running gcloud.
func Execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	defer logger.Close()

	rootCmd := NewRootCmd(Dependencies{
		Runner:      shell.NewExecRunner(),
		SpinnerFile: os.Stderr,
	})
	rootCmd.SetArgs(NormalizeLegacyArgs(os.Args[1:]))
	return rootCmd.ExecuteContext(ctx)
}
