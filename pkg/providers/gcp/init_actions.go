package gcp

const (
	// DefaultInitAction starts the notebook on every cluster.
	DefaultInitAction = "gs://labbott/init_notebook2.py"
	// VEPInitAction installs the Variant Effect Predictor.
	VEPInitAction = "gs://hail-common/vep/vep/vep85-init.sh"
)

func InitializationActions(vep bool) string {
	if vep {
		return DefaultInitAction + "," + VEPInitAction
	}
	return DefaultInitAction
}
