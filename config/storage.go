package config

type StorageConfig struct {
	JobsRoot string
}

// Job directories are never reclaimed automatically; cleanup is an external
// concern.
func GetStorageConfig() *StorageConfig {
	return &StorageConfig{
		JobsRoot: getEnvString("JOBS_ROOT", "jobs"),
	}
}
