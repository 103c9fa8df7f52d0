package config

import "strings"

const (
	StorageProviderS3    = "s3"
	StorageProviderGCS   = "gcs"
	StorageProviderLocal = "local"
)

type StorageConfig struct {
	Provider string              `yaml:"provider"`
	Local    *LocalStorageConfig `yaml:"local"`
	AWS      *AWSStorageConfig   `yaml:"aws"`
	GCP      *GCPStorageConfig   `yaml:"gcp"`
}

type LocalStorageConfig struct {
	BasePath string `yaml:"base_path"`
	BaseURL  string `yaml:"base_url"`
}

type AWSStorageConfig struct {
	Region          string `yaml:"region"`
	Bucket          string `yaml:"bucket"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Endpoint        string `yaml:"endpoint"`
	CDNDomain       string `yaml:"cdn_domain"`
}

type GCPStorageConfig struct {
	Bucket          string `yaml:"bucket"`
	CredentialsFile string `yaml:"credentials_file"`
	CDNDomain       string `yaml:"cdn_domain"`
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Provider: strings.ToLower(getEnv("STORAGE_PROVIDER", StorageProviderS3)),
		Local: &LocalStorageConfig{
			BasePath: getEnv("STORAGE_LOCAL_PATH", ""),
			BaseURL:  getEnv("STORAGE_LOCAL_URL", "http://localhost:7000/uploads"),
		},
		AWS: &AWSStorageConfig{
			Region:          getEnv("AWS_S3_REGION", "ap-northeast-2"),
			Bucket:          getEnv("AWS_S3_BUCKET_NAME", ""),
			AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
			Endpoint:        getEnv("AWS_S3_ENDPOINT", ""),
			CDNDomain:       getEnv("AWS_CLOUDFRONT_DOMAIN", ""),
		},
		GCP: &GCPStorageConfig{
			Bucket:          getEnv("GCP_STORAGE_BUCKET", ""),
			CredentialsFile: getEnv("GCP_CREDENTIALS_FILE", ""),
			CDNDomain:       getEnv("GCP_CDN_DOMAIN", ""),
		},
	}
}

// IsConfigured reports whether the selected provider has enough settings
// to construct a client. An unconfigured provider leaves the upload
// endpoint answering with a configuration error.
func (s *StorageConfig) IsConfigured() bool {
	switch s.Provider {
	case StorageProviderS3:
		return s.AWS != nil &&
			s.AWS.AccessKeyID != "" &&
			s.AWS.SecretAccessKey != "" &&
			s.AWS.Bucket != ""
	case StorageProviderGCS:
		return s.GCP != nil && s.GCP.Bucket != ""
	case StorageProviderLocal:
		return s.Local != nil && s.Local.BasePath != ""
	default:
		return false
	}
}
