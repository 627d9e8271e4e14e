package config

const (
	StorageBackendS3 = "s3"
	StorageBackendFS = "fs"
)

type Storage struct {
	Backend string `env:"STORAGE_BACKEND" envDefault:"s3" validate:"oneof=s3 fs"`
	Bucket  string `env:"STORAGE_BUCKET" envDefault:"cloudshop-data-bucket" validate:"required,bucketname"`

	// S3 options. Endpoint and path-style addressing are for S3-compatible stores.
	Region       string `env:"STORAGE_REGION"`
	Endpoint     string `env:"STORAGE_ENDPOINT" validate:"omitempty,url"`
	UsePathStyle bool   `env:"STORAGE_USE_PATH_STYLE"`

	BaseDir string `env:"STORAGE_BASE_DIR" envDefault:"./data" validate:"required_if=Backend fs"`
}
