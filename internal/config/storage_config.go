package config

// StorageConfig defines the optional parquet export of findings
type StorageConfig struct {
	ParquetFile      string `json:"parquet_file,omitempty" yaml:"parquet_file,omitempty"`
	CompressionCodec string `json:"compression_codec,omitempty" yaml:"compression_codec,omitempty" validate:"codec"`
}

// NewDefaultStorageConfig creates default storage configuration
func NewDefaultStorageConfig() StorageConfig {
	return StorageConfig{
		CompressionCodec: DefaultStorageCompressionCodec,
	}
}

// ExportEnabled reports whether findings should be written to parquet
func (c StorageConfig) ExportEnabled() bool {
	return c.ParquetFile != ""
}
