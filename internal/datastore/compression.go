package datastore

import (
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog"
)

// compressionOption maps a codec name to a parquet writer option
func compressionOption(codec string, logger zerolog.Logger) parquet.WriterOption {
	switch strings.ToLower(codec) {
	case "snappy":
		return parquet.Compression(&parquet.Snappy)
	case "gzip":
		return parquet.Compression(&parquet.Gzip)
	case "zstd", "":
		return parquet.Compression(&parquet.Zstd)
	case "none", "uncompressed":
		return parquet.Compression(&parquet.Uncompressed)
	default:
		logger.Warn().Str("codec", codec).Msg("Unsupported compression codec string, defaulting to Uncompressed")
		return parquet.Compression(&parquet.Uncompressed)
	}
}
