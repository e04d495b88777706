package providers

import (
	"errors"
	"fmt"

	"esv/internal/structures"

	"github.com/klauspost/compress/zstd"
)

// ErrDecompressedTooLarge is returned when a frame inflates past upload.maxBytes.
var ErrDecompressedTooLarge = errors.New("decompressed payload exceeds limit")

type CompressorInterface interface {
	Compress(val []byte) ([]byte, error)
	Decompress(val []byte) ([]byte, error)
	Close()
}

type ZstdCompression struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

func (z *ZstdCompression) Compress(val []byte) ([]byte, error) {
	return z.encoder.EncodeAll(val, make([]byte, 0, len(val)/2)), nil
}

func (z *ZstdCompression) Decompress(val []byte) ([]byte, error) {
	out, err := z.decoder.DecodeAll(val, nil)
	if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
		return nil, fmt.Errorf("%w: %w", ErrDecompressedTooLarge, err)
	}
	return out, err
}

func (z *ZstdCompression) Close() {
	_ = z.encoder.Close()
	z.decoder.Close()
}

func NewZstdCompressor(conf *structures.Config) (CompressorInterface, error) {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	opts := []zstd.DOption{zstd.WithDecoderConcurrency(0)}
	if conf.Upload.MaxBytes > 0 {
		opts = append(opts, zstd.WithDecoderMaxMemory(uint64(conf.Upload.MaxBytes)))
	}
	decoder, err := zstd.NewReader(nil, opts...)
	if err != nil {
		_ = encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &ZstdCompression{encoder: encoder, decoder: decoder}, nil
}
