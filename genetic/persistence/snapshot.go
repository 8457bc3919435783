package persistence

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// Snapshots are zstd-compressed msgpack documents

// Encode writes dto to w
func Encode[S any](w io.Writer, dto PopulationDTO[S]) error {
	zw, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if err := msgpack.NewEncoder(zw).Encode(dto); err != nil {
		zw.Close()
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return zw.Close()
}

// Decode reads one snapshot from r
func Decode[S any](r io.Reader) (PopulationDTO[S], error) {
	var dto PopulationDTO[S]
	zr, err := zstd.NewReader(r)
	if err != nil {
		return dto, err
	}
	defer zr.Close()

	if err := msgpack.NewDecoder(zr).Decode(&dto); err != nil {
		return dto, fmt.Errorf("decode snapshot: %w", err)
	}
	return dto, nil
}

// SaveFile writes dto to path, creating parent directories
func SaveFile[S any](path string, dto PopulationDTO[S]) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return Encode(f, dto)
}

func LoadFile[S any](path string) (PopulationDTO[S], error) {
	f, err := os.Open(path)
	if err != nil {
		return PopulationDTO[S]{}, err
	}
	defer f.Close()
	return Decode[S](f)
}
