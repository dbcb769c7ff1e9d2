// Package loader handles the host-side chores around the four-function
// core: decompressing a ROM image from disk (plain, gzip, zip, or 7z) and
// pairing it with its battery-RAM save file.
package loader

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/cespare/xxhash"
)

// LoadROM reads path and transparently decompresses it if its extension
// indicates a compressed archive (.gz/.zip/.7z); for a .zip or .7z
// archive, the first entry is used. Any other extension is returned
// verbatim, on the assumption it is already a raw ROM image.
func LoadROM(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var rom []byte
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		rom, err = decodeGzip(data)
	case ".zip":
		rom, err = decodeZip(data)
	case ".7z":
		rom, err = decodeSevenZip(data)
	default:
		rom, err = data, nil
	}
	if err != nil {
		return nil, err
	}

	slog.Info("rom loaded", "path", path, "size", len(rom), "checksum", xxhash.Sum64(rom))
	return rom, nil
}

func decodeGzip(data []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(r)
}

func decodeZip(data []byte) ([]byte, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, errors.New("loader: zip archive is empty")
	}
	f, err := r.File[0].Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

func decodeSevenZip(data []byte) ([]byte, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, errors.New("loader: 7z archive is empty")
	}
	f, err := r.File[0].Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// SavePath derives the battery-RAM sidecar path for a ROM file: the same
// path with its extension replaced by .sav.
func SavePath(romPath string) string {
	ext := filepath.Ext(romPath)
	return romPath[:len(romPath)-len(ext)] + ".sav"
}

// LoadSave reads the save-RAM sidecar for romPath. A missing sidecar is
// not an error — it means the cartridge has never been saved before —
// and is reported as (nil, nil).
func LoadSave(romPath string) ([]byte, error) {
	data, err := os.ReadFile(SavePath(romPath))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("save RAM loaded", "path", SavePath(romPath), "size", len(data), "checksum", xxhash.Sum64(data))
	return data, nil
}

// WriteSave persists save-RAM bytes returned by Emulator.Unload to
// romPath's sidecar file. A nil/empty ram (no battery) is a noop.
func WriteSave(romPath string, ram []byte) error {
	if len(ram) == 0 {
		return nil
	}
	path := SavePath(romPath)
	if err := os.WriteFile(path, ram, 0o644); err != nil {
		return err
	}
	slog.Debug("save RAM written", "path", path, "size", len(ram), "checksum", xxhash.Sum64(ram))
	return nil
}
