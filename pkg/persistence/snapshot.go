// Package persistence implements the snapshot container format used for the
// interaction graph and the mapping tables.
//
// A snapshot file is a single framed gob payload:
//
//	[Magic(1)][Version(1)][Length(8)][CRC32(4)][Payload(N)]
//
// The CRC covers the payload only. The frame makes truncated or corrupted
// data files fail loudly at load time instead of surfacing as garbage query
// results.
package persistence

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
)

const (
	// MagicByte identifies a BiographDB snapshot file.
	MagicByte = 0xB1

	// FormatVersion is bumped on incompatible payload changes.
	FormatVersion = 1

	// headerSize is 1 (magic) + 1 (version) + 8 (length) + 4 (crc32).
	headerSize = 14
)

var (
	// ErrInvalidMagic indicates the file is not a snapshot or lost sync.
	ErrInvalidMagic = errors.New("invalid magic byte")
	// ErrUnsupportedVersion indicates a snapshot written by an incompatible release.
	ErrUnsupportedVersion = errors.New("unsupported snapshot version")
	// ErrChecksumMismatch indicates payload corruption.
	ErrChecksumMismatch = errors.New("crc32 checksum mismatch")
	// ErrTruncated indicates the file ended before the declared payload length.
	ErrTruncated = errors.New("truncated snapshot")
)

// Write encodes payload with gob and writes a single framed snapshot to w.
func Write(w io.Writer, payload any) error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(payload); err != nil {
		return fmt.Errorf("snapshot encode: %w", err)
	}
	body := buf.Bytes()

	header := make([]byte, headerSize)
	header[0] = MagicByte
	header[1] = FormatVersion
	binary.BigEndian.PutUint64(header[2:10], uint64(len(body)))
	binary.BigEndian.PutUint32(header[10:14], crc32.ChecksumIEEE(body))

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err := w.Write(body)
	return err
}

// Read decodes a framed snapshot from r into out.
func Read(r io.Reader, out any) error {
	header := make([]byte, headerSize)
	if _, err := io.ReadFull(r, header); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return ErrTruncated
		}
		return err
	}
	if header[0] != MagicByte {
		return ErrInvalidMagic
	}
	if header[1] != FormatVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrUnsupportedVersion, header[1], FormatVersion)
	}

	length := binary.BigEndian.Uint64(header[2:10])
	sum := binary.BigEndian.Uint32(header[10:14])

	body := make([]byte, length)
	if _, err := io.ReadFull(r, body); err != nil {
		return ErrTruncated
	}
	if crc32.ChecksumIEEE(body) != sum {
		return ErrChecksumMismatch
	}
	return gob.NewDecoder(bytes.NewReader(body)).Decode(out)
}

// Save writes a snapshot atomically: the frame goes to a temp file in the
// same directory which is renamed over the destination on success.
func Save(path string, payload any) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".snapshot-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	bw := bufio.NewWriter(tmp)
	if err := Write(bw, payload); err != nil {
		tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Load reads a snapshot file into out.
func Load(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Read(bufio.NewReader(f), out)
}

