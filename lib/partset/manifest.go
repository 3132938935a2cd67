// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package partset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

// ManifestVersion is the current manifest format version.
const ManifestVersion = 1

// ManifestSuffix is appended to prefix+part extension to name a
// manifest: p.mp4.manifest, rows.csv.manifest.
const ManifestSuffix = ".manifest"

// Manifest declares the exact contents of a part set. Joining against
// a manifest uses its PartCount, so a missing part is an error instead
// of a silent truncation. Stored on disk as CBOR using Core
// Deterministic Encoding.
type Manifest struct {
	// Version is the manifest format version. Currently 1.
	Version int `json:"version"`

	// SetID is a random UUID assigned when the part set is written.
	SetID string `json:"set_id"`

	// Pipeline is "binary" or "lines".
	Pipeline string `json:"pipeline"`

	// Source is the base name of the chunked file.
	Source string `json:"source"`

	// Extension is the source's extension; the reconstructed file is
	// named after it.
	Extension string `json:"extension"`

	// Prefix is the part name prefix as given to the chunk operation.
	Prefix string `json:"prefix"`

	// PartExtension is appended to every part name.
	PartExtension string `json:"part_extension"`

	// SourceSize is the number of bytes read from the source.
	SourceSize int64 `json:"source_size"`

	// PartCount is the declared number of parts.
	PartCount int `json:"part_count"`

	// Parts lists every part in order.
	Parts []ManifestPart `json:"parts"`
}

// ManifestPart is one entry of [Manifest.Parts].
type ManifestPart struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	Size   int64  `json:"size"`
	// Lines is the data line count of a line part.
	Lines int `json:"lines,omitempty"`
}

var manifestEncMode cbor.EncMode

var manifestDecMode cbor.DecMode

func init() {
	var err error
	manifestEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("partset: CBOR encoder initialization failed: " + err.Error())
	}

	manifestDecMode, err = cbor.DecOptions{}.DecMode()
	if err != nil {
		panic("partset: CBOR decoder initialization failed: " + err.Error())
	}
}

// ManifestPath returns the manifest file name for a part set.
func ManifestPath(prefix, partExtension string) string {
	return prefix + partExtension + ManifestSuffix
}

// NewManifest describes the parts in result under a fresh set ID.
func NewManifest(result *ChunkResult) *Manifest {
	manifest := &Manifest{
		Version:       ManifestVersion,
		SetID:         uuid.NewString(),
		Pipeline:      result.Pipeline,
		Source:        filepath.Base(result.Source),
		Extension:     Extension(result.Source),
		Prefix:        result.Prefix,
		PartExtension: result.Extension,
		SourceSize:    result.SourceSize,
		PartCount:     len(result.Parts),
		Parts:         make([]ManifestPart, 0, len(result.Parts)),
	}
	for _, part := range result.Parts {
		manifest.Parts = append(manifest.Parts, ManifestPart{
			Number: part.Number,
			Name:   filepath.Base(part.Path),
			Size:   part.Size,
			Lines:  part.Lines,
		})
	}
	return manifest
}

// Sequence returns the counted sequence the manifest declares. Parts
// are looked up next to the manifest file, so a part set moved as a
// whole still joins.
func (m *Manifest) Sequence(manifestPath string) Sequence {
	_, name := filepath.Split(m.Prefix)
	prefix := filepath.Dir(manifestPath) + string(filepath.Separator) + name
	return Sequence{Prefix: prefix, Extension: m.PartExtension, Count: m.PartCount}
}

// Validate checks that the manifest is internally consistent.
func (m *Manifest) Validate() error {
	if m.Version < 1 {
		return fmt.Errorf("version %d is invalid (minimum 1)", m.Version)
	}
	if _, err := uuid.Parse(m.SetID); err != nil {
		return fmt.Errorf("set id %q: %w", m.SetID, err)
	}
	if PipelineByName(m.Pipeline) == nil {
		return fmt.Errorf("unknown pipeline %q", m.Pipeline)
	}
	if m.Prefix == "" {
		return fmt.Errorf("prefix is empty")
	}
	if m.SourceSize < 0 {
		return fmt.Errorf("source size %d is negative", m.SourceSize)
	}
	if m.PartCount != len(m.Parts) {
		return fmt.Errorf("part count %d does not match %d listed parts", m.PartCount, len(m.Parts))
	}

	for i, part := range m.Parts {
		if part.Number != i+1 {
			return fmt.Errorf("part %d: number %d out of sequence", i, part.Number)
		}
		if want := filepath.Base(PartName(m.Prefix, part.Number, m.PartExtension)); part.Name != want {
			return fmt.Errorf("part %d: name %q, want %q", part.Number, part.Name, want)
		}
		if part.Size < 0 {
			return fmt.Errorf("part %d: size %d is negative", part.Number, part.Size)
		}
	}
	return nil
}

// MarshalManifest encodes a manifest to CBOR.
func MarshalManifest(manifest *Manifest) ([]byte, error) {
	data, err := manifestEncMode.Marshal(manifest)
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	return data, nil
}

// UnmarshalManifest decodes a CBOR manifest. Unknown fields are
// ignored.
func UnmarshalManifest(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := manifestDecMode.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("decoding manifest: %w", err)
	}
	if manifest.Version < 1 {
		return nil, fmt.Errorf("manifest version %d is invalid (minimum 1)", manifest.Version)
	}
	return &manifest, nil
}

// WriteManifest writes manifest to path via a temporary file in the
// same directory and an atomic rename, so a reader never sees a
// partial manifest.
func WriteManifest(path string, manifest *Manifest) error {
	if err := manifest.Validate(); err != nil {
		return fmt.Errorf("invalid manifest: %w", err)
	}
	data, err := MarshalManifest(manifest)
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(path), ".manifest-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp manifest file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing manifest data: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing manifest file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming manifest to %s: %w", path, err)
	}

	success = true
	return nil
}

// ReadManifest reads and validates the manifest at path.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	manifest, err := UnmarshalManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return manifest, nil
}
