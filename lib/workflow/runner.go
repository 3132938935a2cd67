// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"fmt"
	"log/slog"
	"math"
	"path/filepath"

	"github.com/bureau-foundation/splitjoin/lib/config"
	"github.com/bureau-foundation/splitjoin/lib/partset"
)

// Observer receives progress as a Runner works. Every method is called
// synchronously from the Runner's goroutine.
type Observer interface {
	ChunkStarted(pipeline string)
	ChunkComplete(result *partset.ChunkResult)
	ManifestWritten(path string, manifest *partset.Manifest)
	JoinStarted(pipeline string)
	JoinComplete(pipeline string, result *partset.JoinResult)
}

// Runner performs chunk and join steps with logging.
type Runner struct {
	// Classifier selects the pipeline for a source.
	Classifier partset.Classifier

	// Logger receives step logs. Required.
	Logger *slog.Logger

	// Observer, when set, receives progress for console display.
	Observer Observer
}

// NewRunner creates a Runner from configuration.
func NewRunner(cfg *config.Config, logger *slog.Logger, observer Observer) *Runner {
	return &Runner{
		Classifier: partset.Classifier{
			BinaryExtensions: cfg.Classification.BinaryExtensions,
			TextExtensions:   cfg.Classification.TextExtensions,
		},
		Logger:   logger,
		Observer: observer,
	}
}

// MegabytesToBytes converts a whole-megabyte chunk size to bytes.
func MegabytesToBytes(megabytes int64) (int64, error) {
	if megabytes < 1 {
		return 0, fmt.Errorf("chunk size must be at least 1 MB, got %d", megabytes)
	}
	if megabytes > math.MaxInt64/config.BytesPerMegabyte {
		return 0, fmt.Errorf("chunk size %d MB is too large", megabytes)
	}
	return megabytes * config.BytesPerMegabyte, nil
}

// ChunkRequest describes a chunk step.
type ChunkRequest struct {
	// Source is the file to split.
	Source string

	// Prefix names the parts: prefix + number + extension.
	Prefix string

	// ChunkSize is the byte count per binary part, or the line
	// pipeline's content threshold.
	ChunkSize int64

	// WriteManifest records the part set next to the parts.
	WriteManifest bool
}

// ChunkReport is the outcome of a chunk step.
type ChunkReport struct {
	Pipeline string               `json:"pipeline"`
	Chunk    *partset.ChunkResult `json:"chunk"`

	// ManifestPath is set when a manifest was written.
	ManifestPath string `json:"manifest_path,omitempty"`

	// Manifest is the manifest that was written, if any.
	Manifest *partset.Manifest `json:"manifest,omitempty"`
}

// Chunk classifies request.Source and splits it. An unlisted extension
// returns a *partset.UnsupportedTypeError before anything is opened.
func (r *Runner) Chunk(request ChunkRequest) (*ChunkReport, error) {
	pipeline, err := r.Classifier.Classify(request.Source)
	if err != nil {
		return nil, err
	}
	return r.ChunkWith(pipeline, request)
}

// ChunkWith splits request.Source with an explicit pipeline.
func (r *Runner) ChunkWith(pipeline partset.Pipeline, request ChunkRequest) (*ChunkReport, error) {
	logger := r.Logger.With("pipeline", pipeline.Name(), "source", request.Source)
	logger.Info("chunking", "prefix", request.Prefix, "chunk_size", request.ChunkSize)
	if r.Observer != nil {
		r.Observer.ChunkStarted(pipeline.Name())
	}

	result, err := pipeline.Chunk(request.Source, request.Prefix, request.ChunkSize)
	if err != nil {
		if result != nil && len(result.Parts) > 0 {
			// Completed parts stay on disk; say which ones.
			logger.Warn("chunking failed after writing parts", "parts_written", len(result.Parts))
		}
		return nil, err
	}

	for _, part := range result.Parts {
		logger.Debug("part written", "number", part.Number, "path", part.Path, "size", part.Size, "lines", part.Lines)
	}
	logger.Info("chunked", "parts", len(result.Parts), "source_size", result.SourceSize)
	if r.Observer != nil {
		r.Observer.ChunkComplete(result)
	}

	report := &ChunkReport{Pipeline: pipeline.Name(), Chunk: result}
	if !request.WriteManifest {
		return report, nil
	}

	manifest := partset.NewManifest(result)
	manifestPath := partset.ManifestPath(result.Prefix, result.Extension)
	if err := partset.WriteManifest(manifestPath, manifest); err != nil {
		return nil, fmt.Errorf("writing manifest: %w", err)
	}
	logger.Info("manifest written", "path", manifestPath, "set_id", manifest.SetID)
	if r.Observer != nil {
		r.Observer.ManifestWritten(manifestPath, manifest)
	}
	report.ManifestPath = manifestPath
	report.Manifest = manifest
	return report, nil
}

// JoinRequest describes a join step.
type JoinRequest struct {
	Pipeline    partset.Pipeline
	Sequence    partset.Sequence
	Destination string
}

// Join reassembles a part set.
func (r *Runner) Join(request JoinRequest) (*partset.JoinResult, error) {
	name := request.Pipeline.Name()
	logger := r.Logger.With("pipeline", name, "destination", request.Destination)
	logger.Info("joining", "prefix", request.Sequence.Prefix, "extension", request.Sequence.Extension,
		"declared_parts", request.Sequence.Count)
	if r.Observer != nil {
		r.Observer.JoinStarted(name)
	}

	result, err := request.Pipeline.Join(request.Sequence, request.Destination)
	if err != nil {
		return nil, err
	}

	if request.Sequence.Count == 0 && len(result.Parts) == 0 {
		logger.Warn("no parts found; destination is empty", "first_part", request.Sequence.Path(1))
	}
	logger.Info("joined", "parts", len(result.Parts), "bytes", result.Bytes)
	if r.Observer != nil {
		r.Observer.JoinComplete(name, result)
	}
	return result, nil
}

// JoinManifest joins the part set described by the manifest at
// manifestPath. Parts are looked up next to the manifest and every
// declared part must exist. An empty destination means output.<ext>
// in outputDir.
func (r *Runner) JoinManifest(manifestPath, destination, outputDir string) (*partset.JoinResult, error) {
	manifest, err := partset.ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}
	pipeline := partset.PipelineByName(manifest.Pipeline)
	if destination == "" {
		destination = filepath.Join(outputDir, pipeline.OutputName(manifest.Extension))
	}
	r.Logger.Debug("manifest loaded", "path", manifestPath, "set_id", manifest.SetID, "parts", manifest.PartCount)
	return r.Join(JoinRequest{
		Pipeline:    pipeline,
		Sequence:    manifest.Sequence(manifestPath),
		Destination: destination,
	})
}

// Request describes an interactive run: chunk a file and immediately
// join the parts back together.
type Request struct {
	Source        string
	Prefix        string
	ChunkSize     int64
	OutputDir     string
	WriteManifest bool
}

// Report is the outcome of a run.
type Report struct {
	Pipeline     string               `json:"pipeline"`
	Chunk        *partset.ChunkResult `json:"chunk"`
	ManifestPath string               `json:"manifest_path,omitempty"`
	Join         *partset.JoinResult  `json:"join"`
}

// Run chunks request.Source and joins the parts into output.<ext> in
// request.OutputDir. Without a manifest the join probes for parts the
// same way a standalone join does; with one it requires exactly the
// parts just written.
//
// Probing does not stop at the number of parts just written: a stale
// part N+1 left by an earlier run with the same prefix is appended to
// the output. Set WriteManifest to join exactly the new parts.
func (r *Runner) Run(request Request) (*Report, error) {
	pipeline, err := r.Classifier.Classify(request.Source)
	if err != nil {
		r.Logger.Warn("unsupported source", "source", request.Source, "error", err)
		return nil, err
	}

	chunked, err := r.ChunkWith(pipeline, ChunkRequest{
		Source:        request.Source,
		Prefix:        request.Prefix,
		ChunkSize:     request.ChunkSize,
		WriteManifest: request.WriteManifest,
	})
	if err != nil {
		return nil, err
	}

	sequence := partset.Sequence{Prefix: chunked.Chunk.Prefix, Extension: chunked.Chunk.Extension}
	if chunked.Manifest != nil {
		sequence = chunked.Chunk.Sequence()
	}
	destination := filepath.Join(request.OutputDir, pipeline.OutputName(partset.Extension(request.Source)))

	joined, err := r.Join(JoinRequest{Pipeline: pipeline, Sequence: sequence, Destination: destination})
	if err != nil {
		return nil, err
	}

	return &Report{
		Pipeline:     pipeline.Name(),
		Chunk:        chunked.Chunk,
		ManifestPath: chunked.ManifestPath,
		Join:         joined,
	}, nil
}
