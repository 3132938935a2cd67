// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package partset

import (
	"slices"
	"strings"
)

// Pipeline is one of the two ways a file is split and rejoined. The
// set is closed: [Binary] and [Lines] are the only implementations.
type Pipeline interface {
	// Name is "binary" or "lines".
	Name() string

	// PartExtension returns the extension given to parts of a source
	// with the given extension.
	PartExtension(sourceExtension string) string

	// OutputName returns the fixed reconstructed file name for a
	// source with the given extension.
	OutputName(sourceExtension string) string

	// Chunk splits source into parts named after prefix. size is a
	// byte count for the binary pipeline and a line-length threshold
	// for the line pipeline.
	Chunk(source, prefix string, size int64) (*ChunkResult, error)

	// Join reassembles the parts of sequence into destination.
	Join(sequence Sequence, destination string) (*JoinResult, error)
}

// Binary is the byte-count pipeline.
var Binary Pipeline = binaryPipeline{}

// Lines is the header-preserving line pipeline.
var Lines Pipeline = linePipeline{}

type binaryPipeline struct{}

func (binaryPipeline) Name() string { return PipelineBinary }

func (binaryPipeline) PartExtension(sourceExtension string) string { return sourceExtension }

func (binaryPipeline) OutputName(sourceExtension string) string {
	return OutputName(sourceExtension)
}

func (binaryPipeline) Chunk(source, prefix string, size int64) (*ChunkResult, error) {
	return ChunkBinary(source, prefix, size)
}

func (binaryPipeline) Join(sequence Sequence, destination string) (*JoinResult, error) {
	return JoinBinary(sequence, destination)
}

type linePipeline struct{}

func (linePipeline) Name() string { return PipelineLines }

func (linePipeline) PartExtension(string) string { return LinePartExtension }

func (linePipeline) OutputName(string) string { return OutputName(LinePartExtension) }

func (linePipeline) Chunk(source, prefix string, size int64) (*ChunkResult, error) {
	return ChunkLines(source, prefix, size)
}

func (linePipeline) Join(sequence Sequence, destination string) (*JoinResult, error) {
	return JoinLines(sequence, destination)
}

// PipelineByName returns the pipeline with the given [Pipeline.Name],
// or nil.
func PipelineByName(name string) Pipeline {
	switch name {
	case PipelineBinary:
		return Binary
	case PipelineLines:
		return Lines
	}
	return nil
}

// Default extension lists for [DefaultClassifier].
var (
	DefaultBinaryExtensions = []string{".mp3", ".mp4", ".bin"}
	DefaultTextExtensions   = []string{".csv"}
)

// Classifier selects a pipeline by file extension.
type Classifier struct {
	// BinaryExtensions route to [Binary].
	BinaryExtensions []string

	// TextExtensions route to [Lines]. Checked before
	// BinaryExtensions.
	TextExtensions []string
}

// DefaultClassifier returns the built-in extension mapping: .mp3, .mp4
// and .bin are binary, .csv is line-oriented.
func DefaultClassifier() Classifier {
	return Classifier{
		BinaryExtensions: slices.Clone(DefaultBinaryExtensions),
		TextExtensions:   slices.Clone(DefaultTextExtensions),
	}
}

// Classify returns the pipeline for path's extension. Extensions are
// compared case-insensitively. An unlisted extension returns an
// [UnsupportedTypeError].
func (c Classifier) Classify(path string) (Pipeline, error) {
	return c.ClassifyExtension(Extension(path))
}

// ClassifyExtension is [Classifier.Classify] for a bare extension
// (with its leading dot).
func (c Classifier) ClassifyExtension(extension string) (Pipeline, error) {
	if containsFold(c.TextExtensions, extension) {
		return Lines, nil
	}
	if containsFold(c.BinaryExtensions, extension) {
		return Binary, nil
	}
	return nil, &UnsupportedTypeError{Extension: extension}
}

func containsFold(list []string, extension string) bool {
	if extension == "" {
		return false
	}
	return slices.ContainsFunc(list, func(candidate string) bool {
		return strings.EqualFold(candidate, extension)
	})
}
