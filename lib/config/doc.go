// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for splitjoin.
//
// Configuration is optional. Without a file, [Default] reproduces the
// tool's fixed behavior: outputs in the working directory, .mp3/.mp4/
// .bin split by bytes, .csv split by lines, no manifests. A file is
// loaded only from an explicit --config path via [LoadFile]; there is
// no environment variable, no ~/.config discovery, and no automatic
// file search.
//
// Files ending in .json or .jsonc are parsed as JSON with comments and
// trailing commas allowed. Anything else is parsed as YAML. Values in
// the file are merged over [Default]; omitted keys keep their default.
//
// Variable expansion is performed on path fields after loading:
// ${HOME} and ${VAR:-default} patterns are expanded.
//
// This package depends on no other splitjoin packages.
package config
