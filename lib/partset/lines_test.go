// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package partset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bureau-foundation/splitjoin/lib/testutil"
)

// partContents reads parts 1..count of a line part set.
func partContents(t *testing.T, prefix string, count int) []string {
	t.Helper()
	contents := make([]string, 0, count)
	for number := 1; number <= count; number++ {
		contents = append(contents, string(testutil.ReadFile(t, PartName(prefix, number, LinePartExtension))))
	}
	return contents
}

func TestChunkLinesConcreteScenario(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteFile(t, filepath.Join(dir, "rows.csv"), []byte("id,val\n1,a\n2,b\n3,c\n"))
	prefix := filepath.Join(dir, "rows")

	result, err := ChunkLines(source, prefix, 3)
	if err != nil {
		t.Fatalf("ChunkLines failed: %v", err)
	}
	if len(result.Parts) != 3 {
		t.Fatalf("got %d parts, want 3", len(result.Parts))
	}

	want := []string{"id,val\n1,a\n", "id,val\n2,b\n", "id,val\n3,c\n"}
	for i, got := range partContents(t, prefix, 3) {
		if got != want[i] {
			t.Errorf("part %d = %q, want %q", i+1, got, want[i])
		}
		if result.Parts[i].Lines != 1 {
			t.Errorf("part %d Lines = %d, want 1", i+1, result.Parts[i].Lines)
		}
	}
	if result.SourceSize != int64(len("id,val\n1,a\n2,b\n3,c\n")) {
		t.Errorf("SourceSize = %d", result.SourceSize)
	}

	output := filepath.Join(dir, "output.csv")
	joined, err := JoinLines(Sequence{Prefix: prefix}, output)
	if err != nil {
		t.Fatalf("JoinLines failed: %v", err)
	}
	if got := string(testutil.ReadFile(t, output)); got != "id,val\n1,a\n2,b\n3,c\n" {
		t.Errorf("joined = %q", got)
	}
	if len(joined.Parts) != 3 {
		t.Errorf("joined %d parts, want 3", len(joined.Parts))
	}
}

func TestChunkLinesGroupsUnderThreshold(t *testing.T) {
	dir := t.TempDir()
	// Data lines are 3 bytes each. With a threshold of 7, two lines fit
	// (6 bytes) and a third would make 9.
	source := testutil.WriteFile(t, filepath.Join(dir, "rows.csv"),
		[]byte("h\naaa\nbbb\nccc\nddd\neee\n"))
	prefix := filepath.Join(dir, "g")

	result, err := ChunkLines(source, prefix, 7)
	if err != nil {
		t.Fatalf("ChunkLines failed: %v", err)
	}

	want := []string{"h\naaa\nbbb\n", "h\nccc\nddd\n", "h\neee\n"}
	if len(result.Parts) != len(want) {
		t.Fatalf("got %d parts, want %d", len(result.Parts), len(want))
	}
	for i, got := range partContents(t, prefix, len(want)) {
		if got != want[i] {
			t.Errorf("part %d = %q, want %q", i+1, got, want[i])
		}
	}
}

func TestChunkLinesThresholdIsInclusive(t *testing.T) {
	dir := t.TempDir()
	// 3 + 3 == 6 does not exceed a threshold of 6.
	source := testutil.WriteFile(t, filepath.Join(dir, "rows.csv"), []byte("h\naaa\nbbb\nccc\n"))
	prefix := filepath.Join(dir, "i")

	result, err := ChunkLines(source, prefix, 6)
	if err != nil {
		t.Fatalf("ChunkLines failed: %v", err)
	}
	if len(result.Parts) != 2 {
		t.Fatalf("got %d parts, want 2", len(result.Parts))
	}
	if got := partContents(t, prefix, 2); got[0] != "h\naaa\nbbb\n" || got[1] != "h\nccc\n" {
		t.Errorf("parts = %q", got)
	}
}

func TestChunkLinesOversizedLineGetsOwnPart(t *testing.T) {
	dir := t.TempDir()
	long := strings.Repeat("x", 100)
	source := testutil.WriteFile(t, filepath.Join(dir, "rows.csv"),
		[]byte("h\na\n"+long+"\nb\n"))
	prefix := filepath.Join(dir, "o")

	result, err := ChunkLines(source, prefix, 10)
	if err != nil {
		t.Fatalf("ChunkLines failed: %v", err)
	}

	want := []string{"h\na\n", "h\n" + long + "\n", "h\nb\n"}
	if len(result.Parts) != len(want) {
		t.Fatalf("got %d parts, want %d", len(result.Parts), len(want))
	}
	for i, got := range partContents(t, prefix, len(want)) {
		if got != want[i] {
			t.Errorf("part %d = %q, want %q", i+1, got, want[i])
		}
	}
}

func TestChunkLinesNormalizesLineEndings(t *testing.T) {
	dir := t.TempDir()
	// CRLF throughout, and no terminator on the last line.
	source := testutil.WriteFile(t, filepath.Join(dir, "dos.csv"), []byte("id,val\r\n1,a\r\n2,b"))
	prefix := filepath.Join(dir, "d")

	result, err := ChunkLines(source, prefix, 1024)
	if err != nil {
		t.Fatalf("ChunkLines failed: %v", err)
	}
	if len(result.Parts) != 1 {
		t.Fatalf("got %d parts, want 1", len(result.Parts))
	}
	if got := partContents(t, prefix, 1)[0]; got != "id,val\n1,a\n2,b\n" {
		t.Errorf("part 1 = %q, want LF-normalized content", got)
	}
}

func TestChunkLinesEmptyDataLinesAreKept(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteFile(t, filepath.Join(dir, "rows.csv"), []byte("h\n\n\nz\n"))
	prefix := filepath.Join(dir, "e")

	result, err := ChunkLines(source, prefix, 5)
	if err != nil {
		t.Fatalf("ChunkLines failed: %v", err)
	}
	if len(result.Parts) != 1 || result.Parts[0].Lines != 3 {
		t.Fatalf("parts = %+v, want one part holding 3 lines", result.Parts)
	}

	output := filepath.Join(dir, "output.csv")
	if _, err := JoinLines(Sequence{Prefix: prefix}, output); err != nil {
		t.Fatalf("JoinLines failed: %v", err)
	}
	if got := string(testutil.ReadFile(t, output)); got != "h\n\n\nz\n" {
		t.Errorf("joined = %q", got)
	}
}

func TestChunkLinesNoDataLines(t *testing.T) {
	for name, content := range map[string]string{
		"empty":               "",
		"header only":         "id,val\n",
		"unterminated header": "id,val",
	} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			source := testutil.WriteFile(t, filepath.Join(dir, "rows.csv"), []byte(content))

			result, err := ChunkLines(source, filepath.Join(dir, "n"), 10)
			if err != nil {
				t.Fatalf("ChunkLines failed: %v", err)
			}
			if len(result.Parts) != 0 {
				t.Errorf("got %d parts, want 0", len(result.Parts))
			}
			testutil.RequireFileAbsent(t, filepath.Join(dir, "n1.csv"))
		})
	}
}

func TestChunkLinesRoundTrip(t *testing.T) {
	var builder strings.Builder
	builder.WriteString("id,name,score\n")
	var dataLines []string
	for i := range 200 {
		line := fmt.Sprintf("%d,%s,%d", i, strings.Repeat("n", i%17), i*i)
		dataLines = append(dataLines, line)
		builder.WriteString(line + "\n")
	}
	content := builder.String()

	for _, threshold := range []int64{1, 10, 64, 1000, 1 << 20} {
		dir := t.TempDir()
		source := testutil.WriteFile(t, filepath.Join(dir, "scores.csv"), []byte(content))
		prefix := filepath.Join(dir, "s")

		result, err := ChunkLines(source, prefix, threshold)
		if err != nil {
			t.Fatalf("threshold %d: ChunkLines failed: %v", threshold, err)
		}

		totalLines := 0
		for _, part := range result.Parts {
			totalLines += part.Lines
			if part.Lines < 1 {
				t.Errorf("threshold %d: part %d has no data lines", threshold, part.Number)
			}
		}
		if totalLines != len(dataLines) {
			t.Errorf("threshold %d: parts hold %d lines, want %d", threshold, totalLines, len(dataLines))
		}

		output := filepath.Join(dir, "output.csv")
		if _, err := JoinLines(result.Sequence(), output); err != nil {
			t.Fatalf("threshold %d: JoinLines failed: %v", threshold, err)
		}
		if got := string(testutil.ReadFile(t, output)); got != content {
			t.Errorf("threshold %d: joined content differs from source", threshold)
		}
	}
}

func TestChunkLinesPartCountIsMinimal(t *testing.T) {
	dir := t.TempDir()
	// Ten 4-byte lines with a threshold of 10: each part takes two
	// lines (8 bytes), a third would reach 12.
	var builder strings.Builder
	builder.WriteString("h\n")
	for i := range 10 {
		fmt.Fprintf(&builder, "r%03d\n", i)
	}
	source := testutil.WriteFile(t, filepath.Join(dir, "rows.csv"), []byte(builder.String()))

	result, err := ChunkLines(source, filepath.Join(dir, "m"), 10)
	if err != nil {
		t.Fatalf("ChunkLines failed: %v", err)
	}
	if len(result.Parts) != 5 {
		t.Errorf("got %d parts, want 5", len(result.Parts))
	}
}

func TestChunkLinesErrors(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteFile(t, filepath.Join(dir, "rows.csv"), []byte("h\na\n"))

	if _, err := ChunkLines(source, filepath.Join(dir, "p"), 0); !errors.Is(err, ErrInvalidChunkSize) {
		t.Errorf("threshold 0: error = %v, want ErrInvalidChunkSize", err)
	}

	var openErr *SourceOpenError
	if _, err := ChunkLines(filepath.Join(dir, "missing.csv"), filepath.Join(dir, "p"), 10); !errors.As(err, &openErr) {
		t.Errorf("missing source: error = %v, want *SourceOpenError", err)
	}

	var writeErr *PartWriteError
	_, err := ChunkLines(source, filepath.Join(dir, "absent", "p"), 10)
	if !errors.As(err, &writeErr) {
		t.Fatalf("unwritable prefix: error = %v, want *PartWriteError", err)
	}
	if writeErr.Number != 1 {
		t.Errorf("PartWriteError.Number = %d, want 1", writeErr.Number)
	}
}

func TestJoinLinesStopsAtFirstGap(t *testing.T) {
	dir := t.TempDir()
	source := testutil.WriteFile(t, filepath.Join(dir, "rows.csv"), []byte("id,val\n1,a\n2,b\n3,c\n"))
	prefix := filepath.Join(dir, "rows")

	if _, err := ChunkLines(source, prefix, 3); err != nil {
		t.Fatalf("ChunkLines failed: %v", err)
	}
	if err := os.Remove(PartName(prefix, 2, LinePartExtension)); err != nil {
		t.Fatal(err)
	}

	output := filepath.Join(dir, "output.csv")
	if _, err := JoinLines(Sequence{Prefix: prefix}, output); err != nil {
		t.Fatalf("JoinLines failed: %v", err)
	}
	if got := string(testutil.ReadFile(t, output)); got != "id,val\n1,a\n" {
		t.Errorf("joined = %q, want only part 1", got)
	}

	_, err := JoinLines(Sequence{Prefix: prefix, Count: 3}, output)
	var missing *MissingPartError
	if !errors.As(err, &missing) || missing.Number != 2 {
		t.Errorf("counted join error = %v, want missing part 2", err)
	}
}

func TestJoinLinesMissingFirstPart(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "output.csv")

	result, err := JoinLines(Sequence{Prefix: filepath.Join(dir, "none")}, output)
	if err != nil {
		t.Fatalf("JoinLines failed: %v", err)
	}
	if result.Bytes != 0 {
		t.Errorf("Bytes = %d, want 0", result.Bytes)
	}
	if got := testutil.ReadFile(t, output); len(got) != 0 {
		t.Errorf("output = %q, want empty (no header)", got)
	}
}

func TestJoinLinesIgnoresSequenceExtension(t *testing.T) {
	dir := t.TempDir()
	prefix := filepath.Join(dir, "x")
	testutil.WriteFile(t, prefix+"1.csv", []byte("h\n1\n"))
	testutil.WriteFile(t, prefix+"2.csv", []byte("h\n2\n"))

	output := filepath.Join(dir, "output.csv")
	if _, err := JoinLines(Sequence{Prefix: prefix, Extension: ".txt"}, output); err != nil {
		t.Fatalf("JoinLines failed: %v", err)
	}
	if got := string(testutil.ReadFile(t, output)); got != "h\n1\n2\n" {
		t.Errorf("joined = %q", got)
	}
}

func TestJoinLinesDestinationOpenFailure(t *testing.T) {
	dir := t.TempDir()
	_, err := JoinLines(Sequence{Prefix: filepath.Join(dir, "p")}, filepath.Join(dir, "nope", "output.csv"))
	var destErr *DestinationOpenError
	if !errors.As(err, &destErr) {
		t.Fatalf("error = %v, want *DestinationOpenError", err)
	}
}

func TestChunkLinesDirectorySource(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "folder.csv")
	if err := os.Mkdir(source, 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := ChunkLines(source, filepath.Join(dir, "p"), 4)
	var openErr *SourceOpenError
	if !errors.As(err, &openErr) || openErr.Path != source {
		t.Fatalf("error = %v, want *SourceOpenError for %s", err, source)
	}
	if !errors.Is(err, ErrNotRegularFile) {
		t.Errorf("error does not wrap ErrNotRegularFile: %v", err)
	}
	testutil.RequireFileAbsent(t, filepath.Join(dir, "p1.csv"))
}
