// =============================================================================
// Receipt Voucher Report - File Manager Utility
// =============================================================================
//
// This module provides file management utilities for the converter:
//   - Input discovery (a single ledger file or a directory of them)
//   - Temporary file naming and atomic replacement of the report
//   - Failure log generation
//
// REPLACEMENT STRATEGY:
//   - The report is written to a uniquely named file next to its destination
//   - The finished file is renamed over the destination in one step
//   - A failed write never leaves a partially written destination behind
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// INPUT DISCOVERY
// =============================================================================

// DiscoverInputFiles resolves the input path into a list of ledger files.
//
// PARAMETERS:
//   - path: A single file, or a directory to scan.
//   - pattern: A glob pattern applied inside a directory (e.g., "*.xml").
//              If empty, defaults to "*.xml".
//
// RETURNS:
//   - The matching files in lexical order. A file path is returned as-is.
//   - An error if the path does not exist or cannot be scanned.
func DiscoverInputFiles(path, pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*.xml"
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access input path: %w", err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	files, err := filepath.Glob(filepath.Join(path, pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to scan input directory: %w", err)
	}

	// Keep regular files only.
	var result []string
	for _, file := range files {
		if FileExists(file) {
			result = append(result, file)
		}
	}

	sort.Strings(result)
	return result, nil
}

// FileExists reports whether path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// =============================================================================
// ATOMIC REPLACEMENT
// =============================================================================

// TempPathFor returns a unique hidden path in the same directory as dst,
// keeping dst's extension.
//
// EXAMPLE:
//   dst:    "out/Processed_file.xlsx"
//   output: "out/.Processed_file.a1b2c3d4-e5f6-7890-abcd-ef1234567890.xlsx"
func TempPathFor(dst string) string {
	dir := filepath.Dir(dst)
	ext := filepath.Ext(dst)
	base := strings.TrimSuffix(filepath.Base(dst), ext)

	return filepath.Join(dir, fmt.Sprintf(".%s.%s%s", base, uuid.New().String(), ext))
}

// ReplaceFile moves src over dst in a single rename. Both paths must be on
// the same file system, which TempPathFor guarantees.
func ReplaceFile(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("failed to replace %s: %w", dst, err)
	}
	return nil
}

// =============================================================================
// FAILURE LOG GENERATION
// =============================================================================

// FailureLogEntry represents a single voucher or input failure.
type FailureLogEntry struct {
	Timestamp    time.Time
	InputFile    string
	Voucher      string
	Index        int
	ErrorType    string
	ErrorMessage string
}

// WriteFailureLog writes failure entries to a timestamped text file.
//
// PARAMETERS:
//   - entries: The failures to write.
//   - outputDir: The directory to write the log file.
//
// RETURNS:
//   - The path to the log file, or "" when there is nothing to log.
//   - An error if writing fails.
func WriteFailureLog(entries []FailureLogEntry, outputDir string) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory %s: %w", outputDir, err)
	}

	now := time.Now()
	logPath := filepath.Join(outputDir, fmt.Sprintf("failure_log_%s.txt", now.Format("20060102_150405")))

	file, err := os.Create(logPath)
	if err != nil {
		return "", fmt.Errorf("failed to create failure log: %w", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)

	fmt.Fprintf(writer, "Receipt Voucher Report - Failure Log\n"+
		"Generated: %s\n"+
		"Total Failures: %d\n"+
		"================================================================================\n\n",
		now.Format("2006-01-02 15:04:05"),
		len(entries))

	for i, entry := range entries {
		fmt.Fprintf(writer, "Failure #%d\n"+
			"  Timestamp:  %s\n"+
			"  File:       %s\n"+
			"  Error Type: %s\n"+
			"  Message:    %s\n",
			i+1,
			entry.Timestamp.Format("2006-01-02 15:04:05"),
			entry.InputFile,
			entry.ErrorType,
			entry.ErrorMessage)

		if entry.Voucher != "" {
			fmt.Fprintf(writer, "  Voucher:    %s\n", entry.Voucher)
		}
		if entry.Index >= 0 {
			fmt.Fprintf(writer, "  Position:   %d\n", entry.Index+1)
		}
		writer.WriteString("\n")
	}

	writer.WriteString("================================================================================\n" +
		"End of Failure Log\n")

	if err := writer.Flush(); err != nil {
		return "", fmt.Errorf("failed to flush failure log: %w", err)
	}

	return logPath, nil
}
