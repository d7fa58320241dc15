package main

import (
	"os"
	"path/filepath"
	"strings"
)

func ResolveAbsoluteCwd(cwd string) string {
	if filepath.IsAbs(cwd) {
		return ToInternalPath(cwd)
	}
	binaryExecDir, _ := os.Getwd()
	return ToInternalPath(filepath.Join(binaryExecDir, cwd))
}

// SplitList flattens comma separated list values, trimming entries and
// dropping empty ones. Values may arrive pre-split (flags) or as a single
// comma separated string (env vars, config files).
func SplitList(values []string) []string {
	out := []string{}
	for _, value := range values {
		for _, item := range strings.Split(value, ",") {
			item = strings.TrimSpace(item)
			if item != "" {
				out = append(out, item)
			}
		}
	}
	return out
}

func fileExists(p string) bool {
	_, err := os.Stat(ToOSPath(p))
	return err == nil
}

func isRegularFile(p string) bool {
	info, err := os.Stat(ToOSPath(p))
	return err == nil && info.Mode().IsRegular()
}

func isDir(p string) bool {
	info, err := os.Stat(ToOSPath(p))
	return err == nil && info.IsDir()
}

func PadRight(text string, char byte, length int) string {
	if len(text) >= length {
		return text
	}
	return text + strings.Repeat(string(char), length-len(text))
}
