package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

const fallbackVersion = "0.1.0"

// versionFiles are searched in order for the base version. The binary runs
// from the repository root, tests run from the package directory.
var versionFiles = []string{
	"VERSION",
	filepath.Join("..", "VERSION"),
	filepath.Join("..", "..", "VERSION"),
}

// GetVersion returns APP_VERSION when set (CI builds), otherwise the VERSION
// file contents suffixed with the git commit count.
func GetVersion() string {
	if envVersion := strings.TrimSpace(os.Getenv("APP_VERSION")); envVersion != "" {
		return envVersion
	}

	baseVersion := readBaseVersion(versionFiles)
	if count := gitCommitCount(); count > 0 {
		return baseVersion + "." + strconv.Itoa(count)
	}
	return baseVersion
}

func readBaseVersion(paths []string) string {
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if v := strings.TrimSpace(string(content)); v != "" {
			return v
		}
	}
	return fallbackVersion
}

func gitCommitCount() int {
	output, err := exec.Command("git", "rev-list", "--count", "HEAD").Output()
	if err != nil {
		return 0
	}
	count, err := strconv.Atoi(strings.TrimSpace(string(output)))
	if err != nil {
		return 0
	}
	return count
}
