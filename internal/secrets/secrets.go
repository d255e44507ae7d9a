// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files
// and from dotenv files.
//
// In a secrets directory each file is one secret: the filename is the key
// and the trimmed contents are the value. The update check reads
// GitHubTokenKey from it.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// GitHubTokenKey is the secret file holding a GitHub API token.
const GitHubTokenKey = "github-token"

// GitHubTokenEnv is the environment variable consulted when no token file
// exists.
const GitHubTokenEnv = "GITHUB_TOKEN"

// DotenvPathEnv names the environment variable that points at a dotenv file
// to load at startup.
const DotenvPathEnv = "DOTENV_PATH"

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files are logged and skipped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			logrus.WithError(err).WithField("secret", name).Warn("could not read secret")
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			secrets[name] = value
		}
	}

	return secrets, nil
}

// GitHubToken returns the token stored in dir, falling back to the
// GITHUB_TOKEN environment variable. An empty result means anonymous access.
func GitHubToken(dir string) string {
	if dir != "" {
		if s, err := Load(dir); err == nil && s[GitHubTokenKey] != "" {
			return s[GitHubTokenKey]
		}
	}
	return strings.TrimSpace(os.Getenv(GitHubTokenEnv))
}

// LoadDotenv loads the dotenv file named by DOTENV_PATH into the process
// environment. Variables already set are not overwritten. It returns the
// loaded path, or "" when DOTENV_PATH is unset.
func LoadDotenv() (string, error) {
	path := strings.TrimSpace(os.Getenv(DotenvPathEnv))
	if path == "" {
		return "", nil
	}
	if err := godotenv.Load(path); err != nil {
		return path, fmt.Errorf("loading %s=%s: %w", DotenvPathEnv, path, err)
	}
	return path, nil
}
