//go:build integration

// Package integration runs the client and the CLI against a live Albert
// platform. Credentials come from the environment or a .env file at the
// project root.
package integration

import (
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/joho/godotenv"
)

// cliBinary holds the path to the CLI built once in TestMain.
var cliBinary string

func TestMain(m *testing.M) {
	projectRoot := findProjectRoot()
	if projectRoot == "" {
		log.Fatal("Could not find project root (go.mod)")
	}

	// Variables already set in the environment win over the .env file.
	if err := godotenv.Load(filepath.Join(projectRoot, ".env")); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to load .env: %v", err)
	}

	tmpDir, err := os.MkdirTemp("", "albert-integration-test")
	if err != nil {
		log.Fatalf("Failed to create temp directory: %v", err)
	}

	cliBinary = filepath.Join(tmpDir, "albert-test")
	cmd := exec.Command("go", "build", "-o", cliBinary, "./cli/cmd/albert")
	cmd.Dir = projectRoot
	if output, err := cmd.CombinedOutput(); err != nil {
		log.Fatalf("Failed to build CLI: %v\n%s", err, output)
	}

	code := m.Run()

	os.RemoveAll(tmpDir)
	os.Exit(code)
}

// findProjectRoot walks up from the working directory to the nearest go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
