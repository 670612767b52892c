package ktest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const lastLink = "klee-last"

type Info struct {
	Program   string `yaml:"program"`
	Strategy  string `yaml:"strategy"`
	Completed int    `yaml:"completed_paths"`
	Partial   int    `yaml:"partially_completed_paths"`
	Tests     int    `yaml:"generated_tests"`
	Queries   int    `yaml:"queries"`
	Elapsed   string `yaml:"elapsed"`
}

// NewOutputDir creates the first free klee-out-N under root and points
// root/klee-last at it.
func NewOutputDir(root string) (string, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", err
	}
	var dir string
	for n := 0; ; n++ {
		dir = filepath.Join(root, fmt.Sprintf("klee-out-%d", n))
		err := os.Mkdir(dir, 0o755)
		if err == nil {
			break
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", err
		}
	}
	link := filepath.Join(root, lastLink)
	if err := os.Remove(link); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}
	if err := os.Symlink(filepath.Base(dir), link); err != nil {
		return "", fmt.Errorf("linking %s: %w", lastLink, err)
	}
	return dir, nil
}

func FileName(n int) string {
	return fmt.Sprintf("test%06d.ktest", n)
}

// WriteDir stores tests as test000001.ktest, test000002.ktest, ... and
// writes a testNNNNNN.<kind>.err next to every failing one.
func WriteDir(dir string, tests []Test) ([]string, error) {
	var paths []string
	for i, t := range tests {
		path := filepath.Join(dir, FileName(i+1))
		if err := Write(path, t); err != nil {
			return paths, err
		}
		paths = append(paths, path)
		if t.Failed() {
			errPath := filepath.Join(dir, fmt.Sprintf("test%06d.%s.err", i+1, t.Error))
			msg := fmt.Sprintf("Error: %s\nFile: %s\n", t.Message, t.Program)
			if err := os.WriteFile(errPath, []byte(msg), 0o644); err != nil {
				return paths, err
			}
		}
	}
	return paths, nil
}

func WriteInfo(dir string, info Info) error {
	data, err := yaml.Marshal(info)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "info"), data, 0o644)
}

func ReadInfo(dir string) (Info, error) {
	var info Info
	data, err := os.ReadFile(filepath.Join(dir, "info"))
	if err != nil {
		return info, err
	}
	err = yaml.Unmarshal(data, &info)
	return info, err
}
