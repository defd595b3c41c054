package common

import (
	"bufio"
	"os"
	"strings"
)

// ReadAllLines reads all lines from the given path on disk.
func ReadAllLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = file.Close()
	}()
	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// ReadListFile reads a list of entries (one per line) skipping blank lines and `#` comments.
func ReadListFile(path string) ([]string, error) {
	lines, err := ReadAllLines(path)
	if err != nil {
		return nil, err
	}
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		result = append(result, line)
	}
	return result, nil
}
