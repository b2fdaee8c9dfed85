package common

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz1234567890"

// StringToUUID5 maps an arbitrary string to a stable UUID.
func StringToUUID5(str string) string {
	return uuid.NewSHA1(uuid.Nil, []byte(str)).String()
}

// HomeExpand replaces a leading '~' with the user home directory.
func HomeExpand(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}
