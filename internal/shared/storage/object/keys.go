package object

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

const maxFileNameLen = 120

// ErrInvalidFileName is returned for names that are empty or try to escape the user namespace.
var ErrInvalidFileName = errors.New("invalid file name")

// UserNamespace is the directory or key prefix holding a user's objects.
// User ids are hashed so provider prefixes like "google:" never reach a path.
func UserNamespace(userID string) string {
	sum := sha256.Sum256([]byte(userID))
	return hex.EncodeToString(sum[:])
}

// NewKey builds a unique slash separated key "<namespace>/<uuid>_<name>".
func NewKey(userID, fileName string) (string, error) {
	name, err := SanitizeFileName(fileName)
	if err != nil {
		return "", err
	}
	return path.Join(UserNamespace(userID), uuid.NewString()+"_"+name), nil
}

// SanitizeFileName flattens separators, drops control characters and caps
// the length while keeping the extension.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	s := strings.Map(func(r rune) rune {
		switch {
		case r == '/' || r == '\\':
			return '_'
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, strings.TrimSpace(name))
	if s == "" {
		return "", ErrInvalidFileName
	}
	if len(s) > maxFileNameLen {
		ext := path.Ext(s)
		if len(ext) > 10 {
			ext = ""
		}
		s = s[:maxFileNameLen-len(ext)] + ext
	}
	return s, nil
}

// Sniff reads the first bytes of r to detect its content type and returns a
// reader that replays them.
func Sniff(r io.Reader) (io.Reader, string, error) {
	var head [512]byte
	n, err := io.ReadFull(r, head[:])
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, "", fmt.Errorf("read sniff: %w", err)
	}
	return io.MultiReader(bytes.NewReader(head[:n]), r), http.DetectContentType(head[:n]), nil
}
