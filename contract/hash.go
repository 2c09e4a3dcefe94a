package contract

import (
	"strconv"
	"strings"

	"github.com/minio/highwayhash"
)

var key = []byte("0123456789ABCDEF0123456789ABCDEF")

// Hash returns HighwayHash-64 of data
func Hash(data []byte) (uint64, error) {
	hash, err := highwayhash.New64(key)
	if err != nil {
		return 0, err
	}
	_, err = hash.Write(data)
	return hash.Sum64(), err
}

// Digest returns the zero padded hex form of Hash
func Digest(data []byte) string {
	value, err := Hash(data)
	if err != nil {
		return ""
	}
	ret := strconv.FormatUint(value, 16)
	return strings.Repeat("0", 16-len(ret)) + ret
}

// NormalizeContent converts line endings to LF and trims trailing whitespace per line
func NormalizeContent(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t\r")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}

// FileHash returns digest of normalized content
func FileHash(content string) string {
	return Digest([]byte(NormalizeContent(content)))
}
