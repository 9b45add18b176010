package utils

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"github.com/pkg/errors"
)

// CalculateFileHashes calculates SHA256 and MD5 hashes for a file
func CalculateFileHashes(filePath string) (string, string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", "", errors.Wrap(err, "calculate file hashes")
	}
	defer file.Close()

	sha256Hash := sha256.New()
	md5Hash := md5.New()
	if _, err := io.Copy(io.MultiWriter(sha256Hash, md5Hash), file); err != nil {
		return "", "", errors.Wrap(err, "calculate file hashes")
	}

	return hex.EncodeToString(sha256Hash.Sum(nil)),
		hex.EncodeToString(md5Hash.Sum(nil)),
		nil
}
