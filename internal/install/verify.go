package install

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
)

// Verifier checks downloaded archives against their release sidecars.
type Verifier struct{}

// NewVerifier creates a new verifier.
func NewVerifier() *Verifier {
	return &Verifier{}
}

// VerifyChecksum compares the SHA-256 digest of archivePath against the
// entry for its filename in a "digest  filename" style checksum file.
func (v *Verifier) VerifyChecksum(archivePath, checksumPath string) error {
	actual, err := hashFileSHA256(archivePath)
	if err != nil {
		return &VerificationError{Method: "sha256", Reason: "hash archive", Cause: err}
	}

	expected, err := findChecksum(checksumPath, filepath.Base(archivePath))
	if err != nil {
		return &VerificationError{Method: "sha256", Reason: "locate expected checksum", Cause: err}
	}

	if !strings.EqualFold(actual, expected) {
		return &VerificationError{
			Method: "sha256",
			Reason: fmt.Sprintf("checksum mismatch: got %s, want %s", actual, expected),
		}
	}

	return nil
}

// VerifySignature checks the archive's detached GPG signature against the
// armored public key at keyFile.
func (v *Verifier) VerifySignature(archivePath, signaturePath, keyFile string) error {
	keyring, err := loadKeyring(keyFile)
	if err != nil {
		return &VerificationError{Method: "gpg", Reason: "load public key", Cause: err}
	}

	archive, err := os.Open(archivePath)
	if err != nil {
		return &VerificationError{Method: "gpg", Reason: "open archive", Cause: err}
	}
	defer archive.Close()

	sig, err := os.Open(signaturePath)
	if err != nil {
		return &VerificationError{Method: "gpg", Reason: "open signature", Cause: err}
	}
	defer sig.Close()

	// Try armored first, then binary.
	_, err = openpgp.CheckArmoredDetachedSignature(keyring, archive, sig, nil)
	if err != nil {
		archive.Seek(0, io.SeekStart)
		sig.Seek(0, io.SeekStart)
		_, err = openpgp.CheckDetachedSignature(keyring, archive, sig, nil)
	}
	if err != nil {
		return &VerificationError{Method: "gpg", Reason: "signature does not match", Cause: err}
	}

	return nil
}

// loadKeyring reads a public keyring, armored or binary.
func loadKeyring(keyFile string) (openpgp.EntityList, error) {
	file, err := os.Open(keyFile)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	defer file.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(file)
	if err != nil {
		file.Seek(0, io.SeekStart)
		keyring, err = openpgp.ReadKeyRing(file)
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring is empty")
	}

	return keyring, nil
}

// hashFileSHA256 returns the hex SHA-256 digest of a file.
func hashFileSHA256(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// findChecksum finds the digest for filename in a checksum file of
// "abc123  filename.tar.gz" lines.
func findChecksum(checksumPath, filename string) (string, error) {
	file, err := os.Open(checksumPath)
	if err != nil {
		return "", fmt.Errorf("open checksum file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		if parts[1] == filename || filepath.Base(parts[1]) == filename {
			return parts[0], nil
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan checksum file: %w", err)
	}

	return "", fmt.Errorf("checksum not found for %s", filename)
}
