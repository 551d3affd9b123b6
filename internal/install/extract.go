package install

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Extractor unpacks release archives.
type Extractor struct{}

// NewExtractor creates a new extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractBinary unpacks the single expected executable from a .tar.gz
// archive into destPath. A corrupt archive or an archive without the
// expected entry is a TransportError: the artifact that arrived is not
// usable.
func (e *Extractor) ExtractBinary(archivePath, destPath, binaryName string) error {
	archiveFile, err := os.Open(archivePath)
	if err != nil {
		return &TransportError{Op: "extract", Source: archivePath, Cause: err}
	}
	defer archiveFile.Close()

	gzipReader, err := gzip.NewReader(archiveFile)
	if err != nil {
		return &TransportError{Op: "extract", Source: archivePath, Cause: fmt.Errorf("create gzip reader: %w", err)}
	}
	defer gzipReader.Close()

	tarReader := tar.NewReader(gzipReader)

	for {
		header, err := tarReader.Next()
		if err == io.EOF {
			return &TransportError{
				Op:     "extract",
				Source: archivePath,
				Cause:  fmt.Errorf("executable %s not found in archive", binaryName),
			}
		}
		if err != nil {
			return &TransportError{Op: "extract", Source: archivePath, Cause: fmt.Errorf("read tar header: %w", err)}
		}

		if header.Typeflag != tar.TypeReg || filepath.Base(header.Name) != binaryName {
			continue
		}

		if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
			return &TransportError{Op: "extract", Source: archivePath, Cause: fmt.Errorf("create dest dir: %w", err)}
		}

		outFile, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
		if err != nil {
			return &TransportError{Op: "extract", Source: archivePath, Cause: fmt.Errorf("create file: %w", err)}
		}

		if _, err := io.Copy(outFile, tarReader); err != nil {
			outFile.Close()
			return &TransportError{Op: "extract", Source: archivePath, Cause: fmt.Errorf("write file: %w", err)}
		}

		return outFile.Close()
	}
}
