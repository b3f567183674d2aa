package extractor

import (
	"archive/zip"
	"fmt"
	"io"
)

// readZipEntry returns the content of name inside an OOXML package.
func readZipEntry(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%s not found in archive", name)
}

func hasZipEntry(zr *zip.Reader, name string) bool {
	for _, f := range zr.File {
		if f.Name == name {
			return true
		}
	}
	return false
}

// elementStack tracks the local names of the open XML elements.
type elementStack []string

func (s *elementStack) push(name string) {
	*s = append(*s, name)
}

func (s *elementStack) pop() {
	if len(*s) > 0 {
		*s = (*s)[:len(*s)-1]
	}
}

// parent is the element enclosing the innermost open one.
func (s elementStack) parent() string {
	if len(s) < 2 {
		return ""
	}
	return s[len(s)-2]
}
