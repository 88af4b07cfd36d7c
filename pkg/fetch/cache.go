package fetch

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// CacheHelper reads and writes the record cache, one directory per term.
type CacheHelper struct {
	CacheDir string
}

func (r *CacheHelper) WriteToTermDir(term string, body io.Reader, name string) error {
	dir := filepath.Join(r.CacheDir, term)
	file := filepath.Join(dir, name)

	err := os.MkdirAll(dir, 0770)
	if err != nil && !os.IsExist(err) {
		return fmt.Errorf("failed to create cache directory for %s: %v", term, err)
	}
	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("failed to open file %s: %v", file, err)
	}
	defer f.Close()
	_, err = io.Copy(f, body)
	if err != nil {
		return fmt.Errorf("failed to write file %s: %v", file, err)
	}
	return nil
}

func (r *CacheHelper) OpenFromTermDir(term string, name string) (io.ReadCloser, error) {
	file := filepath.Join(r.CacheDir, term, name)
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %v", file, err)
	}
	return f, err
}

// Terms lists the term directories present in the cache.
func (r *CacheHelper) Terms() ([]string, error) {
	entries, err := os.ReadDir(r.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache directory %s: %v", r.CacheDir, err)
	}
	var ret []string
	for _, entry := range entries {
		if entry.IsDir() {
			ret = append(ret, entry.Name())
		}
	}
	return ret, nil
}

// OpenTerm concatenates every cached record of one term into a single
// stream, with newlines between files so the records stay a valid JSON
// sequence.
func (r *CacheHelper) OpenTerm(term string) (io.ReadCloser, error) {
	dir := filepath.Join(r.CacheDir, term)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read term directory %s: %v", dir, err)
	}
	ret := &multiFileReader{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		f, err := os.Open(filepath.Join(dir, entry.Name()))
		if err != nil {
			ret.Close()
			return nil, fmt.Errorf("failed to open file %s: %v", entry.Name(), err)
		}
		ret.files = append(ret.files, f)
		ret.readers = append(ret.readers, f, strings.NewReader("\n"))
	}
	ret.reader = io.MultiReader(ret.readers...)
	return ret, nil
}

type multiFileReader struct {
	files   []*os.File
	readers []io.Reader
	reader  io.Reader
}

func (m *multiFileReader) Read(p []byte) (int, error) {
	return m.reader.Read(p)
}

func (m *multiFileReader) Close() error {
	var err error
	for _, f := range m.files {
		if e := f.Close(); e != nil {
			err = e
		}
	}
	return err
}
