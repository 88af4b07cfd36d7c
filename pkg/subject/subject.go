// Package subject reads the subject registry, a semicolon-separated file
// with one "CODE;Name;category;color" line per subject.
package subject

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Category int

const (
	CategoryOther Category = iota
	CategoryLanguage
	CategoryCulture
	CategoryAbstractScience
	CategoryPhysicalScience
)

func ParseCategory(text string) (Category, error) {
	switch text {
	case "language":
		return CategoryLanguage, nil
	case "culture":
		return CategoryCulture, nil
	case "abstract science":
		return CategoryAbstractScience, nil
	case "physical science":
		return CategoryPhysicalScience, nil
	case "other":
		return CategoryOther, nil
	}
	return 0, fmt.Errorf("unknown subject category %q", text)
}

func (c Category) String() string {
	switch c {
	case CategoryLanguage:
		return "language"
	case CategoryCulture:
		return "culture"
	case CategoryAbstractScience:
		return "abstract science"
	case CategoryPhysicalScience:
		return "physical science"
	}
	return "other"
}

type Info struct {
	Name     string
	Category Category
	Color    string
}

type Registry struct {
	info map[string]Info
}

func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return NewRegistry(f)
}

func NewRegistry(source io.Reader) (*Registry, error) {
	info := map[string]Info{}
	scanner := bufio.NewScanner(source)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ";")
		if len(fields) != 4 {
			return nil, fmt.Errorf("subject registry line %d: expected 4 fields, found %d", line, len(fields))
		}
		category, err := ParseCategory(fields[2])
		if err != nil {
			return nil, fmt.Errorf("subject registry line %d: %v", line, err)
		}
		info[fields[0]] = Info{Name: fields[1], Category: category, Color: fields[3]}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return &Registry{info: info}, nil
}

// Subjects returns the registered subject codes in ascending order.
func (r *Registry) Subjects() []string {
	codes := maps.Keys(r.info)
	slices.Sort(codes)
	return codes
}

func (r *Registry) Info(code string) (Info, bool) {
	info, exists := r.info[code]
	return info, exists
}
