package graph

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/EtomicBomb/cab/pkg/api"
	"github.com/EtomicBomb/cab/pkg/subject"
)

// RenderSVG lays the catalog out with dot and rewrites the course
// placeholder nodes into labeled boxes.
func RenderSVG(ctx context.Context, courses []api.Course, registry *subject.Registry) (string, error) {
	graphviz := Graphviz(courses, registry)
	log.Infof("filtering %d bytes of graphviz through dot", len(graphviz))
	svg, err := runDot(ctx, graphviz)
	if err != nil {
		return "", err
	}
	byCode := map[api.CourseCode]*api.Course{}
	for i := range courses {
		byCode[courses[i].Code] = &courses[i]
	}
	return fixupBoxes(svg, byCode), nil
}

func runDot(ctx context.Context, graphviz string) (string, error) {
	cmd := exec.CommandContext(ctx, "dot", "-Tsvg")
	cmd.Stdin = strings.NewReader(graphviz)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("dot failed: %v: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}

// boxPattern finds the placeholder nodes Graphviz emitted for courses; the
// class carries the course code and the polygon's first point anchors the
// replacement box.
var boxPattern = regexp.MustCompile(`(?s)<g id="node[0-9]*" class="node qual_(.*?)".*?points="(.*?),(.*?) .*?</g>`)

func fixupBoxes(svg string, courses map[api.CourseCode]*api.Course) string {
	return boxPattern.ReplaceAllStringFunc(svg, func(match string) string {
		m := boxPattern.FindStringSubmatch(match)
		code, err := api.ParseCourseCode(m[1])
		if err != nil {
			log.Warnf("leaving unrecognized node class %q alone", m[1])
			return match
		}
		x, xErr := strconv.ParseFloat(m[2], 64)
		y, yErr := strconv.ParseFloat(m[3], 64)
		if xErr != nil || yErr != nil {
			log.Warnf("leaving node %s with unreadable anchor alone", code)
			return match
		}
		return svgBox(code, courses[code], x, y)
	})
}

func svgBox(code api.CourseCode, course *api.Course, x, y float64) string {
	var b strings.Builder
	x -= 102
	fmt.Fprintf(&b, "<rect style=\"fill:#ffffff;stroke:#000000;stroke-width:3\" width=\"102\" height=\"44\" x=\"%v\" y=\"%v\" />\n", x, y)
	fmt.Fprintf(&b, "<text x=\"%v\" y=\"%v\" style=\"font-family:monospace;font-size:16px\">%s</text>\n", x+3.5, y+17, code)
	if course != nil && !course.Semesters.IsFull() {
		fmt.Fprintf(&b, "<text x=\"%v\" y=\"%v\" style=\"font-family:monospace;font-size:8px\">%s</text>\n", x+20.5, y+30, course.Semesters)
	}
	return b.String()
}
