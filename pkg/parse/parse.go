// Package parse turns catalog prerequisite sentences into requirement trees.
//
// The catalog renders prerequisites in a lightly structured surface form:
// course codes, exam scores, "and"/"or" conjunctions, commas, and
// parentheses. Commas carry no operator of their own; each one takes on the
// conjunction spelled out later at the same parenthesis depth, or "or" when
// the sentence never names one. A course number without a subject borrows
// the most recent subject to its left, so "CSCI 0150 or 0160" names two
// CSCI courses.
//
// Grammar:
//
//	top  := any EOI
//	any  := all ("or" all)*
//	all  := base ("and" base)*
//	base := course | exam score | waive | "(" any ")"
package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/EtomicBomb/cab/pkg/api"
)

var tokenPattern = regexp.MustCompile(`^( |and|or|,|\(|\)|minimum score of WAIVE in 'Graduate Student PreReq'|minimum score of (?P<score>[0-9]*?) in '(?P<exam>.*?)'|((?P<subj>[A-Z]{3,4}) )?(?P<num>[0-9]{4}[A-Z]?)\*?)`)

var (
	scoreIndex   = tokenPattern.SubexpIndex("score")
	examIndex    = tokenPattern.SubexpIndex("exam")
	subjectIndex = tokenPattern.SubexpIndex("subj")
	numberIndex  = tokenPattern.SubexpIndex("num")
)

// Prerequisites parses one prerequisite sentence. A sentence that only
// names the graduate waiver carries no requirement and yields a nil tree.
func Prerequisites(input string) (*api.PrerequisiteTree, error) {
	tokens, err := tokenize(input)
	if err != nil {
		return nil, err
	}
	resolveCommas(tokens)
	s := &stream{tokens: tokens}
	tree, err := parseAny(s)
	if err != nil {
		return nil, err
	}
	if err := s.expect(kindEOI); err != nil {
		return nil, err
	}
	return tree, nil
}

type tokenKind int

const (
	kindQualification tokenKind = iota
	kindOperator
	kindComma
	kindLeftParen
	kindRightParen
	kindWaive
	kindEOI
)

func kindName(k tokenKind) string {
	switch k {
	case kindQualification:
		return "qualification"
	case kindOperator:
		return "operator"
	case kindComma:
		return "','"
	case kindLeftParen:
		return "'('"
	case kindRightParen:
		return "')'"
	case kindWaive:
		return "graduate student waive"
	case kindEOI:
		return "end of input"
	}
	return "unknown token"
}

type token struct {
	kind tokenKind
	qual api.Qualification
	op   api.Operator
	span span
}

// span points error messages at the offending region of the input.
type span struct {
	input      string
	start, end int
}

func (s span) String() string {
	return s.input[:s.start] + "[" + s.input[s.start:s.end] + "]" + s.input[s.end:]
}

func tokenize(input string) ([]token, error) {
	var tokens []token
	lastSubject := ""
	for i := 0; i < len(input); {
		m := tokenPattern.FindStringSubmatch(input[i:])
		if m == nil {
			return nil, fmt.Errorf("'%s[%s]': invalid token", input[:i], input[i:])
		}
		matched := m[0]
		sp := span{input: input, start: i, end: i + len(matched)}
		i += len(matched)
		switch {
		case matched == " ":
			continue
		case matched == "minimum score of WAIVE in 'Graduate Student PreReq'":
			tokens = append(tokens, token{kind: kindWaive, span: sp})
		case matched == "and":
			tokens = append(tokens, token{kind: kindOperator, op: api.OperatorAll, span: sp})
		case matched == "or":
			tokens = append(tokens, token{kind: kindOperator, op: api.OperatorAny, span: sp})
		case matched == ",":
			tokens = append(tokens, token{kind: kindComma, span: sp})
		case matched == "(":
			tokens = append(tokens, token{kind: kindLeftParen, span: sp})
		case matched == ")":
			tokens = append(tokens, token{kind: kindRightParen, span: sp})
		case strings.HasPrefix(matched, "minimum score of"):
			score, err := strconv.Atoi(m[scoreIndex])
			if err != nil {
				return nil, fmt.Errorf("'%s': unreadable exam score", sp)
			}
			qual := api.ExamScore{Exam: m[examIndex], Score: score}
			tokens = append(tokens, token{kind: kindQualification, qual: qual, span: sp})
		case m[numberIndex] != "":
			if m[subjectIndex] != "" {
				lastSubject = m[subjectIndex]
			}
			if lastSubject == "" {
				return nil, fmt.Errorf("'%s': no subject found for course number", sp)
			}
			qual := api.CourseCode{Subject: lastSubject, Number: m[numberIndex]}
			tokens = append(tokens, token{kind: kindQualification, qual: qual, span: sp})
		default:
			return nil, fmt.Errorf("'%s': unrecognized token", sp)
		}
	}
	tokens = append(tokens, token{kind: kindEOI, span: span{input: input, start: len(input), end: len(input)}})
	return tokens, nil
}

// resolveCommas rewrites each comma as the conjunction named later at the
// same parenthesis depth. The walk runs right to left so the nearest
// following operator wins, and a depth with no operator defaults to "or".
func resolveCommas(tokens []token) {
	conjunctives := map[int]api.Operator{}
	depth := 0
	for i := len(tokens) - 1; i >= 0; i-- {
		switch tokens[i].kind {
		case kindOperator:
			conjunctives[depth] = tokens[i].op
		case kindLeftParen:
			depth++
		case kindRightParen:
			depth--
		case kindComma:
			op, exists := conjunctives[depth]
			if !exists {
				op = api.OperatorAny
			}
			tokens[i].kind = kindOperator
			tokens[i].op = op
		}
	}
}

type stream struct {
	tokens []token
	index  int
}

func (s *stream) peek() (token, error) {
	if s.index >= len(s.tokens) {
		return token{}, fmt.Errorf("reached the end of the input too early")
	}
	return s.tokens[s.index], nil
}

func (s *stream) expect(kind tokenKind) error {
	found, err := s.peek()
	if err != nil {
		return err
	}
	if found.kind != kind {
		return fmt.Errorf("'%s': expected %s, found %s", found.span, kindName(kind), kindName(found.kind))
	}
	s.index++
	return nil
}

func (s *stream) accept(op api.Operator) bool {
	found, err := s.peek()
	if err != nil || found.kind != kindOperator || found.op != op {
		return false
	}
	s.index++
	return true
}

func parseAny(s *stream) (*api.PrerequisiteTree, error) {
	var children []*api.PrerequisiteTree
	for {
		child, err := parseAll(s)
		if err != nil {
			return nil, err
		}
		if child != nil {
			children = append(children, child)
		}
		if !s.accept(api.OperatorAny) {
			break
		}
	}
	switch len(children) {
	case 0:
		return nil, nil
	case 1:
		return children[0], nil
	}
	return api.Any(children...), nil
}

func parseAll(s *stream) (*api.PrerequisiteTree, error) {
	var children []*api.PrerequisiteTree
	for {
		child, err := parseBase(s)
		if err != nil {
			return nil, err
		}
		if child != nil {
			children = append(children, child)
		}
		if !s.accept(api.OperatorAll) {
			break
		}
	}
	switch len(children) {
	case 0:
		return nil, nil
	case 1:
		return children[0], nil
	}
	return api.All(children...), nil
}

func parseBase(s *stream) (*api.PrerequisiteTree, error) {
	t, err := s.peek()
	if err != nil {
		return nil, err
	}
	s.index++
	switch t.kind {
	case kindQualification:
		return api.Leaf(t.qual), nil
	case kindWaive:
		// the graduate waiver names no requirement
		return nil, nil
	case kindLeftParen:
		ret, err := parseAny(s)
		if err != nil {
			return nil, err
		}
		if err := s.expect(kindRightParen); err != nil {
			return nil, err
		}
		return ret, nil
	}
	return nil, fmt.Errorf("'%s': expected qualification or '(', found %s", t.span, kindName(t.kind))
}
