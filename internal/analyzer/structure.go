package analyzer

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/panbanda/merit/pkg/models"
	"github.com/panbanda/merit/pkg/parser"
)

// StructuralAnalyzer parses source-like fragments and flags complexity and
// nesting problems. Input is reconstructed from diff added lines, so it is
// frequently not a standalone-parseable program: a failed parse counts one
// syntax error and ends analysis for that blob, and any other failure
// yields an empty result.
type StructuralAnalyzer struct {
	parser *parser.Parser

	complexityThreshold int
	nestingThreshold    int
}

// StructuralOption is a functional option for configuring StructuralAnalyzer.
type StructuralOption func(*StructuralAnalyzer)

// WithComplexityThreshold sets the cyclomatic complexity limit above which
// a function is flagged.
func WithComplexityThreshold(n int) StructuralOption {
	return func(a *StructuralAnalyzer) {
		if n > 0 {
			a.complexityThreshold = n
		}
	}
}

// WithNestingThreshold sets the nesting depth limit above which a
// conditional or loop construct is flagged.
func WithNestingThreshold(n int) StructuralOption {
	return func(a *StructuralAnalyzer) {
		if n > 0 {
			a.nestingThreshold = n
		}
	}
}

// NewStructuralAnalyzer creates an analyzer with default thresholds.
func NewStructuralAnalyzer(opts ...StructuralOption) *StructuralAnalyzer {
	a := &StructuralAnalyzer{
		parser:              parser.New(),
		complexityThreshold: 10,
		nestingThreshold:    3,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// decisionTypes are the constructs that increment cyclomatic complexity.
var decisionTypes = map[string]bool{
	"if_statement":    true,
	"elif_clause":     true,
	"for_statement":   true,
	"while_statement": true,
	"try_statement":   true,
	"except_clause":   true,
}

// nestingTypes are the constructs that increment nesting depth.
var nestingTypes = map[string]bool{
	"if_statement":    true,
	"for_statement":   true,
	"while_statement": true,
	"try_statement":   true,
}

// transparentTypes are containers descended through without changing depth.
var transparentTypes = map[string]bool{
	"block":          true,
	"else_clause":    true,
	"elif_clause":    true,
	"except_clause":  true,
	"finally_clause": true,
}

// Analyze parses the blob and tallies structural issues.
func (a *StructuralAnalyzer) Analyze(source string) models.IssueTally {
	tally := models.NewIssueTally()

	result, err := a.parser.Parse([]byte(source))
	if err != nil {
		return tally
	}
	if result.HasSyntaxError() {
		tally.Add(models.IssueSyntaxError, 1)
		return tally
	}

	parser.Walk(result.Tree.RootNode(), func(node *sitter.Node, nodeType string) bool {
		switch {
		case nodeType == "function_definition":
			if a.cyclomaticComplexity(node) > a.complexityThreshold {
				tally.Add(models.IssueHighComplexity, 1)
			}
		case nodeType == "if_statement" || nodeType == "for_statement" || nodeType == "while_statement":
			if maxNestingDepth(node, 0) > a.nestingThreshold {
				tally.Add(models.IssueDeepNesting, 1)
			}
		}
		return true
	})

	return tally
}

// cyclomaticComplexity approximates decision paths through a function:
// 1 plus one increment per branching, looping or exception-handling
// construct in its subtree.
func (a *StructuralAnalyzer) cyclomaticComplexity(fn *sitter.Node) int {
	complexity := 1
	parser.Walk(fn, func(node *sitter.Node, nodeType string) bool {
		if node != fn && decisionTypes[nodeType] {
			complexity++
		}
		return true
	})
	return complexity
}

// maxNestingDepth returns the deepest chain of conditional/loop/exception
// constructs nested below node. Only those constructs increase depth;
// their body containers are descended through transparently, and anything
// else (such as a nested function definition) ends the search.
func maxNestingDepth(node *sitter.Node, depth int) int {
	deepest := depth
	for i := range int(node.ChildCount()) {
		child := node.Child(i)
		childType := child.Type()

		var d int
		switch {
		case nestingTypes[childType]:
			d = maxNestingDepth(child, depth+1)
		case transparentTypes[childType]:
			d = maxNestingDepth(child, depth)
		default:
			continue
		}
		if d > deepest {
			deepest = d
		}
	}
	return deepest
}

// Close releases parser resources.
func (a *StructuralAnalyzer) Close() {
	a.parser.Close()
}
