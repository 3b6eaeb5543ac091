// Package parser wraps tree-sitter for parsing Python source fragments.
//
// The structural analyzer inspects added-line blobs reconstructed from
// diffs, so inputs are frequently incomplete programs. Callers must treat
// syntax errors as an expected outcome, not an exceptional one.
package parser

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser wraps a tree-sitter parser configured for Python.
type Parser struct {
	parser *sitter.Parser
}

// ParseResult contains the parsed AST and its source.
type ParseResult struct {
	Tree   *sitter.Tree
	Source []byte
}

// New creates a new parser instance.
func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses source code into a syntax tree.
func (p *Parser) Parse(source []byte) (*ParseResult, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse: %w", err)
	}
	return &ParseResult{Tree: tree, Source: source}, nil
}

// HasSyntaxError reports whether the parse produced error or missing nodes.
func (r *ParseResult) HasSyntaxError() bool {
	root := r.Tree.RootNode()
	return root == nil || root.HasError()
}

// Close releases parser resources.
func (p *Parser) Close() {
	p.parser.Close()
}

// NodeVisitor is a function that visits AST nodes. Returning false stops
// descent into the node's children.
type NodeVisitor func(node *sitter.Node, nodeType string) bool

// Walk traverses the AST calling visitor for each node. Node types are
// cached once per node to reduce CGO overhead.
func Walk(node *sitter.Node, visitor NodeVisitor) {
	if node == nil {
		return
	}

	nodeType := node.Type()
	if !visitor(node, nodeType) {
		return
	}

	for i := range int(node.ChildCount()) {
		Walk(node.Child(i), visitor)
	}
}
