// Package enumerator lists the analyzable units of a Python fixture
// using tree-sitter. A unit is a top-level function (async included) or
// a "Class::method" pair for methods declared directly in a top-level
// class body. Deeper nesting is deliberately not scanned: the analyzer
// under test classifies the same shallow set.
package enumerator

import (
	"context"
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/loopsleuth/sleuthbench/internal/domain"
)

// Enumerator implements domain.UnitEnumerator for Python sources.
type Enumerator struct{}

// New creates a new Enumerator.
func New() *Enumerator { return &Enumerator{} }

// Enumerate reads a fixture file and returns its unit IDs in source order.
func (e *Enumerator) Enumerate(ctx context.Context, fixturePath string) ([]domain.UnitID, error) {
	source, err := os.ReadFile(fixturePath)
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	return e.EnumerateSource(ctx, fixturePath, source)
}

// EnumerateSource enumerates units from in-memory source bytes.
func (e *Enumerator) EnumerateSource(ctx context.Context, path string, source []byte) ([]domain.UnitID, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, &domain.ParseError{Path: path, Detail: err.Error()}
	}
	root := tree.RootNode()
	if root.HasError() {
		return nil, &domain.ParseError{Path: path, Detail: "syntax error in fixture"}
	}

	var units []domain.UnitID
	for i := 0; i < int(root.NamedChildCount()); i++ {
		node := root.NamedChild(i)
		switch node.Type() {
		case "function_definition":
			if name := definitionName(node, source); name != "" {
				units = append(units, name)
			}
		case "class_definition":
			units = append(units, classMethods(node, source)...)
		case "decorated_definition":
			def := node.ChildByFieldName("definition")
			if def == nil {
				continue
			}
			switch def.Type() {
			case "function_definition":
				if name := definitionName(def, source); name != "" {
					units = append(units, name)
				}
			case "class_definition":
				units = append(units, classMethods(def, source)...)
			}
		}
	}
	return units, nil
}

// classMethods returns "Class::method" IDs for defs directly in the
// class body.
func classMethods(class *sitter.Node, source []byte) []domain.UnitID {
	className := definitionName(class, source)
	body := class.ChildByFieldName("body")
	if className == "" || body == nil {
		return nil
	}

	var units []domain.UnitID
	for i := 0; i < int(body.NamedChildCount()); i++ {
		node := body.NamedChild(i)
		if node.Type() == "decorated_definition" {
			if def := node.ChildByFieldName("definition"); def != nil {
				node = def
			}
		}
		if node.Type() != "function_definition" {
			continue
		}
		if name := definitionName(node, source); name != "" {
			units = append(units, className+"::"+name)
		}
	}
	return units
}

func definitionName(node *sitter.Node, source []byte) string {
	name := node.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return name.Content(source)
}
