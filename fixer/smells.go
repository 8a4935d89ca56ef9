/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package fixer

import (
	"fmt"
	"strings"
)

// SmellKind is the closed vocabulary of linter findings the generator knows
// how to instruct a model about. Codes outside this set are rejected up
// front rather than turned into open-ended prompts.
type SmellKind int

const (
	SmellUnknown SmellKind = iota
	SmellMissingModuleDocstring
	SmellMissingClassDocstring
	SmellLineTooLong
	SmellComplexLine
	SmellImportOrder
	SmellWildcardImport
	SmellUnusedImport
	SmellAttributeError
	SmellDocstringFormat
)

// Classify maps a pylint message ID onto a SmellKind. Exact matches take
// precedence over the prefix families (C041x unused/unresolved imports,
// E11x attribute and call errors).
func Classify(code string) (SmellKind, bool) {
	switch code {
	case "C0114":
		return SmellMissingModuleDocstring, true
	case "C0115":
		return SmellMissingClassDocstring, true
	case "C0301":
		return SmellLineTooLong, true
	case "C0303":
		return SmellComplexLine, true
	case "C0411":
		return SmellImportOrder, true
	case "C0412":
		return SmellWildcardImport, true
	case "D0123":
		return SmellDocstringFormat, true
	}

	switch {
	case strings.HasPrefix(code, "C041"), code == "E0401":
		return SmellUnusedImport, true
	case strings.HasPrefix(code, "E11"):
		return SmellAttributeError, true
	}

	return SmellUnknown, false
}

// instruction builds the model instruction for one finding, embedding the
// full current file content.
func instruction(kind SmellKind, code, content string) string {
	var directive string
	switch kind {
	case SmellMissingModuleDocstring:
		directive = "Add a one-liner *module* docstring at the very top."
	case SmellMissingClassDocstring:
		directive = "Add a one-liner *class* docstring."
	case SmellLineTooLong:
		directive = "Refactor any line >100 chars so it complies with PEP-8."
	case SmellComplexLine:
		directive = "Refactor overly complex lines into simpler constructs."
	case SmellImportOrder:
		directive = "Move all import statements to the top of the file (PEP-8)."
	case SmellWildcardImport:
		directive = "Replace the wildcard import with explicit names."
	case SmellUnusedImport:
		directive = "Remove or fix any unused / unresolved imports."
	case SmellAttributeError:
		directive = fmt.Sprintf("Fix the %s attribute / call error shown below.", code)
	case SmellDocstringFormat:
		directive = "Re-format all docstrings to follow PEP-257."
	}

	return fmt.Sprintf("%s\n\nFile content:\n\"\"\"%s\"\"\"", directive, content)
}
