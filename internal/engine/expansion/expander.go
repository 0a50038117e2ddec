// Package expansion replaces the placeholder tokens that may appear in a
// test-case locator, its arguments or an embedded script.
//
// Each token class is expanded by its own pass. There is no escaping: a value
// substituted by an earlier pass is subject to later passes, so a parameter
// value containing "[TestCaseId]" is itself expanded by ExpandIDs.
package expansion

import (
	"strconv"
	"strings"

	"github.com/isseis/go-cmdline-engine/internal/engine/enginetypes"
)

// Recognized tokens.
const (
	TokenMyDocuments      = "[MyDocuments]"
	TokenCommonDocuments  = "[CommonDocuments]"
	TokenDesktopDirectory = "[DesktopDirectory]"
	TokenProgramFiles     = "[ProgramFiles]"
	TokenProgramFilesX86  = "[ProgramFilesX86]"

	TokenProjectID  = "[ProjectId]"
	TokenTestCaseID = "[TestCaseId]"
	TokenTestRunID  = "[TestRunId]"
	TokenTestSetID  = "[TestSetId]"
	TokenReleaseID  = "[ReleaseId]"

	TokenFilenameBraces   = "{filename}"
	TokenFilenameBrackets = "[filename]"
)

// Context carries the values substituted for tokens during one execution.
type Context struct {
	ProjectID  int
	TestCaseID int
	TestRunID  int
	TestSetID  *int
	ReleaseID  *int

	Folders SpecialFolders

	// ScriptPath is the materialized script file; filename tokens are only
	// expanded when it is set.
	ScriptPath string
}

// NewContext builds a Context for req.
func NewContext(req *enginetypes.TestInvocationRequest, projectID int, folders SpecialFolders) Context {
	return Context{
		ProjectID:  projectID,
		TestCaseID: req.TestCaseID,
		TestRunID:  req.TestRunID,
		TestSetID:  req.TestSetID,
		ReleaseID:  req.ReleaseID,
		Folders:    folders,
	}
}

// ParameterToken returns the token that stands for the named parameter in an
// embedded script, e.g. "${browser}".
func ParameterToken(name string) string {
	return "${" + name + "}"
}

// ExpandFolders replaces the special-folder tokens.
func (c Context) ExpandFolders(s string) string {
	return strings.NewReplacer(
		TokenMyDocuments, c.Folders.MyDocuments,
		TokenCommonDocuments, c.Folders.CommonDocuments,
		TokenDesktopDirectory, c.Folders.DesktopDirectory,
		TokenProgramFilesX86, c.Folders.ProgramFilesX86,
		TokenProgramFiles, c.Folders.ProgramFiles,
	).Replace(s)
}

// ExpandIDs replaces the id tokens. [TestSetId] and [ReleaseId] are left in
// place when the corresponding id is absent.
func (c Context) ExpandIDs(s string) string {
	pairs := []string{
		TokenTestCaseID, strconv.Itoa(c.TestCaseID),
		TokenTestRunID, strconv.Itoa(c.TestRunID),
		TokenProjectID, strconv.Itoa(c.ProjectID),
	}
	if c.TestSetID != nil {
		pairs = append(pairs, TokenTestSetID, strconv.Itoa(*c.TestSetID))
	}
	if c.ReleaseID != nil {
		pairs = append(pairs, TokenReleaseID, strconv.Itoa(*c.ReleaseID))
	}
	return strings.NewReplacer(pairs...).Replace(s)
}

// ExpandFilename replaces {filename} and [filename] with the script path.
// Without a script path the string is returned unchanged.
func (c Context) ExpandFilename(s string) string {
	if c.ScriptPath == "" {
		return s
	}
	return strings.NewReplacer(
		TokenFilenameBraces, c.ScriptPath,
		TokenFilenameBrackets, c.ScriptPath,
	).Replace(s)
}

// ExpandScript expands an embedded script body: parameter tokens first, in
// parameter order, then id tokens.
func (c Context) ExpandScript(script string, params []enginetypes.Parameter) string {
	for _, p := range params {
		script = strings.ReplaceAll(script, ParameterToken(p.Name), p.Value)
	}
	return c.ExpandIDs(script)
}

// ExpandArguments expands an arguments template with every token class that
// applies to arguments: special folders, filename, then ids.
func (c Context) ExpandArguments(s string) string {
	return c.ExpandIDs(c.ExpandFilename(c.ExpandFolders(s)))
}
