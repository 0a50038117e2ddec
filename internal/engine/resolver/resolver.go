// Package resolver builds the concrete invocation (executable, argument string
// and optional materialized script) from a test invocation request.
//
// Locator format: "path|arguments|parameter-mask". For example
//
//	[ProgramFiles]\MyCommand.exe|-execute MyScript.txt -arg1|-name:value
//
// becomes "C:\Program Files\MyCommand.exe" with arguments
// "-execute MyScript.txt -arg1 -param1:value1 -param2:value2".
// For embedded scripts the parameter mask is not used; parameters replace
// ${name} tokens inside the script and {filename} in the arguments points at
// the written script.
package resolver

import (
	"errors"
	"strings"

	"github.com/isseis/go-cmdline-engine/internal/common"
	"github.com/isseis/go-cmdline-engine/internal/engine/enginetypes"
	"github.com/isseis/go-cmdline-engine/internal/engine/expansion"
	"github.com/isseis/go-cmdline-engine/internal/engine/runerrors"
)

const (
	// LocatorSeparator separates the locator fields.
	LocatorSeparator = "|"

	// MaxTestNameLength is the host limit for the runner test name.
	MaxTestNameLength = 50

	maskNamePlaceholder  = "name"
	maskValuePlaceholder = "value"
)

// ErrNoScriptWriter is returned when an embedded script is resolved by a resolver built without a ScriptWriter.
var ErrNoScriptWriter = errors.New("no script writer configured for embedded test script")

// ScriptWriter materializes an embedded script and returns its path.
type ScriptWriter interface {
	WriteScript(body string) (string, error)
}

// Resolver turns requests into resolved commands.
type Resolver struct {
	folders expansion.SpecialFolders
	scripts ScriptWriter
}

// New creates a resolver. scripts may be nil when only references are resolved.
func New(folders expansion.SpecialFolders, scripts ScriptWriter) *Resolver {
	return &Resolver{
		folders: folders,
		scripts: scripts,
	}
}

// Locator holds the split fields of a locator string.
type Locator struct {
	Path          string
	Arguments     string
	ParameterMask string
	HasArguments  bool
	HasMask       bool
}

// ParseLocator splits a locator into at most three fields. Missing fields are
// empty; fields after the third are ignored.
func ParseLocator(locator string) Locator {
	fields := strings.Split(locator, LocatorSeparator)
	loc := Locator{Path: fields[0]}
	if len(fields) > 1 {
		loc.Arguments = fields[1]
		loc.HasArguments = true
	}
	if len(fields) > 2 {
		loc.ParameterMask = fields[2]
		loc.HasMask = true
	}
	return loc
}

// Resolve builds the command for req. Embedded scripts are written to the
// working directory as a side effect.
func (r *Resolver) Resolve(req *enginetypes.TestInvocationRequest, projectID int) (*enginetypes.ResolvedCommand, error) {
	ctx := expansion.NewContext(req, projectID, r.folders)

	var tempFile string
	if req.Source.Kind == enginetypes.SourceEmbeddedScript {
		if len(req.Source.Script) == 0 {
			return nil, runerrors.ErrEmptyScript
		}
		if r.scripts == nil {
			return nil, ErrNoScriptWriter
		}

		body := ctx.ExpandScript(string(req.Source.Script), req.Parameters)
		path, err := r.scripts.WriteScript(body)
		if err != nil {
			return nil, err
		}
		tempFile = path
		ctx.ScriptPath = path
	}

	loc := ParseLocator(req.Source.Locator)
	cmd := &enginetypes.ResolvedCommand{
		Executable: ctx.ExpandFolders(loc.Path),
		TestName:   common.Truncate(loc.Path, MaxTestNameLength),
		TempFile:   tempFile,
	}

	if loc.HasArguments {
		cmd.Arguments = ctx.ExpandArguments(loc.Arguments)
	}

	if loc.HasMask && req.Source.Kind == enginetypes.SourceReference {
		var b strings.Builder
		b.WriteString(cmd.Arguments)
		for _, p := range req.Parameters {
			b.WriteString(" ")
			b.WriteString(ApplyMask(loc.ParameterMask, p))
		}
		cmd.Arguments = b.String()
	}

	return cmd, nil
}

// ApplyMask instantiates a parameter mask for one parameter: the literal
// substring "name" becomes the parameter name, then the literal substring
// "value" becomes the parameter value. The substrings are not delimited, so a
// mask such as "--rename=value" also has its "name" replaced.
func ApplyMask(mask string, p enginetypes.Parameter) string {
	arg := strings.ReplaceAll(mask, maskNamePlaceholder, p.Name)
	return strings.ReplaceAll(arg, maskValuePlaceholder, p.Value)
}
