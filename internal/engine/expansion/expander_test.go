package expansion

import (
	"strings"
	"testing"

	"github.com/isseis/go-cmdline-engine/internal/engine/enginetypes"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func intPtr(v int) *int { return &v }

func testFolders() SpecialFolders {
	return SpecialFolders{
		MyDocuments:      "/home/tester/Documents",
		CommonDocuments:  "/usr/local/share",
		DesktopDirectory: "/home/tester/Desktop",
		ProgramFiles:     "/opt",
		ProgramFilesX86:  "/opt32",
	}
}

func TestExpandFolders(t *testing.T) {
	c := Context{Folders: testFolders()}

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "my documents", input: "[MyDocuments]/script.txt", want: "/home/tester/Documents/script.txt"},
		{name: "common documents", input: "[CommonDocuments]/x", want: "/usr/local/share/x"},
		{name: "desktop", input: "[DesktopDirectory]", want: "/home/tester/Desktop"},
		{name: "program files", input: "[ProgramFiles]/tool", want: "/opt/tool"},
		{name: "program files x86", input: "[ProgramFilesX86]/tool", want: "/opt32/tool"},
		{name: "both program files", input: "[ProgramFiles] [ProgramFilesX86]", want: "/opt /opt32"},
		{name: "ids untouched", input: "[TestCaseId]", want: "[TestCaseId]"},
		{name: "case sensitive", input: "[mydocuments]", want: "[mydocuments]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ExpandFolders(tt.input))
		})
	}
}

func TestExpandIDs(t *testing.T) {
	tests := []struct {
		name  string
		ctx   Context
		input string
		want  string
	}{
		{
			name:  "required ids",
			ctx:   Context{ProjectID: 1, TestCaseID: 42, TestRunID: 7},
			input: "-p [ProjectId] -c [TestCaseId] -r [TestRunId]",
			want:  "-p 1 -c 42 -r 7",
		},
		{
			name:  "optional ids present",
			ctx:   Context{TestSetID: intPtr(5), ReleaseID: intPtr(9)},
			input: "[TestSetId]/[ReleaseId]",
			want:  "5/9",
		},
		{
			name:  "optional ids absent are left literal",
			ctx:   Context{},
			input: "[TestSetId]/[ReleaseId]",
			want:  "[TestSetId]/[ReleaseId]",
		},
		{
			name:  "repeated token",
			ctx:   Context{TestCaseID: 3},
			input: "[TestCaseId][TestCaseId]",
			want:  "33",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ctx.ExpandIDs(tt.input))
		})
	}
}

func TestExpandFilename(t *testing.T) {
	t.Run("without script path", func(t *testing.T) {
		c := Context{}
		assert.Equal(t, "-f {filename} [filename]", c.ExpandFilename("-f {filename} [filename]"))
	})

	t.Run("with script path", func(t *testing.T) {
		c := Context{ScriptPath: "/data/RemoteLaunch/CommandLineEngine.txt"}
		assert.Equal(t,
			`-f "/data/RemoteLaunch/CommandLineEngine.txt" /data/RemoteLaunch/CommandLineEngine.txt`,
			c.ExpandFilename(`-f "{filename}" [filename]`))
	})
}

func TestExpandScript(t *testing.T) {
	c := Context{ProjectID: 1, TestCaseID: 42, TestRunID: 7}
	params := []enginetypes.Parameter{
		{Name: "browser", Value: "firefox"},
		{Name: "url", Value: "http://example.test/[TestCaseId]"},
	}

	got := c.ExpandScript("open ${url} in ${browser}; ${Browser}; run [TestRunId]", params)

	// parameters are matched case-sensitively and expanded before ids
	assert.Equal(t, "open http://example.test/42 in firefox; ${Browser}; run 7", got)
}

func TestExpandArguments(t *testing.T) {
	c := Context{
		ProjectID:  1,
		TestCaseID: 42,
		TestRunID:  7,
		Folders:    testFolders(),
		ScriptPath: "/tmp/script.txt",
	}

	got := c.ExpandArguments("-execute {filename} -out [MyDocuments]/[TestRunId].log")
	assert.Equal(t, "-execute /tmp/script.txt -out /home/tester/Documents/7.log", got)
}

func TestParameterToken(t *testing.T) {
	assert.Equal(t, "${name}", ParameterToken("name"))
}

func TestNewContext(t *testing.T) {
	req := &enginetypes.TestInvocationRequest{TestCaseID: 2, TestRunID: 3, TestSetID: intPtr(4)}
	c := NewContext(req, 1, testFolders())

	assert.Equal(t, 1, c.ProjectID)
	assert.Equal(t, 2, c.TestCaseID)
	assert.Equal(t, 3, c.TestRunID)
	assert.Equal(t, 4, *c.TestSetID)
	assert.Nil(t, c.ReleaseID)
	assert.Empty(t, c.ScriptPath)
}

func TestSpecialFolders_Merge(t *testing.T) {
	base := testFolders()
	merged := base.Merge(SpecialFolders{ProgramFiles: "/usr/local"})

	assert.Equal(t, "/usr/local", merged.ProgramFiles)
	assert.Equal(t, base.MyDocuments, merged.MyDocuments)
	assert.Equal(t, base, base.Merge(SpecialFolders{}))
}

// Strings without '[', '{' or '$' cannot contain any token.
func TestExpansion_IdempotentWithoutTokens(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.StringMatching(`[^\[\{\$]*`).Draw(t, "s")
		c := Context{
			ProjectID:  rapid.Int().Draw(t, "project"),
			TestCaseID: rapid.Int().Draw(t, "case"),
			TestRunID:  rapid.Int().Draw(t, "run"),
			TestSetID:  intPtr(rapid.Int().Draw(t, "set")),
			Folders:    testFolders(),
			ScriptPath: "/tmp/script.txt",
		}
		params := []enginetypes.Parameter{{Name: "p", Value: "v"}}

		if got := c.ExpandArguments(s); got != s {
			t.Fatalf("ExpandArguments(%q) = %q", s, got)
		}
		if got := c.ExpandScript(s, params); got != s {
			t.Fatalf("ExpandScript(%q) = %q", s, got)
		}
		if got := c.ExpandFolders(s); got != s {
			t.Fatalf("ExpandFolders(%q) = %q", s, got)
		}
	})
}

// Expanding an already expanded string changes nothing once no tokens remain.
func TestExpansion_ExpandedOutputIsStable(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		words := rapid.SliceOf(rapid.SampledFrom([]string{
			"[TestCaseId]", "[TestRunId]", "[ProjectId]", "[ProgramFiles]", "-x", " ", "a",
		})).Draw(t, "words")
		s := strings.Join(words, "")
		c := Context{ProjectID: 1, TestCaseID: 2, TestRunID: 3, Folders: testFolders()}

		once := c.ExpandArguments(s)
		if twice := c.ExpandArguments(once); twice != once {
			t.Fatalf("second expansion of %q changed %q to %q", s, once, twice)
		}
	})
}
