// Package classifier maps captured process output onto a test status using
// four ordered, case-insensitive regular expressions.
//
// Rules are evaluated in the fixed order pass, caution, fail, blocked and each
// match overwrites the running status. When several rules match, the last
// one in that order wins: blocked beats fail, fail beats caution, caution
// beats pass, and the configured default applies when nothing matches.
package classifier

import (
	"regexp"

	"github.com/isseis/go-cmdline-engine/internal/engine/enginetypes"
	"github.com/isseis/go-cmdline-engine/internal/engine/runerrors"
)

// Rule names, in evaluation order.
const (
	RulePass    = "pass"
	RuleCaution = "caution"
	RuleFail    = "fail"
	RuleBlocked = "blocked"
)

type rule struct {
	name    string
	pattern *regexp.Regexp
	status  enginetypes.Status
}

// Classifier holds a compiled rule set. It is safe for concurrent use.
type Classifier struct {
	rules         []rule
	defaultStatus enginetypes.Status
}

// Match describes one rule that matched the output.
type Match struct {
	Rule   string
	Status enginetypes.Status
	// Text is the leftmost match in the output.
	Text string
}

// Compile compiles rules. An empty pattern matches any output, so its rule
// always applies. Invalid syntax is reported as *runerrors.InvalidPatternError
// naming the rule.
func Compile(rules enginetypes.ClassificationRules) (*Classifier, error) {
	specs := []struct {
		name    string
		pattern string
		status  enginetypes.Status
	}{
		{RulePass, rules.Pass, enginetypes.StatusPassed},
		{RuleCaution, rules.Caution, enginetypes.StatusCaution},
		{RuleFail, rules.Fail, enginetypes.StatusFailed},
		{RuleBlocked, rules.Blocked, enginetypes.StatusBlocked},
	}

	c := &Classifier{defaultStatus: rules.DefaultStatus}
	for _, spec := range specs {
		re, err := regexp.Compile("(?i)" + spec.pattern)
		if err != nil {
			return nil, &runerrors.InvalidPatternError{Rule: spec.name, Pattern: spec.pattern, Err: err}
		}
		c.rules = append(c.rules, rule{name: spec.name, pattern: re, status: spec.status})
	}
	return c, nil
}

// Classify returns the status for output.
func (c *Classifier) Classify(output string) enginetypes.Status {
	status := c.defaultStatus
	for _, r := range c.rules {
		if r.pattern.MatchString(output) {
			status = r.status
		}
	}
	return status
}

// Explain returns every rule that matches output, in evaluation order,
// together with the resulting status.
func (c *Classifier) Explain(output string) ([]Match, enginetypes.Status) {
	var matches []Match
	for _, r := range c.rules {
		if loc := r.pattern.FindStringIndex(output); loc != nil {
			matches = append(matches, Match{Rule: r.name, Status: r.status, Text: output[loc[0]:loc[1]]})
		}
	}
	return matches, c.Classify(output)
}

// DefaultStatus returns the status used when no rule matches.
func (c *Classifier) DefaultStatus() enginetypes.Status {
	return c.defaultStatus
}

// Classify compiles rules and classifies output in one step.
func Classify(output string, rules enginetypes.ClassificationRules) (enginetypes.Status, error) {
	c, err := Compile(rules)
	if err != nil {
		return 0, err
	}
	return c.Classify(output), nil
}
