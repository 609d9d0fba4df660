package linter

import (
	"sort"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/init-js/jshint-mode/pkg/lintconf"
)

// esbuildLinter parses source text with esbuild and converts its error and
// warning messages into findings.
type esbuildLinter struct {
	name          string
	defaultTarget api.Target
}

// NewJSHint creates the default, permissive linter. It accepts the latest
// language syntax unless the configuration pins an older esversion.
func NewJSHint() Linter {
	return &esbuildLinter{name: ModeJSHint, defaultTarget: api.ESNext}
}

// NewJSLint creates the strict linter. It targets ES5 by default, so newer
// syntax that cannot be expressed as ES5 is reported.
func NewJSLint() Linter {
	return &esbuildLinter{name: ModeJSLint, defaultTarget: api.ES5}
}

func (l *esbuildLinter) Lint(source, filename string, config lintconf.Config) ([]Finding, error) {
	result := api.Transform(source, api.TransformOptions{
		Loader:     api.LoaderJS,
		Target:     targetFromConfig(config, l.defaultTarget),
		Sourcefile: filename,
		LogLevel:   api.LogLevelSilent,
	})

	findings := make([]Finding, 0, len(result.Errors)+len(result.Warnings))
	for _, msg := range result.Errors {
		findings = append(findings, findingFromMessage(msg))
	}
	for _, msg := range result.Warnings {
		findings = append(findings, findingFromMessage(msg))
	}

	// esbuild reports errors and warnings as separate lists; merge back
	// into source order.
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Character < findings[j].Character
	})

	return findings, nil
}

func findingFromMessage(msg api.Message) Finding {
	f := Finding{Reason: msg.Text}
	if msg.Location != nil {
		f.Line = msg.Location.Line
		// esbuild columns are 0-based; editors and the report format
		// count characters from 1.
		f.Character = msg.Location.Column + 1
		f.Evidence = msg.Location.LineText
	}
	return f
}

// targetFromConfig maps the jshint "esversion" option onto an esbuild
// language target. Unknown or absent values keep the linter's default.
func targetFromConfig(config lintconf.Config, fallback api.Target) api.Target {
	raw, ok := config["esversion"]
	if !ok {
		return fallback
	}

	version, ok := raw.(float64) // JSON numbers decode as float64
	if !ok {
		return fallback
	}

	switch int(version) {
	case 3, 5:
		return api.ES5
	case 6, 2015:
		return api.ES2015
	case 7, 2016:
		return api.ES2016
	case 8, 2017:
		return api.ES2017
	case 9, 2018:
		return api.ES2018
	case 10, 2019:
		return api.ES2019
	case 11, 2020:
		return api.ES2020
	case 12, 2021:
		return api.ES2021
	case 13, 2022:
		return api.ES2022
	default:
		return fallback
	}
}
