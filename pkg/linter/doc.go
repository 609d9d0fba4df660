// Package linter defines the lint finding model, the linter backends, and
// the plain-text report format returned to editor clients.
//
// Two modes are registered:
//   - jshint: the default, permissive profile (latest language target
//     unless the configuration says otherwise)
//   - jslint: a strict profile that targets ES5 by default
//
// Both are backed by esbuild's JavaScript parser; a finding carries the
// 1-based line and character of the problem, the message text, and the
// offending source line as evidence.
package linter
