// Package lintconf loads and caches linter configuration files.
//
// Configuration files are JSON objects that may contain /* block */ and
// // line comments (the .jshintrc convention). Comments are stripped
// before parsing.
//
// Loaded configurations are cached per path. A cached entry is reused
// until the file's metadata snapshot (device, inode, size, modification
// time) changes, so repeated checks against the same project do not
// re-read or re-parse the file.
package lintconf
