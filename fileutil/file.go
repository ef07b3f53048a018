// Copyright (c) 2026, Daniel Martí <mvdan@mvdan.cc>
// See LICENSE for licensing information

// Package fileutil helps find brace expression files when walking
// directories.
package fileutil

import (
	"os"
	"regexp"
	"strings"
)

// Ext is the filename extension of files holding a brace expression.
const Ext = ".brex"

var vcsDir = regexp.MustCompile(`^\.(git|svn|hg)$`)

// Confidence says whether a path should be treated as a brace expression
// file.
type Confidence int

const (
	ConfNotExpr Confidence = iota
	ConfIsExpr
)

// CouldBeExpr reports whether a file found while walking a directory holds a
// brace expression. Hidden files and files without the Ext extension are
// skipped; paths given explicitly by the user need no such check.
func CouldBeExpr(info os.FileInfo) Confidence {
	name := info.Name()
	switch {
	case info.IsDir(), name[0] == '.', !info.Mode().IsRegular():
		return ConfNotExpr
	case strings.HasSuffix(name, Ext) && len(name) > len(Ext):
		return ConfIsExpr
	default:
		return ConfNotExpr
	}
}

// SkipDir reports whether a directory should not be walked into, such as
// version control metadata.
func SkipDir(info os.FileInfo) bool {
	return info.IsDir() && vcsDir.MatchString(info.Name())
}

// OutputPath returns the path of the file where the expansion of the brace
// expression file at path is stored: the same path with a ".txt" extension
// instead of Ext.
func OutputPath(path string) string {
	return strings.TrimSuffix(path, Ext) + ".txt"
}
