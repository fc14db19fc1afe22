// Package walker traverses a project directory and produces the ordered file list and printable tree.
package walker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/temirov/ingest/internal/types"
	"github.com/temirov/ingest/internal/utils"
)

const (
	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "
	directorySuffix     = "/"

	errorLineFormat         = "[error reading directory: %v]"
	errorRootStatFormat     = "stat root %s: %w"
	errorRootReadFormat     = "read root %s: %w"
	errorAbsolutePathFormat = "resolve absolute path for %s: %w"
)

// ErrNotDirectory is returned when the walk root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Matcher decides whether a root-relative, slash separated path is excluded.
type Matcher interface {
	IsIgnored(relativePath string, isDirectory bool) bool
}

// Options tunes a walk. PruneEmptyDirectories drops directories left with no
// files and no read errors after filtering.
type Options struct {
	Logger                *zap.Logger
	PruneEmptyDirectories bool
}

// Result is the outcome of a walk. Files are in tree order: directories before
// files at each level, then by name.
type Result struct {
	Root        string
	Files       []types.FileEntry
	TreeLines   []string
	Directories int
	Errors      int
}

// Items returns the number of files and directories listed in the tree.
func (result Result) Items() int {
	return len(result.Files) + result.Directories
}

type walker struct {
	root       string
	matcher    Matcher
	logger     *zap.Logger
	pruneEmpty bool
}

type child struct {
	name        string
	path        string
	isDirectory bool
	sizeBytes   int64
}

// node is a surviving child together with its own surviving children.
type node struct {
	child
	children  []node
	readError error
}

type branch struct {
	files       []types.FileEntry
	lines       []string
	directories int
	errors      int
}

// Walk traverses root depth first. Only a missing or unreadable root is an error;
// unreadable subdirectories become inline error lines.
func Walk(root string, matcher Matcher, options Options) (Result, error) {
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return Result{}, fmt.Errorf(errorAbsolutePathFormat, root, absoluteError)
	}
	rootInfo, statError := os.Stat(absoluteRoot)
	if statError != nil {
		return Result{}, fmt.Errorf(errorRootStatFormat, absoluteRoot, statError)
	}
	if !rootInfo.IsDir() {
		return Result{}, fmt.Errorf("%s: %w", absoluteRoot, ErrNotDirectory)
	}
	entries, readError := os.ReadDir(absoluteRoot)
	if readError != nil {
		return Result{}, fmt.Errorf(errorRootReadFormat, absoluteRoot, readError)
	}

	traversal := walker{root: absoluteRoot, matcher: matcher, logger: logger, pruneEmpty: options.PruneEmptyDirectories}
	walked := traversal.render(traversal.collect(absoluteRoot, entries), "")

	treeLines := make([]string, 0, len(walked.lines)+1)
	treeLines = append(treeLines, filepath.Base(absoluteRoot)+directorySuffix)
	treeLines = append(treeLines, walked.lines...)

	logger.Debug("Walked directory tree",
		zap.String("root", absoluteRoot),
		zap.Int("files", len(walked.files)),
		zap.Int("directories", walked.directories),
		zap.Int("errors", walked.errors))

	return Result{
		Root:        absoluteRoot,
		Files:       walked.files,
		TreeLines:   treeLines,
		Directories: walked.directories,
		Errors:      walked.errors,
	}, nil
}

// collect builds the surviving subtree below directoryPath. Unreadable
// directories are kept with their error so the tree can report them.
func (traversal walker) collect(directoryPath string, entries []os.DirEntry) []node {
	children := traversal.survivors(directoryPath, entries)
	nodes := make([]node, 0, len(children))
	for _, entry := range children {
		if !entry.isDirectory {
			nodes = append(nodes, node{child: entry})
			continue
		}
		nestedEntries, readError := os.ReadDir(entry.path)
		if readError != nil {
			traversal.logger.Warn("Skipping unreadable directory", zap.String("directory", entry.path), zap.Error(readError))
			nodes = append(nodes, node{child: entry, readError: readError})
			continue
		}
		nested := traversal.collect(entry.path, nestedEntries)
		if len(nested) == 0 && traversal.pruneEmpty {
			traversal.logger.Debug("Pruning empty directory", zap.String("directory", entry.path))
			continue
		}
		nodes = append(nodes, node{child: entry, children: nested})
	}
	return nodes
}

func (traversal walker) render(nodes []node, prefix string) branch {
	var result branch
	for index, current := range nodes {
		connector, padding := treeBranchConnector, treeBranchPadding
		if index == len(nodes)-1 {
			connector, padding = treeLastConnector, treeLastPadding
		}

		if current.isDirectory {
			result.lines = append(result.lines, prefix+connector+current.name+directorySuffix)
			result.directories++
			if current.readError != nil {
				result.lines = append(result.lines, prefix+padding+treeLastConnector+fmt.Sprintf(errorLineFormat, current.readError))
				result.errors++
				continue
			}
			nested := traversal.render(current.children, prefix+padding)
			result.files = append(result.files, nested.files...)
			result.lines = append(result.lines, nested.lines...)
			result.directories += nested.directories
			result.errors += nested.errors
			continue
		}

		result.lines = append(result.lines, prefix+connector+current.name)
		result.files = append(result.files, types.FileEntry{
			Path:         current.path,
			RelativePath: utils.RelativePathOrSelf(current.path, traversal.root),
			SizeBytes:    current.sizeBytes,
		})
	}
	return result
}

// survivors stats the entries of one directory, drops ignored ones and sorts the rest.
func (traversal walker) survivors(directoryPath string, entries []os.DirEntry) []child {
	children := make([]child, 0, len(entries))
	for _, entry := range entries {
		childPath := filepath.Join(directoryPath, entry.Name())
		relativePath := utils.RelativePathOrSelf(childPath, traversal.root)
		isDirectory := entry.IsDir()
		if traversal.matcher != nil && traversal.matcher.IsIgnored(relativePath, isDirectory) {
			traversal.logger.Debug("Ignoring path", zap.String("path", relativePath))
			continue
		}

		var sizeBytes int64
		if !isDirectory {
			// Follow file symlinks for the size; a broken link keeps size zero and is reported by the classifier.
			if fileInfo, statError := os.Stat(childPath); statError == nil {
				sizeBytes = fileInfo.Size()
			} else {
				traversal.logger.Debug("Unable to stat file", zap.String("path", childPath), zap.Error(statError))
			}
		}
		children = append(children, child{
			name:        entry.Name(),
			path:        childPath,
			isDirectory: isDirectory,
			sizeBytes:   sizeBytes,
		})
	}

	sort.SliceStable(children, func(left, right int) bool {
		if children[left].isDirectory != children[right].isDirectory {
			return children[left].isDirectory
		}
		return children[left].name < children[right].name
	})
	return children
}
