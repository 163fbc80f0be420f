// Package git shells out to the git binary for the repository operations
// the viewer needs: producing raw unified diff text, applying selection
// patches to the index or working tree, and reading file bytes for the
// binary preview.
//
// # Architecture
//
// The package is organized around these core types:
//
//   - Manager: entry point, discovers and opens repositories
//   - Repository: a single repository with diff, apply, and read operations
//   - Diff: structured view of diff output for stats and file lists
//
// # Usage
//
//	mgr := git.NewManager(git.ManagerConfig{})
//	repo, err := mgr.Discover("/path/to/project/src")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	raw, err := repo.DiffRaw(git.DiffOptions{Context: 3})
//
// # Status Caching
//
// Status queries are cached briefly. Apply operations invalidate the cache
// so the next query reflects the modified tree.
//
// # Thread Safety
//
// All operations are safe for concurrent use. Repository state is guarded
// by a sync.RWMutex.
package git
