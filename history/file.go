package history

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"
	"gopkg.in/yaml.v3"
)

// diskItem is the on-disk representation of one history entry, in fish's
// modern YAML-ish format:
//
//	- cmd: echo hi
//	  when: 1700000000
//	  paths:
//	    - /some/path
//
// grounded on original_source/src/history_file.cpp's entry layout, but
// decoded here with gopkg.in/yaml.v3 rather than a hand-rolled line
// scanner.
type diskItem struct {
	Cmd   string   `yaml:"cmd"`
	When  int64    `yaml:"when"`
	Paths []string `yaml:"paths,omitempty"`
}

// FileStore is a Store with on-disk persistence: advisory-locked
// rename-into-place saves and an mmap-backed read snapshot, generalizing
// the teacher's single os.OpenFile-and-append history.Load/Add
// (petermattis/prompt's history.go) to fish's separate
// read-snapshot/append-new-entries/periodic-vacuum model (spec.md §4.6).
type FileStore struct {
	*Store
	path string
}

// OpenFileStore opens (creating if necessary) the history file for name
// under dir (typically $XDG_DATA_HOME/fish/history), loading its existing
// contents into the returned store's old-items snapshot.
func OpenFileStore(dir, name string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	path := filepath.Join(dir, name+"_history")

	fs := &FileStore{Store: &Store{name: name, path: path, deleted: make(map[string]bool)}, path: path}

	data, err := readSnapshot(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return fs, nil
	}

	items, err := decode(data)
	if err != nil {
		return nil, err
	}
	// decode returns oldest-first; the in-memory snapshot is kept
	// newest-first (spec.md §4.6 "Items ... newest first").
	for i := len(items) - 1; i >= 0; i-- {
		fs.oldItems = append(fs.oldItems, items[i])
	}
	return fs, nil
}

// readSnapshot mmaps the file read-only for the duration of the parse,
// falling back to a plain read if mmap is unavailable (e.g. a zero-length
// file, or a filesystem that rejects mmap).
func readSnapshot(path string) ([]byte, error) {
	f, err := os.OpenFile(path, os.O_RDONLY|os.O_CREATE, 0o600)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := unix.Flock(int(f.Fd()), unix.LOCK_SH); err == nil {
		defer unix.Flock(int(f.Fd()), unix.LOCK_UN)
	}

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := st.Size()
	if size == 0 {
		return nil, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		// Fall back to a regular read (e.g. tmpfs quirks, or a size-0
		// race); mmap is an optimization, not a correctness requirement.
		buf := make([]byte, size)
		if _, err := f.ReadAt(buf, 0); err != nil {
			return nil, err
		}
		return buf, nil
	}
	defer unix.Munmap(data)

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// decode parses either the modern YAML-ish format or, if the legacy
// cookie is the first line, the fish-1.x/libedit vis-encoded format
// (spec.md §4.6 "legacy fish-1.x autodetection").
func decode(data []byte) ([]Item, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var firstLine string
	if sc.Scan() {
		firstLine = sc.Text()
	}

	if strings.TrimSpace(firstLine) == legacyCookie {
		var lines []string
		for sc.Scan() {
			lines = append(lines, sc.Text())
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return decodeLegacy(lines)
	}

	var disk []diskItem
	if err := yaml.Unmarshal(data, &disk); err != nil {
		return nil, fmt.Errorf("history: decode: %w", err)
	}
	items := make([]Item, len(disk))
	for i, d := range disk {
		items[i] = Item{
			Text:          d.Cmd,
			Timestamp:     time.Unix(d.When, 0),
			RequiredPaths: d.Paths,
		}
	}
	return items, nil
}

func encode(items []Item) ([]byte, error) {
	disk := make([]diskItem, len(items))
	for i, it := range items {
		disk[i] = diskItem{Cmd: it.Text, When: it.Timestamp.Unix(), Paths: it.RequiredPaths}
	}
	return yaml.Marshal(disk)
}

// Save merges this session's new items onto disk: it re-reads the current
// file (in case another session appended concurrently), folds those items
// in via MergeNewer, appends this session's own new items, and writes the
// result with a rename-into-place so readers never observe a partial
// file. An exclusive flock serializes concurrent writers. Because every
// Save rewrites the whole file from the deduplicated in-memory set, this
// doubles as the "opportunistic vacuum" spec.md §4.6 calls for — there is
// no separate compaction pass.
func (fs *FileStore) Save() error {
	fs.mu.Lock()
	newItems := append([]Item(nil), fs.newItems...)
	fs.mu.Unlock()

	lockPath := fs.path + ".lock"
	lockFile, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return err
	}
	defer lockFile.Close()
	if err := unix.Flock(int(lockFile.Fd()), unix.LOCK_EX); err != nil {
		return err
	}
	defer unix.Flock(int(lockFile.Fd()), unix.LOCK_UN)

	data, err := readSnapshot(fs.path)
	if err != nil {
		return err
	}
	onDisk, err := decode(data)
	if err != nil {
		return err
	}

	fs.MergeNewer(onDisk)

	fs.mu.Lock()
	for _, it := range newItems {
		dup := false
		for _, old := range fs.oldItems {
			if old.Text == it.Text && old.Timestamp.Equal(it.Timestamp) {
				dup = true
				break
			}
		}
		if !dup {
			fs.oldItems = append([]Item{it}, fs.oldItems...)
		}
	}
	fs.newItems = nil
	all := append([]Item(nil), fs.oldItems...)
	fs.mu.Unlock()

	// all is newest-first; encode oldest-first to match fish's on-disk
	// convention (and the teacher's append-oriented Load ordering).
	ordered := make([]Item, len(all))
	for i, it := range all {
		ordered[len(all)-1-i] = it
	}

	body, err := encode(ordered)
	if err != nil {
		return err
	}
	return writeRename(fs.path, body)
}

// writeRename writes body to a temp file in the same directory as path
// and renames it into place, so a crash mid-write never corrupts the
// existing history file.
func writeRename(path string, body []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}
