package drive_tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/teemow/gworkspace-mcp/internal/drive"
)

// fakeDrive is an in-memory folder tree.
type fakeDrive struct {
	files    map[string]*drive.FileInfo
	children map[string][]string
	exports  map[string][]byte
	fail     map[string]error
	calls    []string
	nextID   int
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{
		files:    make(map[string]*drive.FileInfo),
		children: make(map[string][]string),
		exports:  make(map[string][]byte),
		fail:     make(map[string]error),
	}
}

func (f *fakeDrive) add(parent, id, name, mimeType string) *fakeDrive {
	f.files[id] = &drive.FileInfo{ID: id, Name: name, MimeType: mimeType, Parents: []string{parent}}
	f.children[parent] = append(f.children[parent], id)
	return f
}

func (f *fakeDrive) folder(parent, id, name string) *fakeDrive {
	return f.add(parent, id, name, drive.FolderMimeType)
}

func (f *fakeDrive) doc(parent, id, name string) *fakeDrive {
	return f.add(parent, id, name, "application/vnd.google-apps.document")
}

func (f *fakeDrive) record(format string, a ...any) error {
	call := fmt.Sprintf(format, a...)
	f.calls = append(f.calls, call)
	return f.fail[call]
}

func (f *fakeDrive) lookup(id string) (*drive.FileInfo, error) {
	info, ok := f.files[id]
	if !ok {
		return nil, fmt.Errorf("failed to get file %s: not found", id)
	}
	cp := *info
	return &cp, nil
}

func (f *fakeDrive) Search(_ context.Context, query string, pageSize int, pageToken string) (*drive.FileList, error) {
	if err := f.record("search %s %d %s", query, pageSize, pageToken); err != nil {
		return nil, err
	}
	list := &drive.FileList{Files: []*drive.FileInfo{}}
	for _, id := range f.children["root"] {
		info, _ := f.lookup(id)
		list.Files = append(list.Files, info)
	}
	return list, nil
}

func (f *fakeDrive) GetFile(_ context.Context, fileID string) (*drive.FileInfo, error) {
	if err := f.record("get %s", fileID); err != nil {
		return nil, err
	}
	return f.lookup(fileID)
}

func (f *fakeDrive) MoveFile(_ context.Context, fileID, folderID string) (*drive.FileInfo, error) {
	if err := f.record("move %s %s", fileID, folderID); err != nil {
		return nil, err
	}
	info, err := f.lookup(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get parents of %s: not found", fileID)
	}
	info.Parents = []string{folderID}
	f.files[fileID] = info
	return info, nil
}

func (f *fakeDrive) CreateFolder(_ context.Context, name, parentID string) (*drive.FileInfo, error) {
	if err := f.record("mkdir %s %s", name, parentID); err != nil {
		return nil, err
	}
	f.nextID++
	id := fmt.Sprintf("new%d", f.nextID)
	f.folder(parentID, id, name)
	return f.lookup(id)
}

func (f *fakeDrive) CopyFile(_ context.Context, fileID, name, parentID string) (*drive.FileInfo, error) {
	if err := f.record("copy %s %s %s", fileID, name, parentID); err != nil {
		return nil, err
	}
	src, err := f.lookup(fileID)
	if err != nil {
		return nil, err
	}
	f.nextID++
	id := fmt.Sprintf("new%d", f.nextID)
	f.add(parentID, id, name, src.MimeType)
	return f.lookup(id)
}

func (f *fakeDrive) ListChildren(_ context.Context, folderID string, withMetadata bool) ([]*drive.FileInfo, error) {
	if err := f.record("list %s %t", folderID, withMetadata); err != nil {
		return nil, err
	}
	out := []*drive.FileInfo{}
	for _, id := range f.children[folderID] {
		info, _ := f.lookup(id)
		out = append(out, info)
	}
	return out, nil
}

func (f *fakeDrive) SearchContent(_ context.Context, text, mimeType string, pageSize int) ([]*drive.FileInfo, error) {
	if err := f.record("fulltext %s %s %d", text, mimeType, pageSize); err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *fakeDrive) ListRevisions(_ context.Context, fileID string, pageSize int) ([]*drive.Revision, error) {
	if err := f.record("revisions %s %d", fileID, pageSize); err != nil {
		return nil, err
	}
	return []*drive.Revision{{ID: "1"}, {ID: "2"}}, nil
}

func (f *fakeDrive) Export(_ context.Context, fileID, mimeType string) ([]byte, error) {
	if err := f.record("export %s %s", fileID, mimeType); err != nil {
		return nil, err
	}
	data, ok := f.exports[fileID]
	if !ok {
		return nil, errors.New("export not supported")
	}
	return data, nil
}

func (f *fakeDrive) ListPermissions(_ context.Context, fileID string) ([]*drive.Permission, error) {
	if err := f.record("permissions %s", fileID); err != nil {
		return nil, err
	}
	return []*drive.Permission{{ID: "p1", Type: "user", Role: "owner", EmailAddress: "owner@example.com"}}, nil
}

type fakeRecorder struct {
	tool              string
	succeeded, failed int
}

func (r *fakeRecorder) RecordBatchItems(_ context.Context, tool string, succeeded, failed int) {
	r.tool, r.succeeded, r.failed = tool, succeeded, failed
}
