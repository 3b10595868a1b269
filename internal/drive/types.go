package drive

import "time"

// FileInfo is the metadata returned for a file or folder.
type FileInfo struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	MimeType     string    `json:"mimeType"`
	Size         int64     `json:"size,omitempty"`
	CreatedTime  time.Time `json:"createdTime,omitzero"`
	ModifiedTime time.Time `json:"modifiedTime,omitzero"`
	WebViewLink  string    `json:"webViewLink,omitempty"`
	Parents      []string  `json:"parents,omitempty"`
	Owners       []User    `json:"owners,omitempty"`
	Shared       bool      `json:"shared"`
	Trashed      bool      `json:"trashed"`
}

// IsFolder reports whether the entry is a folder.
func (f *FileInfo) IsFolder() bool {
	return f.MimeType == FolderMimeType
}

// FileList is one page of search results.
type FileList struct {
	Files         []*FileInfo `json:"files"`
	NextPageToken string      `json:"nextPageToken,omitempty"`
}

// User identifies an owner, editor or permission holder.
type User struct {
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress,omitempty"`
}

// Permission is an access grant on a file.
type Permission struct {
	ID           string `json:"id"`
	Type         string `json:"type"`
	Role         string `json:"role"`
	EmailAddress string `json:"emailAddress,omitempty"`
	Domain       string `json:"domain,omitempty"`
	DisplayName  string `json:"displayName,omitempty"`
}

// Revision is one entry of a file's revision history.
type Revision struct {
	ID                string    `json:"id"`
	MimeType          string    `json:"mimeType,omitempty"`
	ModifiedTime      time.Time `json:"modifiedTime,omitzero"`
	Size              int64     `json:"size,omitempty"`
	KeepForever       bool      `json:"keepForever"`
	LastModifyingUser *User     `json:"lastModifyingUser,omitempty"`
}
