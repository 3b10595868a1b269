package drive

// Export formats accepted by Export, in the order they are documented.
var exportFormats = []struct {
	name     string
	mimeType string
}{
	{"pdf", "application/pdf"},
	{"docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
	{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
	{"pptx", "application/vnd.openxmlformats-officedocument.presentationml.presentation"},
}

// ExportFormats returns the supported export format names.
func ExportFormats() []string {
	names := make([]string, len(exportFormats))
	for i, f := range exportFormats {
		names[i] = f.name
	}
	return names
}

// ExportMimeType maps a format name to the MIME type requested from Drive.
func ExportMimeType(format string) (string, bool) {
	for _, f := range exportFormats {
		if f.name == format {
			return f.mimeType, true
		}
	}
	return "", false
}
