// Package drive wraps the Google Drive v3 API.
//
// The client covers the file operations the server exposes: search, metadata
// reads, reparenting, folder creation, file copies, child listings, content
// search, revision history, exports and permission listings. Every method
// takes a context and wraps API failures with the operation that failed.
//
// Example usage:
//
//	httpClient := google.NewHTTPClient(ctx, creds, metrics)
//	client, err := drive.NewClient(ctx, httpClient)
//	if err != nil {
//	    return err
//	}
//
//	files, err := client.Search(ctx, "name contains 'report'", 10, "")
package drive
