// fightclub/models/storage.go
package models

// StorageService stores binary attachment payloads and returns a retrievable
// locator. The core persists locators and metadata only, never raw bytes.
type StorageService interface {
	SaveFile(filename string, data []byte, contentType string) (string, error)
	DeleteFile(path string) error
}
