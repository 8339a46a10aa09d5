package storage

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// NewUploadKey builds a collision-free key for a new upload. The extension is
// whatever follows the last dot of fileName.
func NewUploadKey(folder, fileName string) string {
	ext := fileName[strings.LastIndex(fileName, ".")+1:]
	return fmt.Sprintf("%s/%s.%s", folder, uuid.New().String(), ext)
}

// ListPrefix builds the listing prefix projectCode/[ownerKey/[folder/]].
func ListPrefix(projectCode, ownerKey, folder string) string {
	prefix := projectCode + "/"
	if ownerKey != "" {
		prefix += ownerKey + "/"
		if folder != "" {
			prefix += folder + "/"
		}
	}
	return prefix
}
