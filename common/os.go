package common

import (
	"fmt"
	"os"
)

// WriteFileAtomic writes newBytes to filePath.
// Guaranteed not to lose *both* oldBytes and newBytes,
// (assuming that the OS is perfect)
func WriteFileAtomic(filePath string, newBytes []byte, mode os.FileMode) error {
	// If a file already exists there, copy to filePath+".bak" (overwrite anything)
	if _, err := os.Stat(filePath); !os.IsNotExist(err) {
		fileBytes, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("could not read file %v: %v", filePath, err)
		}
		err = os.WriteFile(filePath+".bak", fileBytes, mode)
		if err != nil {
			return fmt.Errorf("could not write file %v: %v", filePath+".bak", err)
		}
	}
	err := os.WriteFile(filePath+".new", newBytes, mode)
	if err != nil {
		return fmt.Errorf("could not write file %v: %v", filePath+".new", err)
	}
	return os.Rename(filePath+".new", filePath)
}
