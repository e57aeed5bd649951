package util

import (
	"os"
	"strings"
)

// WriteToFile joins the given sections with newlines and writes them to
// savePath.
func WriteToFile(savePath string, content ...string) error {
	return os.WriteFile(savePath, []byte(strings.Join(content, "\n")+"\n"), 0644)
}
