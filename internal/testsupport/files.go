package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteFile creates path with the given contents, making parent directories
// as needed.
func WriteFile(t testing.TB, path string, contents []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WritePacket lays a complete listing packet down under listingsDir.
func WritePacket(t testing.TB, listingsDir, id, title, description string, tags []string) {
	t.Helper()

	dir := filepath.Join(listingsDir, id)
	WriteFile(t, filepath.Join(dir, "title.txt"), []byte(title+"\n"))
	WriteFile(t, filepath.Join(dir, "description.txt"), []byte(description+"\n"))
	joined := ""
	for _, tag := range tags {
		joined += tag + "\n"
	}
	WriteFile(t, filepath.Join(dir, "tags.txt"), []byte(joined))
}
