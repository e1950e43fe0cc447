package listing_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"shopsmith/internal/listing"
	"shopsmith/internal/services"
	"shopsmith/internal/testsupport"
)

func TestReadPacketMissingDirectoryIsNotFound(t *testing.T) {
	dir := t.TempDir()
	if _, err := listing.ReadPacket(dir, "nope"); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestReadPacketMissingRequiredFileIsValidation(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "broken"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if _, err := listing.ReadPacket(dir, "broken"); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestReadPacketLoadsFields(t *testing.T) {
	dir := t.TempDir()
	testsupport.WritePacket(t, dir, "cedar-tray", "cedar  serving tray", "A tray.\n\nCedar.", []string{"cedar", " tray ", ""})
	testsupport.WriteFile(t, filepath.Join(dir, "cedar-tray", "price.txt"), []byte("52.50\n"))
	testsupport.WriteFile(t, filepath.Join(dir, "cedar-tray", "images", "b.png"), []byte("png"))
	testsupport.WriteFile(t, filepath.Join(dir, "cedar-tray", "images", "a.jpg"), []byte("jpg"))
	testsupport.WriteFile(t, filepath.Join(dir, "cedar-tray", "images", "notes.txt"), []byte("skip"))

	packet, err := listing.ReadPacket(dir, "cedar-tray")
	if err != nil {
		t.Fatalf("read packet: %v", err)
	}

	// Lowercase titles get title-cased with whitespace collapsed.
	if packet.Title != "Cedar Serving Tray" {
		t.Fatalf("unexpected title %q", packet.Title)
	}
	if packet.Price != "52.50" {
		t.Fatalf("unexpected price %q", packet.Price)
	}
	if len(packet.Tags) != 2 || packet.Tags[0] != "cedar" || packet.Tags[1] != "tray" {
		t.Fatalf("unexpected tags %v", packet.Tags)
	}
	if len(packet.Images) != 2 {
		t.Fatalf("expected 2 images, got %v", packet.Images)
	}
	if filepath.Base(packet.Images[0]) != "a.jpg" || filepath.Base(packet.Images[1]) != "b.png" {
		t.Fatalf("expected sorted images, got %v", packet.Images)
	}
}

func TestReadPacketKeepsMixedCaseTitle(t *testing.T) {
	dir := t.TempDir()
	testsupport.WritePacket(t, dir, "board", "Walnut XL Board", "Desc", []string{"walnut"})

	packet, err := listing.ReadPacket(dir, "board")
	if err != nil {
		t.Fatalf("read packet: %v", err)
	}
	if packet.Title != "Walnut XL Board" {
		t.Fatalf("expected mixed-case title preserved, got %q", packet.Title)
	}
}
