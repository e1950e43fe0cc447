package listing

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"shopsmith/internal/services"
)

// Packet is one product's listing inputs read from disk.
type Packet struct {
	ID          string
	Title       string
	Description string
	Tags        []string
	Price       string
	Images      []string
}

var titleCaser = cases.Title(language.English)

// PacketExists reports whether the packet directory for id is present.
func PacketExists(listingsDir, id string) bool {
	info, err := os.Stat(filepath.Join(listingsDir, id))
	return err == nil && info.IsDir()
}

// ReadPacket loads one listing packet. A missing directory is a not-found
// error (the export skips those); a missing required file inside an existing
// directory is a validation error that fails the whole export.
func ReadPacket(listingsDir, id string) (*Packet, error) {
	dir := filepath.Join(listingsDir, id)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, services.Wrap(services.ErrNotFound, "listing", "read packet",
			fmt.Sprintf("no packet directory for %q", id), nil)
	}

	title, err := readRequired(dir, "title.txt")
	if err != nil {
		return nil, err
	}
	description, err := readRequired(dir, "description.txt")
	if err != nil {
		return nil, err
	}
	rawTags, err := readRequired(dir, "tags.txt")
	if err != nil {
		return nil, err
	}

	packet := &Packet{
		ID:          id,
		Title:       normalizeTitle(title),
		Description: description,
		Tags:        splitTags(rawTags),
	}

	if price, err := os.ReadFile(filepath.Join(dir, "price.txt")); err == nil {
		packet.Price = strings.TrimSpace(string(price))
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, services.Wrap(services.ErrValidation, "listing", "read packet",
			fmt.Sprintf("%s: price.txt", id), err)
	}

	images, err := listImages(filepath.Join(dir, "images"))
	if err != nil {
		return nil, err
	}
	packet.Images = images

	return packet, nil
}

func readRequired(dir, name string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "listing", "read packet",
			fmt.Sprintf("required file %s", filepath.Join(filepath.Base(dir), name)), err)
	}
	return strings.TrimSpace(string(data)), nil
}

func splitTags(raw string) []string {
	lines := strings.Split(raw, "\n")
	tags := make([]string, 0, len(lines))
	for _, line := range lines {
		if tag := strings.TrimSpace(line); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// normalizeTitle collapses internal whitespace and title-cases fully
// lowercase titles; mixed-case titles are assumed intentional.
func normalizeTitle(title string) string {
	title = strings.Join(strings.Fields(title), " ")
	if title == strings.ToLower(title) {
		return titleCaser.String(title)
	}
	return title
}

func listImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, services.Wrap(services.ErrValidation, "listing", "read packet", dir, err)
	}
	images := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".png", ".jpg", ".jpeg":
			images = append(images, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(images)
	return images, nil
}
