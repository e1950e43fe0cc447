package listing_test

import (
	"testing"

	"shopsmith/internal/listing"
)

func TestHeadersShape(t *testing.T) {
	headers := listing.Headers()
	if len(headers) != 35 {
		t.Fatalf("expected 35 header columns, got %d", len(headers))
	}
	if headers[0] != "listing_id" {
		t.Fatalf("expected first column listing_id, got %q", headers[0])
	}
	if headers[7] != "image_1" {
		t.Fatalf("expected column 8 to be image_1, got %q", headers[7])
	}
	if headers[17] != "tag_1" {
		t.Fatalf("expected column 18 to be tag_1, got %q", headers[17])
	}
	if headers[len(headers)-1] != "is_supply" {
		t.Fatalf("expected last column is_supply, got %q", headers[len(headers)-1])
	}
}

func TestBuildRowPadsSlots(t *testing.T) {
	packet := &listing.Packet{
		ID:          "walnut-board",
		Title:       "Walnut Serving Board",
		Description: "Hand finished.",
		Tags:        []string{"walnut", "serving board", "kitchen"},
		Images:      []string{"a.png", "b.png", "c.png", "d.png", "e.png"},
	}
	opts := listing.RowOptions{
		SKUPrefix:    "WS",
		Quantity:     4,
		Category:     "Kitchen",
		DefaultPrice: "45.00",
	}

	row := listing.BuildRow(packet, opts)
	if len(row) != len(listing.Headers()) {
		t.Fatalf("expected %d cells, got %d", len(listing.Headers()), len(row))
	}

	// Five images fill image_1..5; image_6..10 stay empty.
	for i := 0; i < 5; i++ {
		if row[7+i] == "" {
			t.Fatalf("expected image_%d to be filled", i+1)
		}
	}
	for i := 5; i < listing.ImageSlots; i++ {
		if row[7+i] != "" {
			t.Fatalf("expected image_%d to be empty, got %q", i+1, row[7+i])
		}
	}

	for i := 3; i < listing.TagSlots; i++ {
		if row[17+i] != "" {
			t.Fatalf("expected tag_%d to be empty, got %q", i+1, row[17+i])
		}
	}

	if row[4] != "45.00" {
		t.Fatalf("expected default price to apply, got %q", row[4])
	}
	if row[1] != "WS-WALNUTBOARD" {
		t.Fatalf("unexpected sku %q", row[1])
	}

	tail := row[len(row)-5:]
	expected := []string{"add", "draft", "i_did", "2020_2026", "false"}
	for i, value := range expected {
		if tail[i] != value {
			t.Fatalf("expected trailing constant %q at position %d, got %q", value, i, tail[i])
		}
	}
}

func TestBuildRowTruncatesExtras(t *testing.T) {
	tags := make([]string, 20)
	for i := range tags {
		tags[i] = "tag"
	}
	images := make([]string, 14)
	for i := range images {
		images[i] = "img.png"
	}
	packet := &listing.Packet{ID: "x", Title: "X", Tags: tags, Images: images}

	row := listing.BuildRow(packet, listing.RowOptions{Quantity: 1})
	if len(row) != len(listing.Headers()) {
		t.Fatalf("expected %d cells, got %d", len(listing.Headers()), len(row))
	}
}
