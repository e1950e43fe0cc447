// Package listing reads product listing packets from their fixed directory
// layout and exports them as one spreadsheet row each, matching the Etsy
// bulk-upload column schema.
//
// A packet directory looks like:
//
//	<listings_dir>/<listing-id>/
//	    title.txt        required
//	    description.txt  required
//	    tags.txt         required, newline-delimited
//	    price.txt        optional, falls back to listing.default_price
//	    images/          optional, *.png / *.jpg / *.jpeg
package listing
