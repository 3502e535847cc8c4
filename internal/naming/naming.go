// Package naming derives output file names for watermarked images.
package naming

import "strings"

// Suffix is appended to the base name of every output file.
const Suffix = "-with-watermark"

// OutputName inserts Suffix between the name and the extension of filename.
//
// Only the first two dot-separated segments are used: "my.photo.jpg" becomes
// "my-with-watermark.photo". A name without a dot gets no extension.
func OutputName(filename string) string {
	parts := strings.Split(filename, ".")
	if len(parts) < 2 {
		return parts[0] + Suffix
	}

	return parts[0] + Suffix + "." + parts[1]
}
