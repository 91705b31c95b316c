package constant

import _ "embed"

// AsciiArtLogo is the banner version and help screens print.
//
//go:embed ascii.txt
var AsciiArtLogo string
