package corpreport

import _ "embed"

// The page shell is static boilerplate: a fixed stylesheet and the client
// script for scroll-spy navigation, the to-top button and the collapsible
// sidebar. Both are embedded so the rendered report stays self-contained.
var (
	//go:embed shell/style.css
	shellStyle string

	//go:embed shell/app.js
	shellScript string
)
