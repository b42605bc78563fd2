package summary

import "strings"

var decorations = strings.NewReplacer("*", "", "＊", "", "#", "", " ", "")

// Clean strips markdown decoration from generated text: ASCII and full-width
// asterisks, hashes and ASCII spaces, wherever they occur. Tabs, newlines
// and other whitespace are kept. Apply before Parse; label matching relies on
// the tight "label:value" form this produces.
func Clean(text string) string {
	return decorations.Replace(text)
}
