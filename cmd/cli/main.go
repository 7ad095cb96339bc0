// wplogin - Credential List to wp-login.php URL Converter
//
// wplogin reads lines of the form "site -> user:pass" and rewrites them as
// "site/wp-login.php#user@pass", skipping blank, comment and malformed lines.
package main

import (
	"os"

	"github.com/ccollicutt/wplogin/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
