// Command pantry tracks pantry expiration dates, suggests recipes and sends
// expiration alerts.
package main

import "github.com/mesh-intelligence/pantry/internal/cli"

func main() {
	cli.Execute()
}
