// Package greeting is a standalone echo operation used to check that a host is wired up.
// It shares nothing with the calculator.
package greeting

import "fmt"

// Greet returns the greeting for name.
func Greet(name string) string {
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", name)
}
