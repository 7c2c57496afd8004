// Package logging configures the server's structured logger: a text
// handler for an interactive terminal, JSON otherwise (or when
// --log-format json is forced), built with functional options in the
// same With<Thing> style the rest of this module uses for constructors.
package logging
