// Package cli implements the gallery admin console: an interactive REPL that
// signs the admin in against the shared credential and manages gallery
// images (list, add from a file or URL, delete) and the admin password.
//
// Commands that change the gallery or the password require an open admin
// session. Listing is public, like the gallery page itself.
package cli
