// Package finder contains the basic necessities.
package finder

// Version references the code version.
const Version = "0.1.0"
