// Package toolcheck verifies that the external programs a profile relies on
// are installed and recent enough. Versions are scraped from each tool's
// version output and compared as semantic versions.
package toolcheck
