// Package artifact discovers the installer files Squirrel leaves in a release directory.
package artifact
