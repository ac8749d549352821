// Package manifest reads the application's package.json.
//
// Only name, version and author are used; they seed the defaults of a
// release.Config.
package manifest
