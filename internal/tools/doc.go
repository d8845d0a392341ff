// Package tools provides host command execution for collaborators outside
// the container core, such as launching an image viewer.
package tools
