// Package types defines the resource entities, list-query types, client and
// cache interfaces, and standard errors shared by the schoolctl packages.
package types
