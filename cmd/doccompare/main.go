// Package main provides the doccompare CLI, a local front end for
// the comparison pipeline that talks to the same sidecars as the API.
package main

func main() {
	Execute()
}
