package ecs

import "fmt"

// typeName derives a component type's canonical registered name from its
// Go type, used as ComponentStore's secondary collision key. %T yields the
// type qualified by its package name (e.g. "ecs.position"), not the full
// import path, which is as good a "canonical name" as this engine needs — the script boundary registers its own string names
// and hashes them the same way (spec.md §6), this is just the native-side
// equivalent for Go component structs.
func typeName(v interface{}) string {
	return fmt.Sprintf("%T", v)
}
