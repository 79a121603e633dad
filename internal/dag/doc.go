// Package dag holds a small directed graph keyed by string IDs. The topology
// builders use it to check that a parent relation declared in a description
// is acyclic and to visit nodes parents-first.
package dag
