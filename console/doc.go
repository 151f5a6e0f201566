// Package console provides OS-level terminal queries that sit outside the
// capability database: window dimensions and tty detection.
package console
