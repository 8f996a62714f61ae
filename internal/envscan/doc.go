// Package envscan discovers and classifies secret-related files in a
// repository tree.
//
// Every invocation produces a fresh inventory: a bounded-depth lexical
// walk that tags each candidate path as a real secret file, a sanitized
// example, the encrypted artifact, or the key config. Classification
// depends only on the file name, so a path's class never changes without
// a rename.
package envscan
