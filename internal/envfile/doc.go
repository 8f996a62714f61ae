// Package envfile handles the textual form of env secret files.
//
// It provides three things:
//
//  1. An ordered EnvMap / RepoEnvMap pair whose JSON encoding preserves
//     key and path order, so an encrypt/decrypt round trip reproduces
//     files exactly as they were read.
//  2. A codec (Parse/Serialize) between env-file text and EnvMap, with
//     dotenv-style comment, export, and quote handling.
//  3. A skeleton extractor that strips values while preserving the
//     original comments, blank lines, and line count, used to derive
//     committable .example files.
package envfile
